// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sla-tracker/internal/common/database"
	"sla-tracker/internal/common/logger"
	"sla-tracker/internal/common/metrics"
	"sla-tracker/internal/license"
)

// Fetcher is the slice of license.Fetcher the cache fronts.
type Fetcher interface {
	Fetch(ctx context.Context, status license.Status, limit int) ([]license.Record, error)
}

// FetchCache is a time-bounded Redis cache in front of the upstream
// fetcher. Redis misses and errors fall through to a live fetch, so the
// cache can never make a request fail.
type FetchCache struct {
	inner  Fetcher
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func New(inner Fetcher, redis *database.RedisClient, ttl time.Duration, log logger.Logger) *FetchCache {
	return &FetchCache{
		inner:  inner,
		redis:  redis,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{
			"component": "fetch-cache",
		}),
	}
}

func (c *FetchCache) Fetch(ctx context.Context, status license.Status, limit int) ([]license.Record, error) {
	key := cacheKey(status, limit)

	if val, err := c.redis.Get(ctx, key); err == nil {
		var records []license.Record
		if err := json.Unmarshal([]byte(val), &records); err == nil {
			metrics.CacheHits.WithLabelValues("hit").Inc()
			// Date is not serialized; rebuild it from the raw value.
			for i := range records {
				records[i].Date = license.ParseDate(records[i].RawDate)
			}
			return records, nil
		}
		c.logger.Warn("discarding undecodable cache entry", map[string]interface{}{
			"key": key,
		})
	}
	metrics.CacheHits.WithLabelValues("miss").Inc()

	records, err := c.inner.Fetch(ctx, status, limit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return records, nil
}

func cacheKey(status license.Status, limit int) string {
	return fmt.Sprintf("licenses:%s:%d", status, limit)
}
