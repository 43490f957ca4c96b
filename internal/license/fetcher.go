// internal/license/fetcher.go
package license

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	stderrors "sla-tracker/internal/common/errors"
	"sla-tracker/internal/common/logger"
	"sla-tracker/internal/common/metrics"
)

// Config holds the upstream endpoint settings for the fetcher.
type Config struct {
	PendingURL string
	ActiveURL  string
	Timeout    time.Duration
}

// Fetcher pulls license records from the SLA open-data endpoints. A single
// attempt per call; callers wanting retries wrap it themselves.
type Fetcher struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewFetcher(config *Config, log logger.Logger) *Fetcher {
	return &Fetcher{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: log.With(map[string]interface{}{
			"component": "fetcher",
		}),
	}
}

// Fetch retrieves up to limit records for the given status. Malformed rows
// are logged and dropped; endpoint-level failures fail the whole call.
func (f *Fetcher) Fetch(ctx context.Context, status Status, limit int) ([]Record, error) {
	endpoint := f.config.PendingURL
	if status == StatusActive {
		endpoint = f.config.ActiveURL
	}
	return f.fetchEndpoint(ctx, endpoint, status, limit)
}

func (f *Fetcher) fetchEndpoint(ctx context.Context, endpoint string, status Status, limit int) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	fetchURL, err := buildFetchURL(endpoint, limit)
	if err != nil {
		return nil, stderrors.NewNetworkError(endpoint, err)
	}

	start := time.Now()
	records, err := f.doFetch(ctx, fetchURL, endpoint, status)
	metrics.UpstreamFetchDuration.WithLabelValues(string(status)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamFetches.WithLabelValues(string(status), "error").Inc()
		return nil, err
	}
	metrics.UpstreamFetches.WithLabelValues(string(status), "success").Inc()

	f.logger.Info("upstream fetch completed", map[string]interface{}{
		"status":  string(status),
		"records": len(records),
		"tookMs":  time.Since(start).Milliseconds(),
	})
	return records, nil
}

func (f *Fetcher) doFetch(ctx context.Context, fetchURL, endpoint string, status Status) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, stderrors.NewNetworkError(endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "timeout") ||
			strings.Contains(err.Error(), "deadline") ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, stderrors.NewUpstreamTimeoutError(endpoint)
		}
		return nil, stderrors.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, stderrors.NewUpstreamStatusError(endpoint, resp.StatusCode)
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, stderrors.NewParseError(endpoint, err)
	}

	return f.mapRows(rows, status), nil
}

// mapRows converts raw rows to Records, skipping rows that fail the schema
// or carry no business name.
func (f *Fetcher) mapRows(rows []json.RawMessage, status Status) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if desc := validateRecord(row); desc != "" {
			f.skipRow(status, "schema", desc)
			continue
		}

		var raw rawRecord
		if err := json.Unmarshal(row, &raw); err != nil {
			f.skipRow(status, "decode", err.Error())
			continue
		}

		name := raw.name()
		if name == "" {
			f.skipRow(status, "missing_name", raw.SerialNumber)
			continue
		}

		rawDate := raw.date()
		records = append(records, Record{
			SerialNumber: raw.SerialNumber,
			Name:         name,
			Type:         raw.licenseType(),
			Status:       status,
			County:       raw.county(),
			City:         raw.City,
			Address:      raw.Address,
			Zip:          raw.Zip,
			RawDate:      rawDate,
			Date:         ParseDate(rawDate),
		})
	}
	return records
}

func (f *Fetcher) skipRow(status Status, reason, detail string) {
	metrics.RecordsSkipped.WithLabelValues(string(status), reason).Inc()
	f.logger.Warn("dropping malformed upstream record", map[string]interface{}{
		"status": string(status),
		"reason": reason,
		"detail": detail,
	})
}

func buildFetchURL(endpoint string, limit int) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	params := u.Query()
	if limit > 0 {
		params.Set("$limit", fmt.Sprintf("%d", limit))
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}
