// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_upstream_fetches_total",
			Help: "Total number of upstream open-data fetches",
		},
		[]string{"status", "outcome"},
	)

	UpstreamFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tracker_upstream_fetch_duration_seconds",
			Help: "Duration of upstream open-data fetches in seconds",
		},
		[]string{"status"},
	)

	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_records_skipped_total",
			Help: "Total number of malformed upstream records dropped",
		},
		[]string{"status", "reason"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_cache_requests_total",
			Help: "Fetch cache lookups by result",
		},
		[]string{"result"},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_api_requests_total",
			Help: "Total number of API requests served",
		},
		[]string{"route", "status"},
	)
)
