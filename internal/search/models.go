// internal/search/models.go
package search

import (
	"time"

	"sla-tracker/internal/license"
)

// Result is the per-request aggregation of matched records. It is built
// fresh for every search and discarded once the response is written.
type Result struct {
	Matches   []license.Record `json:"matches"`
	Counts    map[string]int   `json:"counts"`
	Total     int              `json:"total"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// BoroughSummary is one borough's slice of an NYC-wide search.
type BoroughSummary struct {
	Count   int              `json:"count"`
	Matches []license.Record `json:"matches"`
}

// NYCResult groups one NYC-wide search per borough.
type NYCResult struct {
	TotalCount int                        `json:"total_count"`
	Boroughs   map[string]*BoroughSummary `json:"boroughs"`
	FetchedAt  time.Time                  `json:"fetched_at"`
}
