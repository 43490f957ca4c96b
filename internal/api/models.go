// internal/api/models.go
package api

import (
	"time"

	"sla-tracker/internal/license"
	"sla-tracker/internal/search"
)

// searchFilters echoes the parameters a search ran with.
type searchFilters struct {
	Geography string `json:"geography"`
	Limit     int    `json:"limit"`
}

// searchResponse is the body for /search and its scoped variants.
type searchResponse struct {
	Count     int              `json:"count"`
	Matches   []license.Record `json:"matches"`
	Counts    map[string]int   `json:"counts"`
	Filters   searchFilters    `json:"filters"`
	SavedTo   *string          `json:"saved_to"`
	Timestamp time.Time        `json:"timestamp"`
}

// nycResponse is the body for /search/nyc.
type nycResponse struct {
	TotalCount int                               `json:"total_count"`
	Boroughs   map[string]*search.BoroughSummary `json:"boroughs"`
	Timestamp  time.Time                         `json:"timestamp"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// healthResponse is the liveness body.
type healthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}
