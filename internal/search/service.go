// internal/search/service.go
package search

import (
	"context"
	"sort"
	"time"

	"sla-tracker/internal/common/logger"
	"sla-tracker/internal/geo"
	"sla-tracker/internal/keyword"
	"sla-tracker/internal/license"
)

// Fetcher is what the service needs from the data layer; satisfied by both
// license.Fetcher and cache.FetchCache.
type Fetcher interface {
	Fetch(ctx context.Context, status license.Status, limit int) ([]license.Record, error)
}

// Service combines the fetcher, keyword matcher and geo filtering into the
// search operations the API exposes.
type Service struct {
	fetcher Fetcher
	matcher *keyword.Matcher
	logger  logger.Logger
}

func NewService(fetcher Fetcher, matcher *keyword.Matcher, log logger.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		matcher: matcher,
		logger: log.With(map[string]interface{}{
			"component": "search",
		}),
	}
}

// Search fetches pending and active licenses, dedupes by serial number
// (active supersedes pending), keeps keyword matches, applies the optional
// geo filter and aggregates counts per geography. A nil filter searches all
// of NY State. Either endpoint failing fails the search; no partial results.
func (s *Service) Search(ctx context.Context, filter *geo.Filter, limit int) (*Result, error) {
	pending, err := s.fetcher.Fetch(ctx, license.StatusPending, limit)
	if err != nil {
		return nil, err
	}
	active, err := s.fetcher.Fetch(ctx, license.StatusActive, limit)
	if err != nil {
		return nil, err
	}

	combined := dedupe(append(pending, active...))

	matches := make([]license.Record, 0)
	counts := make(map[string]int)
	for _, rec := range combined {
		if !s.matcher.Match(rec.Name) {
			continue
		}
		if filter != nil && !filter.Matches(rec.County) {
			continue
		}
		matches = append(matches, rec)
		counts[geographyName(rec.County)]++
	}

	sortByDateDesc(matches)

	s.logger.Info("search completed", map[string]interface{}{
		"geography": filterName(filter),
		"fetched":   len(combined),
		"matches":   len(matches),
	})

	return &Result{
		Matches:   matches,
		Counts:    counts,
		Total:     len(matches),
		FetchedAt: time.Now().UTC(),
	}, nil
}

// SearchNYC runs one search across the five borough counties and groups the
// matches per borough.
func (s *Service) SearchNYC(ctx context.Context, limit int) (*NYCResult, error) {
	result, err := s.Search(ctx, geo.NYC(), limit)
	if err != nil {
		return nil, err
	}

	boroughs := make(map[string]*BoroughSummary, 5)
	for _, name := range geo.Boroughs() {
		boroughs[name] = &BoroughSummary{Matches: []license.Record{}}
	}
	for _, rec := range result.Matches {
		borough, ok := geo.BoroughForCounty(rec.County)
		if !ok {
			continue
		}
		summary := boroughs[borough]
		summary.Matches = append(summary.Matches, rec)
		summary.Count++
	}

	return &NYCResult{
		TotalCount: result.Total,
		Boroughs:   boroughs,
		FetchedAt:  result.FetchedAt,
	}, nil
}

// dedupe collapses records sharing a serial number, last seen wins. The
// active endpoint is fetched after the pending one, so an approved license
// replaces its pending application. First-seen position is kept so the
// date-less tail stays in upstream order.
func dedupe(records []license.Record) []license.Record {
	out := make([]license.Record, 0, len(records))
	index := make(map[string]int, len(records))
	for _, rec := range records {
		if i, seen := index[rec.SerialNumber]; seen {
			out[i] = rec
			continue
		}
		index[rec.SerialNumber] = len(out)
		out = append(out, rec)
	}
	return out
}

// sortByDateDesc orders dated records newest first; records without a
// parseable date keep their upstream order after the dated ones.
func sortByDateDesc(records []license.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := records[i].Date, records[j].Date
		if di.IsZero() {
			return false
		}
		if dj.IsZero() {
			return true
		}
		return di.After(dj)
	})
}

// geographyName reports a county as its borough name when it is one of the
// five NYC counties.
func geographyName(county string) string {
	if borough, ok := geo.BoroughForCounty(county); ok {
		return borough
	}
	return county
}

func filterName(filter *geo.Filter) string {
	if filter == nil {
		return "all"
	}
	return filter.Name
}
