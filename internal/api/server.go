// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sla-tracker/internal/common/config"
	"sla-tracker/internal/common/errors"
	"sla-tracker/internal/common/logger"
	"sla-tracker/internal/geo"
	"sla-tracker/internal/license"
	"sla-tracker/internal/search"
)

// Searcher runs keyword searches over the upstream license feeds.
type Searcher interface {
	Search(ctx context.Context, filter *geo.Filter, limit int) (*search.Result, error)
	SearchNYC(ctx context.Context, limit int) (*search.NYCResult, error)
}

// Exporter persists search matches to local storage.
type Exporter interface {
	Save(geography string, matches []license.Record) (string, error)
}

// Server is the HTTP surface of the tracker.
type Server struct {
	config   *config.Config
	searcher Searcher
	exporter Exporter
	logger   logger.Logger
	router   *chi.Mux
}

// NewServer wires the REST routes. exporter may be nil, in which case
// save requests are acknowledged with a null saved_to.
func NewServer(cfg *config.Config, searcher Searcher, exporter Exporter, log logger.Logger) *Server {
	s := &Server{
		config:   cfg,
		searcher: searcher,
		exporter: exporter,
		logger:   log,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(config.GetDuration(s.config.Server.RequestTimeout)))
	r.Use(s.requestLogger)
	r.Use(requestMetrics)

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Get("/search", s.handleSearch)
	r.Get("/search/nyc", s.handleSearchNYC)
	r.Get("/search/county/{county}", s.handleSearchCounty)
	r.Get("/search/borough/{borough}", s.handleSearchBorough)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"service":     s.config.App.Name,
		"version":     s.config.App.Version,
		"description": "Tracks pending and active NY liquor licenses for Japanese restaurants",
		"endpoints": map[string]string{
			"/health":                    "Liveness check",
			"/search":                    "Statewide search (params: limit, save)",
			"/search/nyc":                "NYC results grouped by borough",
			"/search/county/{county}":    "Search scoped to one NY county",
			"/search/borough/{borough}":  "Search scoped to one NYC borough",
			"/metrics":                   "Prometheus metrics",
		},
		"boroughs": geo.Boroughs(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   s.config.App.Name,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.runSearch(w, r, nil)
}

func (s *Server) handleSearchCounty(w http.ResponseWriter, r *http.Request) {
	filter, err := geo.Resolve(chi.URLParam(r, "county"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.runSearch(w, r, filter)
}

func (s *Server) handleSearchBorough(w http.ResponseWriter, r *http.Request) {
	filter, err := geo.ResolveBorough(chi.URLParam(r, "borough"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.runSearch(w, r, filter)
}

func (s *Server) handleSearchNYC(w http.ResponseWriter, r *http.Request) {
	limit, err := s.parseLimit(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.searcher.SearchNYC(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, nycResponse{
		TotalCount: result.TotalCount,
		Boroughs:   result.Boroughs,
		Timestamp:  result.FetchedAt,
	})
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, filter *geo.Filter) {
	limit, err := s.parseLimit(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.searcher.Search(r.Context(), filter, limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	geography := "ny"
	if filter != nil {
		geography = filter.Name
	}

	var savedTo *string
	if r.URL.Query().Get("save") == "true" && s.exporter != nil {
		path, saveErr := s.exporter.Save(geography, result.Matches)
		if saveErr != nil {
			s.logger.WithError(saveErr).Warn("failed to save search results", map[string]interface{}{
				"geography": geography,
			})
		} else {
			savedTo = &path
		}
	}

	respondJSON(w, http.StatusOK, searchResponse{
		Count:     result.Total,
		Matches:   result.Matches,
		Counts:    result.Counts,
		Filters:   searchFilters{Geography: geography, Limit: limit},
		SavedTo:   savedTo,
		Timestamp: result.FetchedAt,
	})
}

// parseLimit reads the limit query parameter, applying the configured
// default when absent and clamping to the configured maximum.
func (s *Server) parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return s.config.Upstream.DefaultLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errors.NewValidationError("limit must be a positive integer")
	}
	if limit > s.config.Upstream.MaxLimit {
		limit = s.config.Upstream.MaxLimit
	}
	return limit, nil
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := errors.Normalize(err)
	status := errors.HTTPStatus(stdErr.Code)

	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed", map[string]interface{}{
			"path":   r.URL.Path,
			"status": status,
		})
	}

	respondJSON(w, status, errorResponse{
		Error:   string(stdErr.Code),
		Message: stdErr.Message,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
