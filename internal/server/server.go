// Package server exposes the search engine as a local JSON API.
//
// The API mirrors the CLI's search command: one GET endpoint runs a full
// search run and returns a page of aggregated repositories. It is meant for
// a local browser frontend or scripting, not for public deployment; the
// GitHub rate limit behind it belongs to a single user's token.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/quantumpixelator/firstissue/pkg/errors"
	"github.com/quantumpixelator/firstissue/pkg/search"
)

// Server wraps the search engine with an HTTP API.
type Server struct {
	engine *search.Engine
	logger *log.Logger
}

// New creates a server around the given engine.
func New(engine *search.Engine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{engine: engine, logger: logger}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/search", s.handleSearch)

	return r
}

// ListenAndServe runs the API until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("api listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// searchResponse is the JSON shape of a search API response.
type searchResponse struct {
	Query      string                  `json:"query"`
	TotalCount int                     `json:"total_count"`
	TotalRepos int                     `json:"total_repos"`
	Page       int                     `json:"page"`
	TotalPages int                     `json:"total_pages"`
	Partial    bool                    `json:"partial"`
	CeilingHit bool                    `json:"ceiling_hit"`
	Error      string                  `json:"error,omitempty"`
	Repos      []*search.RepoAggregate `json:"repositories"`
}

// handleSearch runs a search and returns one page of aggregates.
//
// Query parameters: langs (comma-separated), tag, terms, days, page,
// page_size. Each request runs a full provider search; callers are expected
// to page over a cached response client-side rather than re-searching.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := search.Filters{
		Terms: q.Get("terms"),
	}
	if langs := strings.TrimSpace(q.Get("langs")); langs != "" {
		filters.Languages = strings.Split(langs, ",")
	}
	if tag := strings.TrimSpace(q.Get("tag")); tag != "" {
		filters.Labels = []string{tag}
	}
	if days, err := strconv.Atoi(q.Get("days")); err == nil {
		filters.Days = days
	}

	page := intParam(q.Get("page"), 1)
	pageSize := intParam(q.Get("page_size"), search.DefaultPageSize)

	result, err := s.engine.Search(r.Context(), filters)
	if err != nil {
		s.writeSearchError(w, err)
		return
	}

	items, totalPages := search.Page(result.Repos, page, pageSize)

	resp := searchResponse{
		Query:      result.Query,
		TotalCount: result.TotalCount,
		TotalRepos: len(result.Repos),
		Page:       min(max(page, 1), max(totalPages, 1)),
		TotalPages: totalPages,
		Partial:    result.Partial,
		CeilingHit: result.CeilingHit,
		Repos:      items,
	}
	if result.Err != nil {
		resp.Error = apperrors.UserMessage(result.Err)
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeSearchError maps engine errors onto HTTP status codes. Rate limits
// pass through as 429 with a Retry-After header regardless of whether
// GitHub used 403 or 429.
func (s *Server) writeSearchError(w http.ResponseWriter, err error) {
	var rl *apperrors.RateLimitedError
	if errors.As(err, &rl) {
		if !rl.ResetAt.IsZero() {
			secs := int(time.Until(rl.ResetAt).Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(max(secs, 0)))
		}
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": rl.Error()})
		return
	}

	var fe *apperrors.FetchError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": fe.Error()})
		return
	}

	s.logger.Error("search failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": apperrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
