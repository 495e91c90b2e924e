package transport

import (
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/velora/bikepulse/internal/domain/dataset"
	"github.com/velora/bikepulse/internal/domain/stats"
)

//go:embed web
var webFS embed.FS

// Server wires the dashboard HTTP API over one loaded dataset.
type Server struct {
	ds       *dataset.Dataset
	stats    *stats.Service
	logger   *slog.Logger
	validate *validator.Validate
}

// NewRouter creates the dashboard router. mcpHandler, when non-nil, is
// mounted at /mcp.
func NewRouter(ds *dataset.Dataset, statsSvc *stats.Service, logger *slog.Logger, mcpHandler http.Handler) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{
		ds:       ds,
		stats:    statsSvc,
		logger:   logger,
		validate: validator.New(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", srv.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/overview", srv.handleOverview)
		r.Get("/aggregate", srv.handleAggregate)
		r.Get("/dimensions", srv.handleDimensions)
		r.Get("/correlation", srv.handleCorrelation)
		r.Get("/export", srv.handleExport)
	})

	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
		r.Handle("/mcp/*", mcpHandler)
	}

	static, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	r.Handle("/*", http.FileServer(http.FS(static)))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Overview(s.ds, filter))
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseAggregate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view, err := s.stats.Aggregate(s.ds, req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDimensions(w http.ResponseWriter, r *http.Request) {
	domains := make(map[string][]string)
	for _, d := range []stats.Dimension{
		stats.ByYear, stats.BySeason, stats.ByWeather, stats.ByDayType, stats.ByHour,
	} {
		values, err := stats.DomainValues(s.ds, d)
		if err != nil {
			continue // hour on a daily dataset
		}
		domains[string(d)] = values
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"dataset":     s.ds.Name(),
		"granularity": s.ds.Granularity(),
		"records":     s.ds.Len(),
		"dimensions":  stats.DimensionsFor(s.ds),
		"metrics":     stats.Metrics(),
		"statistics":  stats.Statistics(),
		"domains":     domains,
	})
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Correlation(s.ds, filter))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes. Bad requests never take
// the process down: the dashboard stays interactive after a failed query.
func statusFor(err error) int {
	switch {
	case errors.Is(err, stats.ErrUnknownDimension),
		errors.Is(err, stats.ErrUnknownMetric),
		errors.Is(err, stats.ErrUnknownStatistic),
		errors.Is(err, stats.ErrNoGroupBy):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start))
		})
	}
}
