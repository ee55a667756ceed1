// Package http provides the HTTP transport for the drought-index service.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"climdex/internal/config"
	"climdex/internal/indices"
	"climdex/internal/middleware"
	"climdex/internal/observability"
)

// Server wires the router, middleware chain, and handlers together.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	handler *IndexHandler
	router  chi.Router
}

// NewServer builds the HTTP server surface around a calculator. The metrics
// registry also backs the /metrics endpoint.
func NewServer(cfg *config.Config, calculator *indices.Calculator, registry *prometheus.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	var metrics *observability.Metrics
	if registry != nil {
		metrics = observability.NewMetrics(registry)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		handler: NewIndexHandler(calculator, cfg.Compute, logger, metrics),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	r.Use(maxBody(cfg.Server.MaxBodyBytes))

	r.Get("/healthz", s.health)
	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
	r.Route("/api/v1", func(r chi.Router) {
		s.handler.RegisterRoutes(r)
	})

	s.router = r
	return s
}

// Router returns the assembled handler for use by an http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func maxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
