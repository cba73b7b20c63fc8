package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apihandler "github.com/maraichr/cdm/internal/api/handler"
	apimw "github.com/maraichr/cdm/internal/api/middleware"
	"github.com/maraichr/cdm/internal/resolver"
)

// NewRouter serves the published build read-only. gatherer may be nil to
// leave /metrics unmounted.
func NewRouter(logger *slog.Logger, snapshot *resolver.Snapshot, gatherer prometheus.Gatherer) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.Logger(logger))
	r.Use(chimw.Recoverer)

	// Health checks
	health := apihandler.NewHealthHandler(snapshot)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		entities := apihandler.NewEntityHandler(logger, snapshot)
		r.Get("/build", entities.Build)
		r.Route("/library/{kind}", func(r chi.Router) {
			r.Get("/", entities.ListLibrary)
			r.Get("/{id}", entities.GetLibrary)
		})
		r.Route("/project/{kind}", func(r chi.Router) {
			r.Get("/", entities.ListProject)
			r.Get("/{id}", entities.GetProject)
		})
	})

	return r
}
