// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authservice "github.com/Flv72S/Eterna-Home-sub001/internal/auth/service"
	docstore "github.com/Flv72S/Eterna-Home-sub001/internal/document/store"
	houseservice "github.com/Flv72S/Eterna-Home-sub001/internal/house/service"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/health"
	"github.com/Flv72S/Eterna-Home-sub001/internal/platform/middleware"
)

// Handler carries the services the HTTP layer exposes.
type Handler struct {
	auth      *authservice.Service
	houses    *houseservice.Service
	documents docstore.Store
	logger    *slog.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(auth *authservice.Service, houses *houseservice.Service, documents docstore.Store, logger *slog.Logger) *Handler {
	return &Handler{
		auth:      auth,
		houses:    houses,
		documents: documents,
		logger:    logger,
	}
}

// RouterConfig tunes transport-level behavior.
type RouterConfig struct {
	LoginRatePerSecond float64
	LoginRateBurst     int
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(h *Handler, healthHandler *health.Handler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))

	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.LoginRatePerSecond, cfg.LoginRateBurst, logger))
			r.Post("/auth/login", h.handleLogin)
		})

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(h.auth, logger))

			r.Post("/auth/logout", h.handleLogout)
			r.Get("/houses", h.handleListHouses)

			// House-scoped resources additionally require X-House-ID.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHouse(h.houses, logger))
				r.Get("/documents", h.handleListDocuments)
			})
		})
	})

	return r
}
