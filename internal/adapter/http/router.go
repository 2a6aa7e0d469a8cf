package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zora-digital-fashion/marketplace/internal/adapter/http/middleware"
	"github.com/zora-digital-fashion/marketplace/internal/platform/logger"
	"github.com/zora-digital-fashion/marketplace/internal/platform/metrics"
)

type RouterConfig struct {
	JWTSecret      string
	RequestTimeout time.Duration
}

// NewRouter wires the public catalog routes and the JWT protected purchase routes.
func NewRouter(h *Handler, cfg RouterConfig, log *logger.Logger, m *metrics.MetricsManager) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(log.Named("HTTP")))
	r.Use(middleware.Metrics(m))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/healthz", h.HandleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Get("/wearables", h.HandleSearchWearables)
		api.Get("/wearables/filters", h.HandleGetFilters)
		api.Get("/wearables/{id}", h.HandleGetWearable)
		api.Get("/wearables/{id}/model", h.HandleGetModelURL)

		api.Group(func(auth chi.Router) {
			auth.Use(middleware.JWTAuth(cfg.JWTSecret, log.Named("JWTAuth")))
			auth.Post("/wearables/{id}/purchase", h.HandlePurchase)
			auth.Get("/purchases", h.HandleListPurchases)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
	})
	return r
}
