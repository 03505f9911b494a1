package router

import (
	"net/http"

	"gametopup-rest-api/internal/handler"
	"gametopup-rest-api/internal/middleware"
	"gametopup-rest-api/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler       *handler.Handler
	GameHandler   *handler.GameHandler
	GateHandler   *handler.GateHandler
	RegionHandler *handler.RegionHandler
	Logger        *logger.Logger
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Monitoring surface
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
			r.Get("/admin/stats", cfg.Handler.Stats)
		}

		if cfg.GameHandler != nil {
			r.Get("/game", cfg.GameHandler.ListGames)
			r.Get("/game/{slug}", cfg.GameHandler.GetGameDetail)
			r.Get("/games/list", cfg.GameHandler.ListAvailable)
			r.Get("/games/{slug}/items", cfg.GameHandler.GetGameItems)
		}

		if cfg.GateHandler != nil {
			r.Post("/check", cfg.GateHandler.Check)
		}

		if cfg.RegionHandler != nil {
			r.Post("/check-region", cfg.RegionHandler.CheckRegion)
		}
	})

	return r
}
