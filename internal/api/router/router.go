package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sreepuli/AquaAlert-sub000/internal/api/handlers"
	"github.com/sreepuli/AquaAlert-sub000/internal/api/middleware"
	"github.com/sreepuli/AquaAlert-sub000/internal/config"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/logger"
	"github.com/sreepuli/AquaAlert-sub000/internal/pkg/metrics"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Simulation *handlers.SimulationHandler
	Sensor     *handlers.SensorHandler
	Alert      *handlers.AlertHandler
	Summary    *handlers.SummaryHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(50, 100)) // 50 req/sec, burst of 100
	r.Use(metrics.Middleware)

	// Health checks and metrics
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Monitoring loop control
	r.Route("/api/v1/simulation", func(r chi.Router) {
		r.Post("/start", h.Simulation.Start)
		r.Post("/stop", h.Simulation.Stop)
		r.Get("/status", h.Simulation.Status)
		r.Post("/test-alert", h.Simulation.TestAlert)
	})

	// Sensors and readings
	r.Route("/api/v1/sensors", func(r chi.Router) {
		r.Get("/", h.Sensor.List)
		r.Get("/{id}", h.Sensor.Get)
		r.Get("/{id}/readings", h.Sensor.SensorReadings)
	})
	r.Get("/api/v1/readings", h.Sensor.Readings)

	// Alerts
	r.Route("/api/v1/alerts", func(r chi.Router) {
		r.Get("/", h.Alert.List)
		r.Put("/{id}/ack", h.Alert.Acknowledge)
	})

	// Daily summary
	r.Route("/api/v1/summary", func(r chi.Router) {
		r.Get("/", h.Summary.Get)
		r.Post("/send", h.Summary.Send)
	})

	return r
}
