package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aquaalert",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aquaalert",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	// Simulation metrics
	readingsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aquaalert",
			Subsystem: "simulation",
			Name:      "readings_total",
			Help:      "Total number of generated readings",
		},
		[]string{"sensor"},
	)

	anomaliesInjected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aquaalert",
			Subsystem: "simulation",
			Name:      "anomalies_total",
			Help:      "Total number of injected anomaly archetypes",
		},
		[]string{"archetype"},
	)

	tickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aquaalert",
			Subsystem: "simulation",
			Name:      "tick_duration_seconds",
			Help:      "Duration of one full sensor sweep",
			Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	simulationRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aquaalert",
			Subsystem: "simulation",
			Name:      "running",
			Help:      "Whether the simulation loop is running (1) or stopped (0)",
		},
	)

	// Alert metrics
	findingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aquaalert",
			Subsystem: "alerts",
			Name:      "findings_total",
			Help:      "Total number of evaluator findings",
		},
		[]string{"kind", "parameter"},
	)

	alertsRaised = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aquaalert",
			Subsystem: "alerts",
			Name:      "raised_total",
			Help:      "Total number of alert records raised",
		},
		[]string{"severity"},
	)

	// Notification metrics
	emailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aquaalert",
			Subsystem: "notify",
			Name:      "emails_total",
			Help:      "Total number of email dispatch attempts",
		},
		[]string{"severity", "status"},
	)

	rosterFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aquaalert",
			Subsystem: "notify",
			Name:      "roster_fallbacks_total",
			Help:      "Total number of roster lookups that fell back to static data",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordReading records a generated reading
func RecordReading(sensorID string) {
	readingsGenerated.WithLabelValues(sensorID).Inc()
}

// RecordAnomaly records an injected anomaly archetype
func RecordAnomaly(archetype string) {
	anomaliesInjected.WithLabelValues(archetype).Inc()
}

// RecordTickDuration records the duration of one sensor sweep
func RecordTickDuration(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

// SetSimulationRunning sets the running gauge
func SetSimulationRunning(running bool) {
	if running {
		simulationRunning.Set(1)
	} else {
		simulationRunning.Set(0)
	}
}

// RecordFinding records an evaluator finding
func RecordFinding(kind, parameter string) {
	findingsTotal.WithLabelValues(kind, parameter).Inc()
}

// RecordAlert records a raised alert
func RecordAlert(severity string) {
	alertsRaised.WithLabelValues(severity).Inc()
}

// RecordEmail records an email dispatch attempt
func RecordEmail(severity, status string) {
	emailsSent.WithLabelValues(severity, status).Inc()
}

// RecordRosterFallback records a roster lookup falling back to static data
func RecordRosterFallback() {
	rosterFallbacks.Inc()
}
