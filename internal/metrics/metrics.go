// Package metrics provides Prometheus instrumentation for the mortgage service.
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

const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// SimulationsTotal counts simulation runs by outcome.
	SimulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hkmortgage_simulations_total",
		Help: "Total number of mortgage simulations",
	}, []string{"outcome"})

	SimulationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hkmortgage_simulation_duration_seconds",
		Help:    "Time spent running a single simulation",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	// CacheLookups counts result cache lookups by backend and hit/miss.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hkmortgage_cache_lookups_total",
		Help: "Result cache lookups",
	}, []string{"backend", "result"})

	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hkmortgage_exports_total",
		Help: "Reports rendered, by format",
	}, []string{"format"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hkmortgage_rate_limited_total",
		Help: "Requests rejected by the per-client rate limiter",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hkmortgage_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hkmortgage_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// ObserveSimulation records one run.
func ObserveSimulation(outcome string, elapsed time.Duration) {
	SimulationsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		SimulationDuration.Observe(elapsed.Seconds())
	}
}

// ObserveCache records a cache lookup.
func ObserveCache(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(backend, result).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency. The path label is the chi
// route pattern when one matched, so URL parameters do not explode
// cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if pattern := rc.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
