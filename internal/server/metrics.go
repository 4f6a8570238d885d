package server

import (
	"net/http"
	"time"

	"itemshare-api/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics collection for HTTP requests and
// the booking lifecycle.
type Metrics struct {
	reqTotal   *prometheus.CounterVec
	reqLatency *prometheus.HistogramVec

	bookingsCreated  prometheus.Counter
	bookingDecisions *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a Metrics instance backed by a private registry so
// tests can build servers without duplicate-registration panics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	bookingsCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Bookings placed into WAITING",
		},
	)

	bookingDecisions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_decisions_total",
			Help: "Owner decisions by resulting status",
		},
		[]string{"status"},
	)

	registry.MustRegister(reqTotal, reqLatency, bookingsCreated, bookingDecisions)

	return &Metrics{
		reqTotal:         reqTotal,
		reqLatency:       reqLatency,
		bookingsCreated:  bookingsCreated,
		bookingDecisions: bookingDecisions,
		registry:         registry,
	}
}

// BookingCreated records a booking placed into WAITING.
func (m *Metrics) BookingCreated() {
	m.bookingsCreated.Inc()
}

// BookingDecided records an owner decision with its resulting status.
func (m *Metrics) BookingDecided(status model.BookingStatus) {
	m.bookingDecisions.WithLabelValues(string(status)).Inc()
}

// Middleware returns a chi middleware that records request counts and
// latencies per route pattern.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rw, r)

			// Use chi's route pattern so ids do not explode cardinality.
			path := r.URL.Path
			if chiCtx := chi.RouteContext(r.Context()); chiCtx != nil && len(chiCtx.RoutePatterns) > 0 {
				path = chiCtx.RoutePatterns[len(chiCtx.RoutePatterns)-1]
			}

			status := http.StatusText(rw.code)
			m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
			m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler returns an http.Handler that serves the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the HTTP status code for metrics
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	return sr.ResponseWriter.Write(b)
}
