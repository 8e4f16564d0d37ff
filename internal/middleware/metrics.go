// internal/middleware/metrics.go
// Prometheus instrumentation for routed requests.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// UnmatchedRoute labels requests that hit no registered route.
const UnmatchedRoute = "unmatched"

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the HTTP collectors on reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Middleware labels by route template, e.g. "/api/test", never the raw path.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return m.instrument(next, func(r *http.Request) string {
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				return tpl
			}
		}
		return UnmatchedRoute
	})
}

// Unmatched wraps the router's not-found and method-not-allowed handlers,
// which mux serves without running middleware.
func (m *Metrics) Unmatched(next http.Handler) http.Handler {
	return m.instrument(next, func(*http.Request) string { return UnmatchedRoute })
}

func (m *Metrics) instrument(next http.Handler, route func(*http.Request) string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		status := strconv.Itoa(rec.status)
		label := route(r)
		m.requests.WithLabelValues(r.Method, label, status).Inc()
		m.duration.WithLabelValues(r.Method, label, status).Observe(time.Since(start).Seconds())
	})
}
