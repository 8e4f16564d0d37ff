// internal/app/routes.go
package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	hh "chatapp-backend/internal/handlers/http"
	"chatapp-backend/internal/middleware"
	"chatapp-backend/internal/util"
)

type RegisterDeps struct {
	DB           hh.Pinger // nil when no database is configured
	ReadyTimeout time.Duration
	Gatherer     prometheus.Gatherer
	Metrics      *middleware.Metrics
	Clock        util.Clock
}

// RegisterRoutes builds the route table. Preflight never reaches it; the CORS
// middleware in front of the router answers every OPTIONS request.
func RegisterRoutes(r *mux.Router, deps RegisterDeps) {
	if deps.Clock == nil {
		deps.Clock = util.RealClock{}
	}
	if deps.ReadyTimeout <= 0 {
		deps.ReadyTimeout = 2 * time.Second
	}
	ready := hh.ReadyHandler(deps.DB, deps.ReadyTimeout)

	// --- no prefix ---
	r.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", ready).Methods(http.MethodGet)
	if deps.Gatherer != nil {
		r.Handle("/metrics", hh.MetricsHandler(deps.Gatherer)).Methods(http.MethodGet)
	}

	// --- /api prefix ---
	// Registered with full paths on the root router: a mux subrouter drops the
	// method-mismatch error once a later sibling route fails to match, turning
	// 405 into 404.
	r.HandleFunc("/api/test", hh.TestHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/readyz", ready).Methods(http.MethodGet)

	notFound := http.Handler(hh.NotFoundHandler(deps.Clock))
	notAllowed := http.Handler(hh.MethodNotAllowedHandler(deps.Clock))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
		notFound = deps.Metrics.Unmatched(notFound)
		notAllowed = deps.Metrics.Unmatched(notAllowed)
	}
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notAllowed
}
