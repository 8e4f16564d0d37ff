// internal/handlers/http/health_handler.go
// Liveness and readiness probes.

package http

import (
	"context"
	"net/http"
	"time"

	"chatapp-backend/internal/util"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	_ = util.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

// ReadyHandler reports whether the optional database answers a ping within
// timeout. A nil db means no database is configured.
func ReadyHandler(db Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			_ = util.WriteJSON(w, http.StatusOK, map[string]any{
				"status": "ok",
				"db":     "disabled",
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			_ = util.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "unavailable",
				"db":     "down",
				"error":  err.Error(),
			})
			return
		}
		_ = util.WriteJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"db":     "up",
		})
	}
}
