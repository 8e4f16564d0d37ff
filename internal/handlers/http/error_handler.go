// internal/handlers/http/error_handler.go
package http

import (
	"net/http"

	"chatapp-backend/internal/util"
)

// NotFoundHandler replies 404 with the JSON error body.
func NotFoundHandler(clock util.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = util.WriteError(w, r, clock, http.StatusNotFound)
	}
}

// MethodNotAllowedHandler replies 405 with the JSON error body.
func MethodNotAllowedHandler(clock util.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = util.WriteError(w, r, clock, http.StatusMethodNotAllowed)
	}
}
