// internal/util/errors.go
// JSON error bodies in the shape the frontend already parses.

package util

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorBody mirrors the default error document of the previous backend:
// {"timestamp":..., "status":404, "error":"Not Found", "path":"/x"}.
type ErrorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Path      string `json:"path"`
}

// NewErrorBody builds the body for status at the request path.
func NewErrorBody(clock Clock, status int, path string) ErrorBody {
	return ErrorBody{
		Timestamp: clock.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Path:      path,
	}
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorBody for r.
func WriteError(w http.ResponseWriter, r *http.Request, clock Clock, status int) error {
	return WriteJSON(w, status, NewErrorBody(clock, status, r.URL.Path))
}
