// internal/handlers/http/test_handler.go
// Fixed status payload the frontend polls to confirm the backend is reachable.

package http

import (
	"net/http"

	"chatapp-backend/internal/util"
)

const (
	TestStatus  = "ok"
	TestMessage = "Backend is working!"
)

// TestHandler answers GET /api/test. It reads nothing from the request.
func TestHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"status":  TestStatus,
		"message": TestMessage,
	}
	_ = util.WriteJSON(w, http.StatusOK, resp)
}
