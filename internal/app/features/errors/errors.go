// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"
)

// body is the JSON shape of every error response.
type body struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// JSON writes an error response with the given status. code is a short
// machine-readable token; message is for people and may be empty.
func JSON(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body{Error: code, Message: message})
}

// Handler serves router-level error responses.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound is installed as the router's 404 handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusNotFound, "not_found", "No such resource.")
}

// MethodNotAllowed is installed as the router's 405 handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
}
