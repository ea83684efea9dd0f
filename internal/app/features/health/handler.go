package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/classhub/internal/app/store/kv"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Backend kv.Pinger
	Name    string // backend name reported in the response
	Log     *zap.Logger
}

// NewHandler constructs a health Handler. backend may be nil for a backend
// with nothing to ping.
func NewHandler(backend kv.Pinger, name string, logger *zap.Logger) *Handler {
	return &Handler{
		Backend: backend,
		Name:    name,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "backend":"mongo" }
//
// On backend failure: 503 and
//
//	{ "status":"error", "backend":"mongo", "message":"Storage unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:  "ok",
		Backend: h.Name,
	}

	if h.Backend != nil {
		if err := h.Backend.Ping(ctx); err != nil {
			h.Log.Error("health-check: backend ping failed",
				zap.String("backend", h.Name), zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			resp.Status = "error"
			resp.Message = "Storage unavailable"
			resp.Error = err.Error()
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
