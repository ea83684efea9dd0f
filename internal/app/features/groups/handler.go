// internal/app/features/groups/handler.go
package groups

import (
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	groupstore "github.com/dalemusser/classhub/internal/app/store/groups"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/inputval"
	"github.com/dalemusser/classhub/internal/app/system/ratelimit"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.uber.org/zap"
)

// maxBodyBytes caps request payloads.
const maxBodyBytes = 64 << 10

// Handler is the shared dependency container for the groups feature.
// Stores come from the registry per signed-in user; Joins throttles
// join-by-code attempts.
type Handler struct {
	Registry *groupstore.Registry
	Joins    *ratelimit.JoinLimiter
	Log      *zap.Logger
}

func NewHandler(registry *groupstore.Registry, joins *ratelimit.JoinLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		Registry: registry,
		Joins:    joins,
		Log:      logger,
	}
}

// caller resolves the signed-in user and their store. It writes a 401 and
// reports false when there is no user.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (*groupstore.Store, models.User, bool) {
	su, ok := auth.CurrentUser(r)
	if !ok || su.ID == "" {
		uierrors.JSON(w, http.StatusUnauthorized, "unauthorized", "Please sign in to continue.")
		return nil, models.User{}, false
	}
	u := su.User()
	return h.Registry.For(r.Context(), u.ID), u, true
}

// decode reads a JSON body into v and validates it. It writes a 400 and
// reports false on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		uierrors.JSON(w, http.StatusBadRequest, "bad_request", "Request body must be a JSON object.")
		return false
	}
	if res := inputval.Validate(v); res.HasErrors() {
		uierrors.JSON(w, http.StatusBadRequest, "invalid_input", res.First())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
