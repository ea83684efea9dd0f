// internal/app/features/groups/join.go
package groups

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	groupstore "github.com/dalemusser/classhub/internal/app/store/groups"
	"github.com/dalemusser/classhub/internal/app/system/normalize"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type joinInput struct {
	Code string `json:"code" validate:"max=32" label:"Join code"`
}

type joinResponse struct {
	Group   groupView `json:"group"`
	Outcome string    `json:"outcome"`
}

// HandleJoinGroup handles POST /groups/join.
//
//	200 {group, outcome}  outcome is created, joined or already_member
//	400 blank code
//	409 a join for the same code is still running
//	429 too many attempts
func (h *Handler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	store, user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var in joinInput
	if !decode(w, r, &in) {
		return
	}

	if h.Joins != nil {
		if allowed, reason := h.Joins.Check(r, user.ID); !allowed {
			uierrors.JSON(w, http.StatusTooManyRequests, "rate_limited", reason)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "join group")
	defer cancel()

	g, outcome, err := store.JoinByCode(ctx, user, normalize.Code(in.Code))
	switch {
	case errors.Is(err, groupstore.ErrEmptyCode):
		uierrors.JSON(w, http.StatusBadRequest, "invalid_input", "Join code is required.")
		return
	case errors.Is(err, groupstore.ErrJoinInFlight):
		uierrors.JSON(w, http.StatusConflict, "join_in_flight", "A join for this code is already in progress.")
		return
	case err != nil:
		h.Log.Error("join group", zap.String("user_id", user.ID), zap.Error(err))
		uierrors.JSON(w, http.StatusInternalServerError, "internal", "")
		return
	}

	h.Log.Info("group join",
		zap.String("user_id", user.ID),
		zap.String("group_id", g.ID),
		zap.Stringer("outcome", outcome))

	writeJSON(w, http.StatusOK, joinResponse{
		Group:   toView(g, user, true),
		Outcome: outcome.String(),
	})
}
