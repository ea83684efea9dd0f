// internal/app/features/groups/manage.go
package groups

import (
	"net/http"

	uierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	"github.com/dalemusser/classhub/internal/app/policy/grouppolicy"
	groupstore "github.com/dalemusser/classhub/internal/app/store/groups"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type flagInput struct {
	Flag  string `json:"flag" validate:"required,oneof=isAdmin hasMessagePermission" label:"Flag"`
	Value bool   `json:"value"`
}

type chatModeInput struct {
	Mode string `json:"mode" validate:"required,chatmode" label:"Chat mode"`
}

// requireGroupAdmin loads the group named in the URL and checks that user
// administers it. It writes 404 or 403 and reports false otherwise.
func requireGroupAdmin(w http.ResponseWriter, r *http.Request, store *groupstore.Store, user models.User) (models.Group, bool) {
	g, found := store.Get(chi.URLParam(r, "id"))
	if !found {
		uierrors.JSON(w, http.StatusNotFound, "not_found", "Group not found.")
		return models.Group{}, false
	}
	if !grouppolicy.IsAdmin(g, user.ID) {
		uierrors.JSON(w, http.StatusForbidden, "forbidden", "Only group admins can change this.")
		return models.Group{}, false
	}
	return g, true
}

// HandleSetMemberFlag handles POST /groups/{id}/members/{memberID}/flags.
func (h *Handler) HandleSetMemberFlag(w http.ResponseWriter, r *http.Request) {
	store, user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var in flagInput
	if !decode(w, r, &in) {
		return
	}
	flag, _ := groupstore.ParseMemberFlag(in.Flag)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "set member flag")
	defer cancel()
	store.Refresh(ctx)

	g, ok := requireGroupAdmin(w, r, store, user)
	if !ok {
		return
	}

	memberID := chi.URLParam(r, "memberID")
	if !store.SetMemberFlag(ctx, g.ID, memberID, flag, in.Value) {
		uierrors.JSON(w, http.StatusNotFound, "not_found", "Member not found.")
		return
	}

	h.Log.Info("member flag changed",
		zap.String("group_id", g.ID),
		zap.String("member_id", memberID),
		zap.String("flag", in.Flag),
		zap.Bool("value", in.Value),
		zap.String("by", user.ID))

	updated, _ := store.Get(g.ID)
	writeJSON(w, http.StatusOK, toView(updated, user, true))
}

// HandleSetChatMode handles POST /groups/{id}/chat-mode.
func (h *Handler) HandleSetChatMode(w http.ResponseWriter, r *http.Request) {
	store, user, ok := h.caller(w, r)
	if !ok {
		return
	}

	var in chatModeInput
	if !decode(w, r, &in) {
		return
	}
	mode, _ := models.ParseChatMode(in.Mode)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "set chat mode")
	defer cancel()
	store.Refresh(ctx)

	g, ok := requireGroupAdmin(w, r, store, user)
	if !ok {
		return
	}

	if !store.SetChatMode(ctx, g.ID, mode) {
		uierrors.JSON(w, http.StatusNotFound, "not_found", "Group not found.")
		return
	}

	updated, _ := store.Get(g.ID)
	writeJSON(w, http.StatusOK, toView(updated, user, true))
}
