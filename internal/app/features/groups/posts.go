// internal/app/features/groups/posts.go
package groups

import (
	"net/http"

	uierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	"github.com/dalemusser/classhub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// HandleRecordPost handles POST /groups/{id}/posts. Post bodies are not
// stored; only the group's post counter moves.
func (h *Handler) HandleRecordPost(w http.ResponseWriter, r *http.Request) {
	store, user, ok := h.caller(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "record post")
	defer cancel()
	store.Refresh(ctx)

	id := chi.URLParam(r, "id")
	g, found := store.Get(id)
	if !found {
		uierrors.JSON(w, http.StatusNotFound, "not_found", "Group not found.")
		return
	}
	if !grouppolicy.CanPost(g, user) {
		uierrors.JSON(w, http.StatusForbidden, "forbidden", "Only faculty, class representatives and group admins can post.")
		return
	}
	if !store.RecordPost(ctx, id, user) {
		uierrors.JSON(w, http.StatusForbidden, "forbidden", "")
		return
	}

	updated, _ := store.Get(id)
	writeJSON(w, http.StatusOK, map[string]int{"post_count": updated.PostCount})
}
