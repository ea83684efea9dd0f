// internal/app/features/groups/view.go
package groups

import (
	"net/http"

	uierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeGroupView handles GET /groups/{id}.
func (h *Handler) ServeGroupView(w http.ResponseWriter, r *http.Request) {
	store, user, ok := h.caller(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view group")
	defer cancel()
	store.Refresh(ctx)

	g, found := store.Get(chi.URLParam(r, "id"))
	if !found {
		uierrors.JSON(w, http.StatusNotFound, "not_found", "Group not found.")
		return
	}
	writeJSON(w, http.StatusOK, toView(g, user, true))
}
