// internal/app/features/groups/list.go
package groups

import (
	"net/http"

	groupstore "github.com/dalemusser/classhub/internal/app/store/groups"
	"github.com/dalemusser/classhub/internal/app/system/normalize"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
)

type listResponse struct {
	Groups []groupView `json:"groups"`
	Tab    string      `json:"tab"`
	Query  string      `json:"q,omitempty"`
}

// ServeGroupsList handles GET /groups?q=&tab=all|joined|admin.
func (h *Handler) ServeGroupsList(w http.ResponseWriter, r *http.Request) {
	store, user, ok := h.caller(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "list groups")
	defer cancel()
	store.Refresh(ctx)

	q := normalize.QueryParam(r.URL.Query().Get("q"))
	tab := groupstore.ParseTab(r.URL.Query().Get("tab"))

	writeJSON(w, http.StatusOK, listResponse{
		Groups: toViews(store.List(q, tab), user),
		Tab:    string(tab),
		Query:  q,
	})
}

// ServeAdminCheck handles GET /groups/admin-check. The app shell uses it to
// decide whether to show group-admin navigation.
func (h *Handler) ServeAdminCheck(w http.ResponseWriter, r *http.Request) {
	store, user, ok := h.caller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"is_group_admin": store.AdminOfAny(user.ID),
	})
}
