// internal/app/features/groups/routes.go
package groups

import (
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Everything under /groups requires authentication
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// LIST / CREATE
		pr.Get("/", h.ServeGroupsList)
		pr.Post("/", h.HandleCreateGroup)

		// JOIN BY CODE
		pr.Post("/join", h.HandleJoinGroup)

		// NAV
		pr.Get("/admin-check", h.ServeAdminCheck)

		// VIEW
		pr.Get("/{id}", h.ServeGroupView)

		// MANAGE (group admins only)
		pr.Post("/{id}/members/{memberID}/flags", h.HandleSetMemberFlag)
		pr.Post("/{id}/chat-mode", h.HandleSetChatMode)

		// POSTS
		pr.Post("/{id}/posts", h.HandleRecordPost)
	})

	return r
}
