// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/nimble-la/stars/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the notification routes (typically "/notifications").
// All routes operate on the signed-in user's own notifications.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/unread_count", h.ServeUnreadCount)
		pr.Post("/read_all", h.HandleMarkAllRead)
		pr.Post("/{id}/read", h.HandleMarkRead)
	})

	return r
}
