// internal/app/features/emails/routes.go
package emails

import (
	"github.com/nimble-la/stars/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts email-delivery inspection routes (typically "/emails").
// Admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		pr.Get("/log", h.ServeLog)
		pr.Get("/outbox", h.ServeOutboxStatus)
	})

	return r
}
