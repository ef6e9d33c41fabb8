// internal/app/features/pipeline/routes.go
package pipeline

import (
	"github.com/nimble-la/stars/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the pipeline routes (typically "/pipeline").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Both roles work the pipeline; handlers scope client access to
	// their own organization's positions.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/{id}", h.ServeView)
		pr.Put("/{id}/stage", h.HandleStage)
		pr.Get("/{id}/comments", h.ServeComments)
		pr.Post("/{id}/comments", h.HandleComment)
		pr.Get("/{id}/activity", h.ServeActivity)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		pr.Get("/", h.ServeByStage)
		pr.Post("/assign", h.HandleAssign)
		pr.Get("/activity/recent", h.ServeRecentActivity)
	})

	return r
}
