// internal/app/features/manatal/routes.go
package manatal

import (
	"github.com/nimble-la/stars/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the ATS routes (typically "/manatal"). Admin-only;
// clients never touch the ATS.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		pr.Get("/candidates", h.ServeSearch)
		pr.Get("/candidates/{manatalID}", h.ServeCandidate)
		pr.Post("/candidates/{manatalID}/import", h.HandleImport)
		pr.Get("/jobs", h.ServeOpenJobs)
	})

	return r
}
