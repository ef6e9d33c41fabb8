// internal/app/features/candidates/routes.go
package candidates

import (
	"github.com/nimble-la/stars/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Candidate routes (typically "/candidates").
// Candidate records and their files are admin-managed; clients see
// candidates through the pipeline feature, scoped to their positions.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}", h.ServeView)
		pr.Put("/{id}", h.HandleUpdate)

		pr.Post("/{id}/files", h.HandleAddFile)
		pr.Delete("/{id}/files/{fileID}", h.HandleDeleteFile)
	})

	return r
}
