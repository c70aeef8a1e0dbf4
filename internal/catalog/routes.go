package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the public catalog under /api and the back-office
// under /api/admin behind AdminOnly(adminToken).
func (h *Handler) RegisterRoutes(r chi.Router, adminToken string) {
	r.Get("/api/equipment", h.List)
	r.Get("/api/equipment/{id}", h.Get)
	r.Get("/api/compare", h.Compare)
	r.Post("/api/submissions", h.Submit)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(AdminOnly(adminToken))

		r.Post("/equipment", h.Create)
		r.Put("/equipment/{id}", h.Update)
		r.Delete("/equipment/{id}", h.Delete)

		r.Get("/submissions", h.ListSubmissions)
		r.Post("/submissions/{id}/approve", h.Approve)
		r.Post("/submissions/{id}/reject", h.Reject)

		r.Post("/import", h.Import)
	})
}

// Routes returns a standalone handler with only the catalog endpoints.
func (h *Handler) Routes(adminToken string) http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r, adminToken)
	return r
}
