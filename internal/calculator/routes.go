package calculator

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /api/calculators prefix.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/calculators", func(r chi.Router) {
		r.Get("/", h.List)
		mount(r, h, kerf)
		mount(r, h, powerDensity)
		mount(r, h, chiller)
		mount(r, h, cost)
		mount(r, h, nozzleLife)
	})
}

func mount[In, Out any](r chi.Router, h *Handler, c calculation[In, Out]) {
	r.Post("/"+c.name, serveCalculation(c))
	r.Post("/"+c.name+"/report", serveReport(h, c))
}

// Routes returns a standalone handler with only the calculator endpoints.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}
