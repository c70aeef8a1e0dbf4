package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"laser-compare/internal/calculator"
	"laser-compare/internal/catalog"
	"laser-compare/internal/handlers"
	"laser-compare/internal/observability"
)

// Deps are the domain handlers mounted on the router.
type Deps struct {
	Calculators *calculator.Handler
	Catalog     *catalog.Handler
	AdminToken  string
}

func NewRouter(deps Deps) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	if deps.Calculators != nil {
		deps.Calculators.RegisterRoutes(r)
	}
	if deps.Catalog != nil {
		deps.Catalog.RegisterRoutes(r, deps.AdminToken)
	}

	return r
}
