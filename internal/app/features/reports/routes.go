// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"

	"github.com/scamwatch/scamwatch/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(rr chi.Router) {
		rr.Use(auth.RequireVerified)
		// Owner / team gating is enforced inside the handlers.
		rr.Get("/", h.List)
		rr.Post("/", h.Submit)
		rr.Get("/my", h.Mine)
		rr.Patch("/{id}", h.Review)
	})

	return r
}
