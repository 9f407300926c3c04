// internal/app/features/upload/routes.go
package upload

import (
	"github.com/go-chi/chi/v5"

	"github.com/scamwatch/scamwatch/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(rr chi.Router) {
		rr.Use(auth.RequireVerified)
		rr.Post("/", h.Serve)
	})

	return r
}
