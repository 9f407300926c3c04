// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/scamwatch/scamwatch/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(rr chi.Router) {
		rr.Use(auth.RequireVerified)
		rr.Get("/{username}", h.Lookup)
	})

	return r
}
