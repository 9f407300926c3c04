// internal/app/features/authrole/routes.go
package authrole

import "github.com/go-chi/chi/v5"

// Routes mounts the auth role endpoints.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/role", h.Serve)
	return r
}
