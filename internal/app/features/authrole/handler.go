// internal/app/features/authrole/handler.go
package authrole

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/scamwatch/scamwatch/internal/app/system/auth"
	"github.com/scamwatch/scamwatch/internal/app/system/authz"
)

// Handler resolves the caller's role within the current company.
type Handler struct {
	Roles *authz.Resolver
	Log   *zap.Logger
}

func NewHandler(roles *authz.Resolver, logger *zap.Logger) *Handler {
	return &Handler{
		Roles: roles,
		Log:   logger,
	}
}

// roleResponse is the JSON body for GET /auth/role.
type roleResponse struct {
	Role         string  `json:"role"`
	UserID       *string `json:"userId"`
	CompanyID    *string `json:"companyId"`
	IsAuthorized bool    `json:"isAuthorized"`
}

// Serve handles GET /auth/role.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := auth.CurrentIdentity(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(roleResponse{
			Role:         authz.RoleNone,
			IsAuthorized: false,
		})
		return
	}

	if id.CompanyID == "" {
		_ = json.NewEncoder(w).Encode(roleResponse{
			Role:         authz.RoleNone,
			UserID:       &id.UserID,
			IsAuthorized: false,
		})
		return
	}

	role := h.Roles.ResolveRole(r.Context(), id.UserID, id.CompanyID)

	_ = json.NewEncoder(w).Encode(roleResponse{
		Role:         role,
		UserID:       &id.UserID,
		CompanyID:    &id.CompanyID,
		IsAuthorized: role != authz.RoleNone,
	})
}
