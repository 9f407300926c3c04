// internal/app/system/authz/authz.go

// Package authz classifies a verified user within a company.
//
// There is no local role store: ownership and team membership are read
// from the provider on every request. A provider failure classifies as
// "not owner" / "no roster role" for that call, which fails closed for
// anything gated on elevated access.
package authz

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/scamwatch/scamwatch/internal/app/system/whop"
)

// Effective roles reported to the UI, in precedence order.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleNone   = "none"
)

// Resolver answers ownership and roster questions against the provider.
type Resolver struct {
	provider whop.API
	log      *zap.Logger
}

// NewResolver constructs a Resolver over the given provider client.
func NewResolver(provider whop.API, logger *zap.Logger) *Resolver {
	return &Resolver{provider: provider, log: logger}
}

// IsCompanyOwner reports whether userID is the recorded owner of the
// company. Provider errors log and return false.
func (rs *Resolver) IsCompanyOwner(ctx context.Context, userID, companyID string) bool {
	company, err := rs.provider.RetrieveCompany(ctx, companyID)
	if err != nil {
		rs.log.Warn("company ownership check failed",
			zap.String("company_id", companyID),
			zap.Error(err))
		return false
	}
	return company.OwnerUser.ID == userID
}

// TeamRole returns the user's role string from the company's authorized-user
// roster, or "" when the user is not on the roster (or the lookup fails).
func (rs *Resolver) TeamRole(ctx context.Context, userID, companyID string) string {
	roster, err := rs.provider.ListAuthorizedUsers(ctx, companyID)
	if err != nil {
		rs.log.Warn("team roster lookup failed",
			zap.String("company_id", companyID),
			zap.Error(err))
		return ""
	}
	for _, entry := range roster {
		if entry.User.ID == userID {
			return entry.Role
		}
	}
	return ""
}

// IsTeamMember reports whether the user appears on the company roster at all.
func (rs *Resolver) IsTeamMember(ctx context.Context, userID, companyID string) bool {
	return rs.TeamRole(ctx, userID, companyID) != ""
}

// CanModerate reports whether the user may review reports for the company:
// the company owner or anyone on the team roster.
func (rs *Resolver) CanModerate(ctx context.Context, userID, companyID string) bool {
	if rs.IsCompanyOwner(ctx, userID, companyID) {
		return true
	}
	return rs.IsTeamMember(ctx, userID, companyID)
}

// ResolveRole computes the effective role for display purposes.
//
// Precedence: company owner > roster "owner" (co-owner) > any other roster
// role (reported as admin) > plain member. Costs two provider calls; the
// result is never cached.
func (rs *Resolver) ResolveRole(ctx context.Context, userID, companyID string) string {
	if rs.IsCompanyOwner(ctx, userID, companyID) {
		return RoleOwner
	}
	switch role := strings.ToLower(rs.TeamRole(ctx, userID, companyID)); {
	case role == "owner":
		return RoleOwner
	case role != "":
		return RoleAdmin
	default:
		return RoleMember
	}
}
