// internal/app/features/users/lookup.go
package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	"github.com/scamwatch/scamwatch/internal/app/system/auth"
	"github.com/scamwatch/scamwatch/internal/app/system/inputval"
	"github.com/scamwatch/scamwatch/internal/app/system/normalize"
	"github.com/scamwatch/scamwatch/internal/app/system/timeouts"
	"github.com/scamwatch/scamwatch/internal/app/system/whop"
	"github.com/scamwatch/scamwatch/internal/domain/models"
)

// Lookup handles GET /users/{username}. Moderators use this to vet a
// reported user before deciding: the company's member roster is checked
// first (it carries join date, spend and status), then the global user
// directory as a fallback for people who never joined or already left.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		uierrors.RenderUnauthorized(w)
		return
	}
	if id.CompanyID == "" {
		uierrors.RenderBadRequest(w, "Company could not be determined")
		return
	}

	username := normalize.Username(chi.URLParam(r, "username"))
	if !inputval.IsValidUsername(username) {
		uierrors.RenderBadRequest(w, "Invalid username")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if member, found := h.findMember(ctx, id.CompanyID, username); found {
		profile := profileFromMember(member)
		h.enrichFromUser(ctx, &profile)
		writeProfile(w, profile)
		return
	}

	user, err := h.Provider.RetrieveUser(ctx, username)
	if errors.Is(err, whop.ErrNotFound) {
		uierrors.RenderNotFound(w, "User not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "user-lookup: retrieve failed", err)
		return
	}

	profile := profileFromUser(user)
	h.enrichFromRoster(ctx, id.CompanyID, &profile)
	writeProfile(w, profile)
}

// findMember searches the company roster for an exact username match.
func (h *Handler) findMember(ctx context.Context, companyID, username string) (whop.Member, bool) {
	members, err := h.Provider.ListMembers(ctx, companyID, whop.MemberListOptions{Query: username})
	if err != nil {
		h.Log.Warn("user-lookup: member search failed",
			zap.String("company_id", companyID),
			zap.Error(err))
		return whop.Member{}, false
	}
	for _, m := range members {
		if strings.EqualFold(m.User.Username, username) {
			return m, true
		}
	}
	return whop.Member{}, false
}

// enrichFromUser fills the profile fields only the full user record has.
// Best effort; the roster data already on the profile is enough to act on.
func (h *Handler) enrichFromUser(ctx context.Context, profile *models.MemberProfile) {
	user, err := h.Provider.RetrieveUser(ctx, profile.ID)
	if err != nil {
		h.Log.Warn("user-lookup: enrichment failed",
			zap.String("user_id", profile.ID),
			zap.Error(err))
		return
	}
	profile.Bio = user.Bio
	profile.ProfilePicture = user.ProfilePicture.URL
	profile.CreatedAt = user.CreatedAt
}

// enrichFromRoster attaches membership context to a directory-found user
// when they turn out to be on the roster after all (username search can
// miss on renames).
func (h *Handler) enrichFromRoster(ctx context.Context, companyID string, profile *models.MemberProfile) {
	members, err := h.Provider.ListMembers(ctx, companyID, whop.MemberListOptions{UserIDs: []string{profile.ID}, First: 1})
	if err != nil || len(members) == 0 {
		return
	}
	m := members[0]
	profile.Email = m.User.Email
	profile.JoinedAt = m.JoinedAt
	profile.TotalSpent = m.USDTotalSpent
	profile.MemberStatus = m.Status
	profile.AccessLevel = m.AccessLevel
}

func profileFromMember(m whop.Member) models.MemberProfile {
	return models.MemberProfile{
		ID:           m.User.ID,
		Username:     m.User.Username,
		Name:         m.User.Name,
		Email:        m.User.Email,
		JoinedAt:     m.JoinedAt,
		TotalSpent:   m.USDTotalSpent,
		MemberStatus: m.Status,
		AccessLevel:  m.AccessLevel,
	}
}

func profileFromUser(u *whop.User) models.MemberProfile {
	return models.MemberProfile{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture.URL,
		CreatedAt:      u.CreatedAt,
	}
}

func writeProfile(w http.ResponseWriter, profile models.MemberProfile) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(profile)
}
