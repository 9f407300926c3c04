// internal/app/features/reports/list.go
package reports

import (
	"encoding/json"
	"net/http"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	"github.com/scamwatch/scamwatch/internal/app/policy/reviewpolicy"
	"github.com/scamwatch/scamwatch/internal/app/system/auth"
)

// List handles GET /reports: the moderation queue. Restricted to the
// company owner and team roster; plain members use /reports/my.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		uierrors.RenderUnauthorized(w)
		return
	}
	if id.CompanyID == "" {
		uierrors.RenderBadRequest(w, "Company could not be determined")
		return
	}

	role := h.Roles.ResolveRole(r.Context(), id.UserID, id.CompanyID)
	if !reviewpolicy.CanReview(role) {
		uierrors.RenderForbidden(w, "Only the company team can view all reports")
		return
	}

	reports, err := h.Reports.ListByCompany(r.Context(), id.CompanyID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list-reports: query failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reportListResponse{Reports: reports})
}

// Mine handles GET /reports/my: the caller's own submissions within the
// current company, newest first.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		uierrors.RenderUnauthorized(w)
		return
	}
	if id.CompanyID == "" {
		uierrors.RenderBadRequest(w, "Company could not be determined")
		return
	}

	reports, err := h.Reports.ListByReporter(r.Context(), id.UserID, id.CompanyID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "my-reports: query failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reportListResponse{Reports: reports})
}
