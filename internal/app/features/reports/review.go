// internal/app/features/reports/review.go
package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	"github.com/scamwatch/scamwatch/internal/app/policy/reviewpolicy"
	reportstore "github.com/scamwatch/scamwatch/internal/app/store/reports"
	"github.com/scamwatch/scamwatch/internal/app/system/auth"
	"github.com/scamwatch/scamwatch/internal/app/system/normalize"
	"github.com/scamwatch/scamwatch/internal/app/system/timeouts"
	"github.com/scamwatch/scamwatch/internal/domain/models"
)

// Review handles PATCH /reports/{id}. Approving a report bans the
// reported user from the company (best effort) and marks the report
// approved; denying only marks it denied. Either way the decision is
// recorded with the reviewer and timestamp.
func (h *Handler) Review(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		uierrors.RenderUnauthorized(w)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "review-report: invalid JSON body", err, "Invalid request body")
		return
	}

	companyID := normalize.CompanyID(req.CompanyID)
	if companyID == "" {
		companyID = id.CompanyID
	}
	if companyID == "" {
		companyID = normalize.CompanyID(r.URL.Query().Get("company_id"))
	}
	if companyID == "" {
		uierrors.RenderBadRequest(w, "Company could not be determined")
		return
	}

	status, ok := reviewpolicy.StatusForAction(req.Action)
	if !ok {
		uierrors.RenderBadRequest(w, `action must be "approve" or "deny"`)
		return
	}

	role := h.Roles.ResolveRole(r.Context(), id.UserID, companyID)
	if !reviewpolicy.CanReview(role) {
		uierrors.RenderForbidden(w, "Only the company team can review reports")
		return
	}

	reportID := chi.URLParam(r, "id")
	report, err := h.Reports.GetByID(r.Context(), reportID, companyID)
	if errors.Is(err, reportstore.ErrNotFound) {
		uierrors.RenderNotFound(w, "Report not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "review-report: lookup failed", err)
		return
	}

	if reviewpolicy.ShouldBan(status) {
		h.banReportedUser(r.Context(), report)
	}

	updated, err := h.Reports.UpdateStatus(r.Context(), reportID, companyID, status, id.UserID)
	if errors.Is(err, reportstore.ErrNotFound) {
		uierrors.RenderNotFound(w, "Report not found")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "review-report: update failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reportResponse{Report: updated})
}

// banReportedUser removes the reported user from the company on approval.
// Strictly best effort: any failure is logged and the approval proceeds,
// since a moderator can always remove the user from the provider
// dashboard by hand.
func (h *Handler) banReportedUser(ctx context.Context, report models.Report) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	user, err := h.Provider.RetrieveUser(ctx, report.ReportedUsername)
	if err != nil {
		h.Log.Warn("review-report: reported user lookup failed, skipping ban",
			zap.String("reported_username", report.ReportedUsername),
			zap.String("company_id", report.CompanyID),
			zap.Error(err))
		return
	}

	banned, err := h.Provider.BanUserFromCompany(ctx, user.ID, report.CompanyID)
	if err != nil {
		h.Log.Warn("review-report: ban failed",
			zap.String("user_id", user.ID),
			zap.String("company_id", report.CompanyID),
			zap.Error(err))
		return
	}
	h.Log.Info("review-report: reported user banned",
		zap.String("user_id", user.ID),
		zap.String("company_id", report.CompanyID),
		zap.Bool("memberships_cancelled", banned))
}
