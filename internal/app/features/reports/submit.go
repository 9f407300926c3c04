// internal/app/features/reports/submit.go
package reports

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	reportstore "github.com/scamwatch/scamwatch/internal/app/store/reports"
	"github.com/scamwatch/scamwatch/internal/app/system/auth"
	"github.com/scamwatch/scamwatch/internal/app/system/htmlsanitize"
	"github.com/scamwatch/scamwatch/internal/app/system/inputval"
	"github.com/scamwatch/scamwatch/internal/app/system/normalize"
	"github.com/scamwatch/scamwatch/internal/app/system/timeouts"
)

// unknownReporter is stored when the provider cannot tell us the
// reporter's username. The user ID from the verified token is always
// recorded, so the account stays traceable.
const unknownReporter = "Unknown"

// Submit handles POST /reports. Any verified member of the company may
// file a report; the record is created pending and waits for review.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		uierrors.RenderUnauthorized(w)
		return
	}

	if allowed, reason := h.Limits.Check(r, id.UserID); !allowed {
		uierrors.RenderTooManyRequests(w, reason)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "submit-report: invalid JSON body", err, "Invalid request body")
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

	reported := normalize.Username(req.ReportedUsername)
	switch {
	case !inputval.IsValidUsername(reported):
		uierrors.RenderBadRequest(w, "reportedUsername is required")
		return
	case req.Description == "":
		uierrors.RenderBadRequest(w, "description is required")
		return
	case !inputval.IsValidHTTPURL(req.ProofImageURL):
		uierrors.RenderBadRequest(w, "proofImageUrl must be a valid http(s) URL")
		return
	}

	report, err := h.Reports.Create(r.Context(), reportstore.NewReport{
		ReportedUsername: reported,
		Description:      htmlsanitize.Sanitize(req.Description),
		ProofImageURL:    req.ProofImageURL,
		ReporterUserID:   id.UserID,
		ReporterUsername: h.reporterUsername(r.Context(), id.UserID),
		CompanyID:        companyID,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "submit-report: insert failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(reportResponse{Report: report})
}

// reporterUsername resolves the submitting user's username for display in
// the review queue. Best effort: a provider failure falls back to
// unknownReporter rather than blocking the submission.
func (h *Handler) reporterUsername(ctx context.Context, userID string) string {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	user, err := h.Provider.RetrieveUser(ctx, userID)
	if err != nil {
		h.Log.Warn("submit-report: reporter lookup failed",
			zap.String("user_id", userID),
			zap.Error(err))
		return unknownReporter
	}
	if user.Username == "" {
		return unknownReporter
	}
	return user.Username
}
