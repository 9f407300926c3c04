package reports

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	"github.com/scamwatch/scamwatch/internal/app/store/imagestore"
	reportstore "github.com/scamwatch/scamwatch/internal/app/store/reports"
	"github.com/scamwatch/scamwatch/internal/app/system/authz"
	"github.com/scamwatch/scamwatch/internal/app/system/ratelimit"
	"github.com/scamwatch/scamwatch/internal/domain/models"
	"github.com/scamwatch/scamwatch/internal/testutil"
)

const (
	companyA = "biz_A"
	companyB = "biz_B"

	ownerID    = "user_owner"
	memberID   = "user_member"
	reportedID = "user_scammer"
)

// newTestHandler wires a Handler over the test database and an in-memory
// provider populated with companyA (owned by ownerID) and the reported
// user.
func newTestHandler(t *testing.T, db *mongo.Database) (*Handler, *testutil.FakeWhop) {
	t.Helper()
	fake := testutil.NewFakeWhop()
	fake.WithCompany(companyA, ownerID)
	fake.WithCompany(companyB, "user_other_owner")
	fake.WithUser(reportedID, "scammer")
	fake.WithUser(memberID, "honest_member")

	log := zap.NewNop()
	h := NewHandler(reportstore.New(db), authz.NewResolver(fake, log), fake, uierrors.NewErrorLogger(log), log)
	return h, fake
}

func TestSubmit_CreatesPendingReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	body := submitRequest{
		ReportedUsername: "@scammer",
		Description:      "Took payment and vanished",
		ProofImageURL:    "https://img.test/proof.png",
	}
	req := testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified(memberID, companyA), body)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var resp reportResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	got := resp.Report
	if got.Status != models.ReportStatusPending {
		t.Errorf("status = %q, want pending", got.Status)
	}
	if got.ReportedUsername != "scammer" {
		t.Errorf("reportedUsername = %q, want leading @ stripped", got.ReportedUsername)
	}
	if got.ReporterUserID != memberID {
		t.Errorf("reporterUserId = %q, want %q", got.ReporterUserID, memberID)
	}
	if got.ReporterUsername != "honest_member" {
		t.Errorf("reporterUsername = %q, want resolved from provider", got.ReporterUsername)
	}
	if got.CompanyID != companyA {
		t.Errorf("companyId = %q, want %q", got.CompanyID, companyA)
	}
	if got.ID.IsZero() {
		t.Error("report ID not assigned")
	}
	if got.CreatedAt.IsZero() {
		t.Error("createdAt not stamped")
	}
}

func TestSubmit_SanitizesDescription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	body := submitRequest{
		ReportedUsername: "scammer",
		Description:      `<script>alert("x")</script>He <b>stole</b> my money`,
		ProofImageURL:    "https://img.test/proof.png",
	}
	req := testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified(memberID, companyA), body)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var resp reportResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Report.Description != "He <b>stole</b> my money" {
		t.Errorf("description = %q, want script stripped and safe markup kept", resp.Report.Description)
	}
}

func TestSubmit_UnknownReporterFallback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	// user_ghost is not registered with the provider.
	body := submitRequest{
		ReportedUsername: "scammer",
		Description:      "desc",
		ProofImageURL:    "https://img.test/proof.png",
	}
	req := testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified("user_ghost", companyA), body)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var resp reportResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Report.ReporterUsername != unknownReporter {
		t.Errorf("reporterUsername = %q, want %q", resp.Report.ReporterUsername, unknownReporter)
	}
}

func TestSubmit_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	tests := []struct {
		name string
		body submitRequest
	}{
		{"missing reported username", submitRequest{Description: "d", ProofImageURL: "https://img.test/p.png"}},
		{"missing description", submitRequest{ReportedUsername: "scammer", ProofImageURL: "https://img.test/p.png"}},
		{"missing proof image", submitRequest{ReportedUsername: "scammer", Description: "d"}},
		{"data URL proof image", submitRequest{ReportedUsername: "scammer", Description: "d", ProofImageURL: "data:image/png;base64,AAAA"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified(memberID, companyA), tc.body)
			rec := httptest.NewRecorder()
			h.Submit(rec, req)
			testutil.AssertStatus(t, rec, http.StatusBadRequest)
		})
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	n, err := db.Collection("reports").CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("count reports: %v", err)
	}
	if n != 0 {
		t.Errorf("invalid submissions stored %d reports, want 0", n)
	}
}

func TestSubmit_RateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	h.Limits = ratelimit.NewSubmitLimiterWithConfig(100, time.Minute, 1, time.Minute)

	body := submitRequest{ReportedUsername: "scammer", Description: "d", ProofImageURL: "https://img.test/p.png"}

	rec := httptest.NewRecorder()
	h.Submit(rec, testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified(memberID, companyA), body))
	testutil.AssertStatus(t, rec, http.StatusCreated)

	rec = httptest.NewRecorder()
	h.Submit(rec, testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified(memberID, companyA), body))
	testutil.AssertStatus(t, rec, http.StatusTooManyRequests)
}

func TestSubmit_NoCompany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	body := submitRequest{ReportedUsername: "scammer", Description: "d", ProofImageURL: "https://img.test/p.png"}
	req := testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified(memberID, ""), body)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestSubmit_BodyCompanyOverridesIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	body := submitRequest{
		ReportedUsername: "scammer",
		Description:      "d",
		ProofImageURL:    "https://img.test/p.png",
		CompanyID:        companyB,
	}
	req := testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified(memberID, companyA), body)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var resp reportResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Report.CompanyID != companyB {
		t.Errorf("companyId = %q, want body value %q", resp.Report.CompanyID, companyB)
	}
}

func TestList_OwnerSeesCompanyReportsOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateReport(ctx, companyA, memberID, "scammer")
	fx.CreateReport(ctx, companyB, memberID, "scammer")

	req := testutil.NewVerifiedRequest(http.MethodGet, "/reports", testutil.Verified(ownerID, companyA))
	rec := httptest.NewRecorder()
	h.List(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp reportListResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if len(resp.Reports) != 1 {
		t.Fatalf("got %d reports, want 1 (tenant isolation)", len(resp.Reports))
	}
	if resp.Reports[0].CompanyID != companyA {
		t.Errorf("companyId = %q, want %q", resp.Reports[0].CompanyID, companyA)
	}
}

func TestList_RosterMemberAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, fake := newTestHandler(t, db)
	fake.WithRosterEntry(companyA, "user_mod", "moderator")

	req := testutil.NewVerifiedRequest(http.MethodGet, "/reports", testutil.Verified("user_mod", companyA))
	rec := httptest.NewRecorder()
	h.List(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
}

func TestList_PlainMemberForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	req := testutil.NewVerifiedRequest(http.MethodGet, "/reports", testutil.Verified(memberID, companyA))
	rec := httptest.NewRecorder()
	h.List(rec, req)

	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestList_Unauthenticated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	req := testutil.NewRequest(http.MethodGet, "/reports")
	rec := httptest.NewRecorder()
	h.List(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestMine_OwnReportsOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateReport(ctx, companyA, memberID, "scammer")
	fx.CreateReport(ctx, companyA, "user_someone_else", "scammer")
	fx.CreateReport(ctx, companyB, memberID, "scammer")

	req := testutil.NewVerifiedRequest(http.MethodGet, "/reports/my", testutil.Verified(memberID, companyA))
	rec := httptest.NewRecorder()
	h.Mine(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp reportListResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if len(resp.Reports) != 1 {
		t.Fatalf("got %d reports, want 1 (own reports in own company)", len(resp.Reports))
	}
	if resp.Reports[0].ReporterUserID != memberID {
		t.Errorf("reporterUserId = %q, want %q", resp.Reports[0].ReporterUserID, memberID)
	}
}

func reviewRequestFor(t *testing.T, action, reportID, userID string) *http.Request {
	t.Helper()
	req := testutil.NewVerifiedJSONRequest(t, http.MethodPatch, "/reports/"+reportID,
		testutil.Verified(userID, companyA), reviewRequest{Action: action})
	return testutil.WithChiURLParam(req, "id", reportID)
}

func TestReview_ApproveBansAndPersists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, fake := newTestHandler(t, db)
	fake.WithMembership(companyA, "mem_1", reportedID)
	fake.WithMembership(companyA, "mem_2", reportedID)

	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	report := fx.CreateReport(ctx, companyA, memberID, "scammer")

	rec := httptest.NewRecorder()
	h.Review(rec, reviewRequestFor(t, "approve", report.ID.Hex(), ownerID))

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp reportResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Report.Status != models.ReportStatusApproved {
		t.Errorf("status = %q, want approved", resp.Report.Status)
	}
	if resp.Report.ReviewedBy != ownerID {
		t.Errorf("reviewedBy = %q, want %q", resp.Report.ReviewedBy, ownerID)
	}
	if resp.Report.ReviewedAt == nil {
		t.Error("reviewedAt not stamped")
	}
	if len(fake.Cancelled) != 2 {
		t.Errorf("cancelled %d memberships, want 2", len(fake.Cancelled))
	}
}

func TestReview_DenyDoesNotBan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, fake := newTestHandler(t, db)
	fake.WithMembership(companyA, "mem_1", reportedID)

	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	report := fx.CreateReport(ctx, companyA, memberID, "scammer")

	rec := httptest.NewRecorder()
	h.Review(rec, reviewRequestFor(t, "deny", report.ID.Hex(), ownerID))

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp reportResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Report.Status != models.ReportStatusDenied {
		t.Errorf("status = %q, want denied", resp.Report.Status)
	}
	if len(fake.Cancelled) != 0 {
		t.Errorf("deny cancelled %d memberships, want 0", len(fake.Cancelled))
	}
}

func TestReview_BanFailureStillApproves(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, fake := newTestHandler(t, db)
	fake.WithMembership(companyA, "mem_1", reportedID)
	fake.Errs["CancelMembership"] = whopTestErr{}

	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	report := fx.CreateReport(ctx, companyA, memberID, "scammer")

	rec := httptest.NewRecorder()
	h.Review(rec, reviewRequestFor(t, "approve", report.ID.Hex(), ownerID))

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp reportResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Report.Status != models.ReportStatusApproved {
		t.Errorf("status = %q, want approved despite ban failure", resp.Report.Status)
	}
}

type whopTestErr struct{}

func (whopTestErr) Error() string { return "provider unavailable" }

func TestReview_InvalidAction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	report := fx.CreateReport(ctx, companyA, memberID, "scammer")

	rec := httptest.NewRecorder()
	h.Review(rec, reviewRequestFor(t, "reject", report.ID.Hex(), ownerID))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestReview_PlainMemberForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	report := fx.CreateReport(ctx, companyA, memberID, "scammer")

	rec := httptest.NewRecorder()
	h.Review(rec, reviewRequestFor(t, "approve", report.ID.Hex(), memberID))

	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestReview_MissingReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	rec := httptest.NewRecorder()
	h.Review(rec, reviewRequestFor(t, "approve", "64b000000000000000000000", ownerID))

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestReview_OtherCompanyReportHidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	report := fx.CreateReport(ctx, companyB, memberID, "scammer")

	// ownerID moderates companyA; companyB's report must look absent.
	rec := httptest.NewRecorder()
	h.Review(rec, reviewRequestFor(t, "approve", report.ID.Hex(), ownerID))

	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

// Walks a report through the whole workflow against the real handlers:
// a member files it, the owner approves it, and the final record carries
// the review stamp.
func TestSubmitThenApprove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, fake := newTestHandler(t, db)
	fake.WithMembership(companyA, "mem_1", reportedID)

	body := submitRequest{
		ReportedUsername: "@scammer",
		Description:      "Fake giveaway, kept the entry fees",
		ProofImageURL:    "https://img.test/proof.png",
	}
	req := testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified(memberID, companyA), body)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	var submitted reportResponse
	testutil.DecodeJSON(t, rec.Body, &submitted)
	if submitted.Report.Status != models.ReportStatusPending {
		t.Fatalf("status after submit = %q, want pending", submitted.Report.Status)
	}

	rec = httptest.NewRecorder()
	h.Review(rec, reviewRequestFor(t, "approve", submitted.Report.ID.Hex(), ownerID))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var reviewed reportResponse
	testutil.DecodeJSON(t, rec.Body, &reviewed)
	if reviewed.Report.Status != models.ReportStatusApproved {
		t.Errorf("status after review = %q, want approved", reviewed.Report.Status)
	}
	if reviewed.Report.ReviewedBy != ownerID || reviewed.Report.ReviewedAt == nil {
		t.Errorf("review stamp missing: reviewedBy=%q reviewedAt=%v",
			reviewed.Report.ReviewedBy, reviewed.Report.ReviewedAt)
	}
	if len(fake.Cancelled) != 1 {
		t.Errorf("cancelled %d memberships, want 1", len(fake.Cancelled))
	}
}

func TestReview_BodyCompanyOverridesIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	report := fx.CreateReport(ctx, companyB, memberID, "scammer")

	// companyB's owner reviews while the request headers resolved to
	// companyA; the body's companyId decides which report set and which
	// role check apply.
	req := testutil.NewVerifiedJSONRequest(t, http.MethodPatch, "/reports/"+report.ID.Hex(),
		testutil.Verified("user_other_owner", companyA),
		reviewRequest{Action: "deny", CompanyID: companyB})
	req = testutil.WithChiURLParam(req, "id", report.ID.Hex())

	rec := httptest.NewRecorder()
	h.Review(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp reportResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Report.Status != models.ReportStatusDenied {
		t.Errorf("status = %q, want denied", resp.Report.Status)
	}
}

// A proof image stored through the local backend must come back with a
// URL the submit validation accepts, or uploads could never be attached
// to a report.
func TestSubmit_AcceptsLocalUploadURL(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t, db)

	images, err := imagestore.NewLocal(t.TempDir(), "http://localhost:3000")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	url, err := images.Put(context.Background(), "proofs/2025/01/abcd1234-shot.png", "image/png", strings.NewReader("fake-png"), 8)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	body := submitRequest{
		ReportedUsername: "scammer",
		Description:      "desc",
		ProofImageURL:    url,
	}
	req := testutil.NewVerifiedJSONRequest(t, http.MethodPost, "/reports", testutil.Verified(memberID, companyA), body)
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	testutil.AssertStatus(t, rec, http.StatusCreated)

	var resp reportResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if resp.Report.ProofImageURL != url {
		t.Errorf("proofImageUrl = %q, want %q", resp.Report.ProofImageURL, url)
	}
}
