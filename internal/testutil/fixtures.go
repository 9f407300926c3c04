package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scamwatch/scamwatch/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateReport inserts a pending report for the given company and
// reporter, returning it with its generated ID.
func (f *Fixtures) CreateReport(ctx context.Context, companyID, reporterUserID, reportedUsername string) models.Report {
	f.t.Helper()

	report := models.Report{
		ID:               primitive.NewObjectID(),
		ReportedUsername: reportedUsername,
		Description:      "Test report description",
		ProofImageURL:    "https://img.test/proof.png",
		ReporterUserID:   reporterUserID,
		ReporterUsername: "reporter",
		CompanyID:        companyID,
		Status:           models.ReportStatusPending,
		CreatedAt:        time.Now().UTC(),
	}

	if _, err := f.db.Collection("reports").InsertOne(ctx, report); err != nil {
		f.t.Fatalf("failed to create test report: %v", err)
	}
	return report
}

// CreateReviewedReport inserts a report already reviewed with the given
// status ("approved" or "denied").
func (f *Fixtures) CreateReviewedReport(ctx context.Context, companyID, reporterUserID, status, reviewerID string) models.Report {
	f.t.Helper()

	now := time.Now().UTC()
	report := models.Report{
		ID:               primitive.NewObjectID(),
		ReportedUsername: "@reviewed",
		Description:      "Already reviewed",
		ProofImageURL:    "https://img.test/proof.png",
		ReporterUserID:   reporterUserID,
		ReporterUsername: "reporter",
		CompanyID:        companyID,
		Status:           status,
		CreatedAt:        now.Add(-time.Hour),
		ReviewedAt:       &now,
		ReviewedBy:       reviewerID,
	}

	if _, err := f.db.Collection("reports").InsertOne(ctx, report); err != nil {
		f.t.Fatalf("failed to create reviewed test report: %v", err)
	}
	return report
}
