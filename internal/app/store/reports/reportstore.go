// internal/app/store/reports/reportstore.go
package reportstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scamwatch/scamwatch/internal/domain/models"
)

// ErrNotFound is returned when a report does not exist under the given
// company. A valid ID belonging to another company is indistinguishable
// from a missing record; tenant isolation is enforced in the query filter.
var ErrNotFound = errors.New("report not found")

var errBadStatus = errors.New(`status must be "approved" or "denied"`)

// Store is the persistence adapter for reports. Every query is scoped by
// company_id.
type Store struct {
	c *mongo.Collection
}

// New binds a Store to the reports collection of db.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reports")}
}

// NewReport holds the caller-supplied fields for a submission. The store
// assigns ID, status and creation time.
type NewReport struct {
	ReportedUsername string
	Description      string
	ProofImageURL    string
	ReporterUserID   string
	ReporterUsername string
	CompanyID        string
}

// Create inserts a pending report and returns it with its assigned ID.
func (s *Store) Create(ctx context.Context, in NewReport) (models.Report, error) {
	report := models.Report{
		ReportedUsername: in.ReportedUsername,
		Description:      in.Description,
		ProofImageURL:    in.ProofImageURL,
		ReporterUserID:   in.ReporterUserID,
		ReporterUsername: in.ReporterUsername,
		CompanyID:        in.CompanyID,
		Status:           models.ReportStatusPending,
		CreatedAt:        time.Now().UTC(),
	}

	res, err := s.c.InsertOne(ctx, report)
	if err != nil {
		return models.Report{}, err
	}
	report.ID = res.InsertedID.(primitive.ObjectID)
	return report, nil
}

// ListByCompany returns all of a company's reports, newest first.
func (s *Store) ListByCompany(ctx context.Context, companyID string) ([]models.Report, error) {
	return s.find(ctx, bson.M{"company_id": companyID})
}

// ListByReporter returns reports filed by userID within the company,
// newest first.
func (s *Store) ListByReporter(ctx context.Context, userID, companyID string) ([]models.Report, error) {
	return s.find(ctx, bson.M{"company_id": companyID, "reporter_user_id": userID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reports := []models.Report{}
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// GetByID fetches one report scoped to the company. A malformed hex ID or
// a company mismatch both yield ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id, companyID string) (models.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Report{}, ErrNotFound
	}

	var report models.Report
	err = s.c.FindOne(ctx, bson.M{"_id": oid, "company_id": companyID}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Report{}, ErrNotFound
	}
	if err != nil {
		return models.Report{}, err
	}
	return report, nil
}

// UpdateStatus records a review decision, stamping review time and
// reviewer, and returns the updated report. The single findOneAndUpdate is
// the only concurrency guard: two racing reviews both succeed and the last
// write wins, which matches the platform's single-document atomicity.
func (s *Store) UpdateStatus(ctx context.Context, id, companyID, status, reviewerID string) (models.Report, error) {
	if !models.ValidReviewStatus(status) {
		return models.Report{}, errBadStatus
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Report{}, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":      status,
		"reviewed_at": time.Now().UTC(),
		"reviewed_by": reviewerID,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var report models.Report
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid, "company_id": companyID}, update, opts).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Report{}, ErrNotFound
	}
	if err != nil {
		return models.Report{}, err
	}
	return report, nil
}
