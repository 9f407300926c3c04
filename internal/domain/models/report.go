// internal/domain/models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses. A report starts as pending and is moved exactly once
// to approved or denied by a reviewer.
const (
	ReportStatusPending  = "pending"
	ReportStatusApproved = "approved"
	ReportStatusDenied   = "denied"
)

// Report is a scam report filed by a community member against another
// member. Reports belong to exactly one company (the Whop business whose
// staff review them); company_id scopes every query and reports are never
// visible across companies.
type Report struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Who is being reported and why
	ReportedUsername string `bson:"reported_username" json:"reportedUsername"`
	Description      string `bson:"description" json:"description"`
	ProofImageURL    string `bson:"proof_image_url" json:"proofImageUrl"`

	// Who filed it. Whop user IDs are opaque strings ("user_…"); the
	// username is captured at submission time so the review queue stays
	// readable even if the reporter later leaves.
	ReporterUserID   string `bson:"reporter_user_id" json:"reporterUserId"`
	ReporterUsername string `bson:"reporter_username" json:"reporterUsername"`

	// Owning company ("biz_…"). Immutable after creation.
	CompanyID string `bson:"company_id" json:"companyId"`

	// "pending" | "approved" | "denied"
	Status string `bson:"status" json:"status"`

	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
	ReviewedAt *time.Time `bson:"reviewed_at,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy string     `bson:"reviewed_by,omitempty" json:"reviewedBy,omitempty"`
}

// IsReviewed returns true once a reviewer has approved or denied the report.
func (r Report) IsReviewed() bool {
	return r.Status == ReportStatusApproved || r.Status == ReportStatusDenied
}

// ValidReviewStatus reports whether s is a status a reviewer may assign.
func ValidReviewStatus(s string) bool {
	return s == ReportStatusApproved || s == ReportStatusDenied
}
