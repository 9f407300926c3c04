// Package reviewpolicy encodes the review rules for scam reports.
//
// Rules:
//   - Only the company owner or someone on the team roster may review.
//   - A review action is either "approve" or "deny"; anything else is
//     rejected before touching the store.
//   - Approving a report triggers removal of the reported user from the
//     company; denying does not.
package reviewpolicy

import (
	"github.com/scamwatch/scamwatch/internal/app/system/authz"
	"github.com/scamwatch/scamwatch/internal/domain/models"
)

// Review actions accepted over the wire.
const (
	ActionApprove = "approve"
	ActionDeny    = "deny"
)

// StatusForAction maps a review action to the status it persists.
// ok is false for unknown actions.
func StatusForAction(action string) (status string, ok bool) {
	switch action {
	case ActionApprove:
		return models.ReportStatusApproved, true
	case ActionDeny:
		return models.ReportStatusDenied, true
	default:
		return "", false
	}
}

// ShouldBan reports whether persisting this status also removes the
// reported user from the company.
func ShouldBan(status string) bool {
	return status == models.ReportStatusApproved
}

// CanReview reports whether an effective role may review reports.
func CanReview(role string) bool {
	return role == authz.RoleOwner || role == authz.RoleAdmin
}
