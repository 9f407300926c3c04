// internal/domain/models/memberprofile.go
package models

// MemberProfile is the merged view returned by the user-lookup endpoint:
// the Whop user record plus membership context within the caller's company
// when the user is (or was) a member there. It is assembled per request and
// never persisted.
type MemberProfile struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name,omitempty"`
	Bio            string `json:"bio,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
	Email          string `json:"email,omitempty"`

	// Membership context, present only when found on the company roster.
	JoinedAt     string  `json:"joinedAt,omitempty"`
	TotalSpent   float64 `json:"totalSpent,omitempty"`
	MemberStatus string  `json:"memberStatus,omitempty"`
	AccessLevel  string  `json:"accessLevel,omitempty"`
}
