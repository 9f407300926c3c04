// internal/app/system/whop/types.go
package whop

// User is a Whop user record.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	CreatedAt      string `json:"created_at"`
	ProfilePicture struct {
		URL string `json:"url"`
	} `json:"profile_picture"`
}

// Company is a Whop business (the tenant unit for ScamWatch).
type Company struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	OwnerUser struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"owner_user"`
}

// Experience identifies a deployed app surface; it resolves to the
// company that installed it.
type Experience struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company struct {
		ID string `json:"id"`
	} `json:"company"`
}

// AuthorizedUser is an entry on a company's team roster. Role is
// provider-defined ("owner", "admin", "moderator", …).
type AuthorizedUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

// Member is a customer of a company, with membership context attached.
type Member struct {
	ID            string  `json:"id"`
	JoinedAt      string  `json:"joined_at"`
	USDTotalSpent float64 `json:"usd_total_spent"`
	Status        string  `json:"status"`
	AccessLevel   string  `json:"access_level"`
	User          struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
		Email    string `json:"email"`
	} `json:"user"`
}

// Membership is a user's access grant to one of a company's products.
// Cancelling all of a user's memberships is how ScamWatch bans them.
type Membership struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	UserID string `json:"user_id"`
}

// MemberListOptions narrows a member roster listing.
type MemberListOptions struct {
	Query   string   // free-text search over username / name / email
	UserIDs []string // restrict to specific user ids
	First   int      // stop after this many records (0 = all)
}
