// internal/app/system/whop/operations.go
package whop

import (
	"context"
	"net/url"
	"strconv"
)

// RetrieveUser fetches a user by ID ("user_…") or by username.
func (c *Client) RetrieveUser(ctx context.Context, idOrUsername string) (*User, error) {
	var u User
	if err := c.get(ctx, "/users/"+url.PathEscape(idOrUsername), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RetrieveCompany fetches a company record, including its owner user.
func (c *Client) RetrieveCompany(ctx context.Context, companyID string) (*Company, error) {
	var co Company
	if err := c.get(ctx, "/companies/"+url.PathEscape(companyID), nil, &co); err != nil {
		return nil, err
	}
	return &co, nil
}

// RetrieveExperience fetches an experience record; its Company.ID tells
// which company the experience belongs to.
func (c *Client) RetrieveExperience(ctx context.Context, experienceID string) (*Experience, error) {
	var exp Experience
	if err := c.get(ctx, "/experiences/"+url.PathEscape(experienceID), nil, &exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// ListAuthorizedUsers returns the company's full team roster.
func (c *Client) ListAuthorizedUsers(ctx context.Context, companyID string) ([]AuthorizedUser, error) {
	q := url.Values{"company_id": {companyID}}
	return collectPages[AuthorizedUser](ctx, c, "/authorized_users", q, 0)
}

// ListMembers returns customers of the company, filtered by opts.
func (c *Client) ListMembers(ctx context.Context, companyID string, opts MemberListOptions) ([]Member, error) {
	q := url.Values{"company_id": {companyID}}
	if opts.Query != "" {
		q.Set("query", opts.Query)
	}
	for _, id := range opts.UserIDs {
		q.Add("user_ids[]", id)
	}
	if opts.First > 0 {
		q.Set("per", strconv.Itoa(opts.First))
	}
	return collectPages[Member](ctx, c, "/members", q, opts.First)
}

// ListMemberships returns a user's memberships within the company.
func (c *Client) ListMemberships(ctx context.Context, companyID, userID string) ([]Membership, error) {
	q := url.Values{
		"company_id": {companyID},
		"user_ids[]": {userID},
	}
	return collectPages[Membership](ctx, c, "/memberships", q, 0)
}

// CancelMembership cancels a membership immediately.
func (c *Client) CancelMembership(ctx context.Context, membershipID string) error {
	q := url.Values{"cancellation_mode": {"immediate"}}
	return c.do(ctx, "POST", "/memberships/"+url.PathEscape(membershipID)+"/cancel", q, nil, nil)
}

// BanUserFromCompany revokes a user's access by cancelling every active
// membership they hold in the company. Individual cancel failures are
// tolerated; the ban counts as effective if at least one membership was
// cancelled, or if the user held none to begin with.
func (c *Client) BanUserFromCompany(ctx context.Context, userID, companyID string) (bool, error) {
	memberships, err := c.ListMemberships(ctx, companyID, userID)
	if err != nil {
		return false, err
	}
	if len(memberships) == 0 {
		return true, nil
	}

	cancelled := 0
	var lastErr error
	for _, m := range memberships {
		if err := c.CancelMembership(ctx, m.ID); err != nil {
			lastErr = err
			continue
		}
		cancelled++
	}
	if cancelled == 0 {
		return false, lastErr
	}
	return true, nil
}
