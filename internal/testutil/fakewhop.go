package testutil

import (
	"context"
	"strings"

	"github.com/scamwatch/scamwatch/internal/app/system/whop"
)

// FakeWhop is an in-memory whop.API for handler and resolver tests.
// Populate the maps directly (or use the With* helpers) and inject errors
// per operation name via Errs.
type FakeWhop struct {
	Users       map[string]*whop.User       // keyed by id and by username
	Companies   map[string]*whop.Company    // keyed by company id
	Experiences map[string]*whop.Experience // keyed by experience id
	Roster      map[string][]whop.AuthorizedUser
	Members     map[string][]whop.Member
	Memberships map[string][]whop.Membership

	// Errs forces an error for the named operation ("RetrieveUser",
	// "ListAuthorizedUsers", "CancelMembership", ...).
	Errs map[string]error

	// Cancelled records membership IDs passed to CancelMembership.
	Cancelled []string
}

var _ whop.API = (*FakeWhop)(nil)

// NewFakeWhop returns an empty fake with all maps initialized.
func NewFakeWhop() *FakeWhop {
	return &FakeWhop{
		Users:       map[string]*whop.User{},
		Companies:   map[string]*whop.Company{},
		Experiences: map[string]*whop.Experience{},
		Roster:      map[string][]whop.AuthorizedUser{},
		Members:     map[string][]whop.Member{},
		Memberships: map[string][]whop.Membership{},
		Errs:        map[string]error{},
	}
}

// WithUser registers a user retrievable by both id and username.
func (f *FakeWhop) WithUser(id, username string) *whop.User {
	u := &whop.User{ID: id, Username: username}
	f.Users[id] = u
	f.Users[username] = u
	return u
}

// WithCompany registers a company with the given owner user id.
func (f *FakeWhop) WithCompany(id, ownerUserID string) *whop.Company {
	co := &whop.Company{ID: id}
	co.OwnerUser.ID = ownerUserID
	f.Companies[id] = co
	return co
}

// WithRosterEntry puts a user on a company's team roster.
func (f *FakeWhop) WithRosterEntry(companyID, userID, role string) {
	entry := whop.AuthorizedUser{Role: role}
	entry.User.ID = userID
	f.Roster[companyID] = append(f.Roster[companyID], entry)
}

// WithMembership gives a user an active membership in a company.
func (f *FakeWhop) WithMembership(companyID, membershipID, userID string) {
	f.Memberships[companyID] = append(f.Memberships[companyID], whop.Membership{
		ID:     membershipID,
		Status: "active",
		UserID: userID,
	})
}

func (f *FakeWhop) RetrieveUser(_ context.Context, idOrUsername string) (*whop.User, error) {
	if err := f.Errs["RetrieveUser"]; err != nil {
		return nil, err
	}
	if u, ok := f.Users[idOrUsername]; ok {
		return u, nil
	}
	return nil, whop.ErrNotFound
}

func (f *FakeWhop) RetrieveCompany(_ context.Context, companyID string) (*whop.Company, error) {
	if err := f.Errs["RetrieveCompany"]; err != nil {
		return nil, err
	}
	if co, ok := f.Companies[companyID]; ok {
		return co, nil
	}
	return nil, whop.ErrNotFound
}

func (f *FakeWhop) RetrieveExperience(_ context.Context, experienceID string) (*whop.Experience, error) {
	if err := f.Errs["RetrieveExperience"]; err != nil {
		return nil, err
	}
	if exp, ok := f.Experiences[experienceID]; ok {
		return exp, nil
	}
	return nil, whop.ErrNotFound
}

func (f *FakeWhop) ListAuthorizedUsers(_ context.Context, companyID string) ([]whop.AuthorizedUser, error) {
	if err := f.Errs["ListAuthorizedUsers"]; err != nil {
		return nil, err
	}
	return f.Roster[companyID], nil
}

func (f *FakeWhop) ListMembers(_ context.Context, companyID string, opts whop.MemberListOptions) ([]whop.Member, error) {
	if err := f.Errs["ListMembers"]; err != nil {
		return nil, err
	}
	var out []whop.Member
	for _, m := range f.Members[companyID] {
		if opts.Query != "" && !strings.Contains(m.User.Username, opts.Query) &&
			!strings.Contains(m.User.Name, opts.Query) && !strings.Contains(m.User.Email, opts.Query) {
			continue
		}
		if len(opts.UserIDs) > 0 && !containsString(opts.UserIDs, m.User.ID) {
			continue
		}
		out = append(out, m)
		if opts.First > 0 && len(out) >= opts.First {
			break
		}
	}
	return out, nil
}

func (f *FakeWhop) ListMemberships(_ context.Context, companyID, userID string) ([]whop.Membership, error) {
	if err := f.Errs["ListMemberships"]; err != nil {
		return nil, err
	}
	var out []whop.Membership
	for _, m := range f.Memberships[companyID] {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *FakeWhop) CancelMembership(_ context.Context, membershipID string) error {
	if err := f.Errs["CancelMembership"]; err != nil {
		return err
	}
	f.Cancelled = append(f.Cancelled, membershipID)
	return nil
}

func (f *FakeWhop) BanUserFromCompany(ctx context.Context, userID, companyID string) (bool, error) {
	if err := f.Errs["BanUserFromCompany"]; err != nil {
		return false, err
	}
	memberships, err := f.ListMemberships(ctx, companyID, userID)
	if err != nil {
		return false, err
	}
	if len(memberships) == 0 {
		return true, nil
	}
	cancelled := 0
	var lastErr error
	for _, m := range memberships {
		if err := f.CancelMembership(ctx, m.ID); err != nil {
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

func containsString(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
