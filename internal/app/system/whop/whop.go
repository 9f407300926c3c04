// internal/app/system/whop/whop.go

// Package whop is a thin REST client for the Whop platform API (v5).
//
// ScamWatch keeps no local user or role store: identity, ownership,
// team-roster and membership state all come from Whop on every request.
// The client is constructed once at startup in bootstrap and injected
// into the handlers that need it.
//
// Calls are plain request/response bounded by the caller's context; there
// is no retry or backoff. Callers that treat provider failures as
// "not owner" / "not team member" do so deliberately (fail closed).
package whop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the Whop v5 API root.
const DefaultBaseURL = "https://api.whop.com/api/v5"

// ErrNotFound is returned when the API answers 404 for a lookup.
var ErrNotFound = errors.New("whop: not found")

// StatusError is a non-2xx API response other than 404.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("whop: api status %d: %s", e.Code, e.Message)
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// API is the surface of the Whop client that handlers and the
// authorization resolver depend on. Tests substitute a fake.
type API interface {
	RetrieveUser(ctx context.Context, idOrUsername string) (*User, error)
	RetrieveCompany(ctx context.Context, companyID string) (*Company, error)
	RetrieveExperience(ctx context.Context, experienceID string) (*Experience, error)
	ListAuthorizedUsers(ctx context.Context, companyID string) ([]AuthorizedUser, error)
	ListMembers(ctx context.Context, companyID string, opts MemberListOptions) ([]Member, error)
	ListMemberships(ctx context.Context, companyID, userID string) ([]Membership, error)
	CancelMembership(ctx context.Context, membershipID string) error
	BanUserFromCompany(ctx context.Context, userID, companyID string) (bool, error)
}

// Config holds the settings needed to talk to the Whop API.
type Config struct {
	APIKey  string
	BaseURL string        // defaults to DefaultBaseURL
	Timeout time.Duration // per-call cap on top of the request context; 0 means 15s
}

// Client implements API over HTTPS.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

var _ API = (*Client)(nil)

// New constructs a Whop client. The API key is required; everything else
// has defaults.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("whop: api key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// get performs a GET against path (with query) and decodes the JSON body
// into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("whop: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whop: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := readErrorMessage(resp.Body)
		return &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("whop: decode %s response: %w", path, err)
	}
	return nil
}

// readErrorMessage pulls a human-readable message out of an error body,
// falling back to the raw text.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return string(raw)
}

// listPage is the envelope Whop wraps around list responses.
type listPage[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		CurrentPage int `json:"current_page"`
		TotalPage   int `json:"total_page"`
	} `json:"pagination"`
}

// collectPages walks a paginated list endpoint until the last page.
// An optional max limits how many records are gathered (0 = all).
func collectPages[T any](ctx context.Context, c *Client, path string, query url.Values, max int) ([]T, error) {
	var all []T
	page := 1
	for {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("page", strconv.Itoa(page))

		var body listPage[T]
		if err := c.get(ctx, path, q, &body); err != nil {
			return nil, err
		}
		all = append(all, body.Data...)

		if max > 0 && len(all) >= max {
			return all[:max], nil
		}
		if body.Pagination.TotalPage == 0 || body.Pagination.CurrentPage >= body.Pagination.TotalPage {
			return all, nil
		}
		page++
	}
}
