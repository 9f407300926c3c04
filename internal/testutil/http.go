package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/scamwatch/scamwatch/internal/app/system/auth"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Verified returns an Identity for userID acting within companyID.
func Verified(userID, companyID string) auth.Identity {
	return auth.Identity{UserID: userID, CompanyID: companyID}
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewVerifiedRequest creates a request carrying a verified identity,
// bypassing token verification the way the middleware would have set it.
func NewVerifiedRequest(method, target string, id auth.Identity) *http.Request {
	return auth.WithTestIdentity(httptest.NewRequest(method, target, nil), id)
}

// NewVerifiedJSONRequest creates a verified request with a JSON body.
func NewVerifiedJSONRequest(t *testing.T, method, target string, id auth.Identity, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return auth.WithTestIdentity(req, id)
}

// DecodeJSON decodes a response body into out, failing the test on error.
func DecodeJSON(t *testing.T, body io.Reader, out any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		t.Fatalf("decode response JSON: %v", err)
	}
}

// AssertStatus checks a recorder's status code.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status code: got %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}
