// Package inputval validates user-supplied field values.
package inputval

import (
	"net/url"
	"strings"
)

// IsValidHTTPURL reports whether s parses as an absolute http(s) URL.
// Data URLs from the legacy inline-upload path are rejected here; proof
// images must come through /upload.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// IsValidUsername reports whether s looks like a Whop username after
// normalization: non-empty, no whitespace, sane length.
func IsValidUsername(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n")
}
