// Package normalize canonicalizes user-supplied identifiers before they
// hit the provider or the store.
package normalize

import "strings"

// Username trims whitespace and a single leading "@". Whop usernames are
// case-sensitive as stored, so case is preserved.
func Username(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimPrefix(s, "@")
}

// CompanyID trims whitespace around a company identifier.
func CompanyID(s string) string {
	return strings.TrimSpace(s)
}
