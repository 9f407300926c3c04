// Package htmlsanitize strips dangerous markup from user-submitted text.
//
// Report descriptions are free text typed by members and rendered back in
// the review queue, so they pass through a UGC policy before persisting.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with scripts, event handlers and other unsafe
// constructs removed. Plain text passes through unchanged.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}
