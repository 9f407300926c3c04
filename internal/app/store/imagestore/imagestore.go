// internal/app/store/imagestore/imagestore.go

// Package imagestore persists uploaded proof images and hands back a URL
// the report can reference. Two backends: local disk for development
// (served by the app under /files/) and an S3-compatible bucket (AWS S3
// or Cloudflare R2) for production.
package imagestore

import (
	"context"
	"io"
)

// Store writes an object and returns its publicly reachable URL.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}
