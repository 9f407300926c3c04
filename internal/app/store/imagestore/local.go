// internal/app/store/imagestore/local.go
package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects on disk under Dir, mirroring the object key as a
// relative path. The app serves Dir under /files/, so the returned URL is
// BaseURL + "/files/" + key.
type Local struct {
	Dir     string
	BaseURL string // e.g. "http://localhost:8080"; empty means relative URLs
}

// NewLocal creates the root directory if needed.
func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Local{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (l *Local) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	// Keys are generated server-side, but refuse traversal anyway.
	rel := filepath.FromSlash(key)
	if strings.Contains(rel, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	path := filepath.Join(l.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create object dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write object: %w", err)
	}
	return l.BaseURL + "/files/" + key, nil
}
