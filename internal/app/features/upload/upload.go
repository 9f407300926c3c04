// internal/app/features/upload/upload.go
package upload

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	"github.com/scamwatch/scamwatch/internal/app/system/auth"
)

type uploadResponse struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Serve handles POST /upload: a multipart form with a single "file"
// field holding an image. The stored object's URL comes back for the
// client to attach to a report submission.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		uierrors.RenderUnauthorized(w)
		return
	}

	// MaxBytesReader makes oversized bodies fail during parse instead of
	// buffering them; the explicit size check below covers clients that
	// declare an honest Content-Length.
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+4096)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "upload: multipart parse failed", err, "File too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "upload: missing file field", err, `Multipart field "file" is required`)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		uierrors.RenderBadRequest(w, "Only image uploads are accepted")
		return
	}
	if header.Size > h.MaxBytes {
		uierrors.RenderBadRequest(w, fmt.Sprintf("File exceeds the %d MiB limit", h.MaxBytes>>20))
		return
	}

	key := objectKey(header.Filename)
	url, err := h.Images.Put(r.Context(), key, contentType, file, header.Size)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "upload: store failed", err)
		return
	}

	h.Log.Info("proof image stored",
		zap.String("key", key),
		zap.String("user_id", id.UserID),
		zap.Int64("size", header.Size))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(uploadResponse{
		URL:         url,
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: contentType,
	})
}

// objectKey builds "proofs/YYYY/MM/<uuid8>-<name>" with the client
// filename reduced to a safe charset.
func objectKey(filename string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("proofs/%04d/%02d/%s-%s",
		now.Year(), int(now.Month()), uuid.New().String()[:8], sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || out == "." || out == ".." {
		out = "upload"
	}
	return out
}
