package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	"github.com/scamwatch/scamwatch/internal/app/store/imagestore"
	"github.com/scamwatch/scamwatch/internal/app/system/auth"
	"github.com/scamwatch/scamwatch/internal/testutil"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	store, err := imagestore.NewLocal(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	log := zap.NewNop()
	return NewHandler(store, DefaultMaxBytes, uierrors.NewErrorLogger(log), log)
}

// multipartBody builds a form with one file part carrying an explicit
// Content-Type, the way browsers send uploads.
func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func uploadRequest(t *testing.T, body *bytes.Buffer, contentType string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	return auth.WithTestIdentity(req, testutil.Verified("user_1", "biz_1"))
}

func TestServe_StoresImage(t *testing.T) {
	h := newTestHandler(t)

	body, ct := multipartBody(t, "file", "proof shot.png", "image/png", []byte("png-bytes"))
	rec := httptest.NewRecorder()
	h.Serve(rec, uploadRequest(t, body, ct))

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp uploadResponse
	testutil.DecodeJSON(t, rec.Body, &resp)
	if !strings.HasPrefix(resp.URL, "http://localhost:8080/files/proofs/") {
		t.Errorf("url = %q, want under /files/proofs/", resp.URL)
	}
	if resp.Filename != "proof shot.png" {
		t.Errorf("filename = %q", resp.Filename)
	}
	if resp.Size != int64(len("png-bytes")) {
		t.Errorf("size = %d", resp.Size)
	}
	if resp.ContentType != "image/png" {
		t.Errorf("contentType = %q", resp.ContentType)
	}
	if strings.Contains(resp.URL, " ") {
		t.Errorf("object key kept unsafe characters: %q", resp.URL)
	}
}

func TestServe_RejectsNonImage(t *testing.T) {
	h := newTestHandler(t)

	body, ct := multipartBody(t, "file", "notes.pdf", "application/pdf", []byte("%PDF"))
	rec := httptest.NewRecorder()
	h.Serve(rec, uploadRequest(t, body, ct))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestServe_RejectsOversized(t *testing.T) {
	store, err := imagestore.NewLocal(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	log := zap.NewNop()
	h := NewHandler(store, 16, uierrors.NewErrorLogger(log), log) // 16-byte cap

	body, ct := multipartBody(t, "file", "big.png", "image/png", bytes.Repeat([]byte("x"), 64))
	rec := httptest.NewRecorder()
	h.Serve(rec, uploadRequest(t, body, ct))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestServe_MissingFileField(t *testing.T) {
	h := newTestHandler(t)

	body, ct := multipartBody(t, "wrongfield", "p.png", "image/png", []byte("x"))
	rec := httptest.NewRecorder()
	h.Serve(rec, uploadRequest(t, body, ct))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestServe_Unauthenticated(t *testing.T) {
	h := newTestHandler(t)

	body, ct := multipartBody(t, "file", "p.png", "image/png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)

	rec := httptest.NewRecorder()
	h.Serve(rec, req)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}
