package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/scamwatch/scamwatch/internal/testutil"
)

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db.Client(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Serve(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)

	var resp healthResponse
	testutil.DecodeJSON(t, rec.Body, &resp)

	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
	if resp.Database != "connected" {
		t.Errorf("database = %q, want %q", resp.Database, "connected")
	}
}
