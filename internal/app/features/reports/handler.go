// internal/app/features/reports/handler.go
package reports

import (
	"go.uber.org/zap"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	reportstore "github.com/scamwatch/scamwatch/internal/app/store/reports"
	"github.com/scamwatch/scamwatch/internal/app/system/authz"
	"github.com/scamwatch/scamwatch/internal/app/system/ratelimit"
	"github.com/scamwatch/scamwatch/internal/app/system/whop"
)

// Handler owns the scam-report workflow: submission, listing, the
// reporter's own view, and moderator review with the approval-time ban.
//
// A thin struct wrapping the shared store, role resolver and provider
// client, constructed once at startup in bootstrap and passed into
// Routes().
type Handler struct {
	Reports  *reportstore.Store
	Roles    *authz.Resolver
	Provider whop.API
	Limits   *ratelimit.SubmitLimiter
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs a reports Handler bound to the given store,
// role resolver and provider client.
func NewHandler(store *reportstore.Store, roles *authz.Resolver, provider whop.API, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Reports:  store,
		Roles:    roles,
		Provider: provider,
		Limits:   ratelimit.NewSubmitLimiter(),
		Log:      logger,
		ErrLog:   errLog,
	}
}
