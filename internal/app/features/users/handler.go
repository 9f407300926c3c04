// internal/app/features/users/handler.go
package users

import (
	"go.uber.org/zap"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	"github.com/scamwatch/scamwatch/internal/app/system/whop"
)

// Handler serves member profile lookups against the provider. Nothing is
// stored locally; every lookup is live.
type Handler struct {
	Provider whop.API
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs a users Handler bound to the provider client.
func NewHandler(provider whop.API, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Provider: provider,
		Log:      logger,
		ErrLog:   errLog,
	}
}
