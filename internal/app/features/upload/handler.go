// internal/app/features/upload/handler.go
package upload

import (
	"go.uber.org/zap"

	uierrors "github.com/scamwatch/scamwatch/internal/app/features/errors"
	"github.com/scamwatch/scamwatch/internal/app/store/imagestore"
)

// DefaultMaxBytes caps proof images at 5 MiB.
const DefaultMaxBytes = 5 << 20

// Handler accepts proof-image uploads and stores them through the
// configured image store.
type Handler struct {
	Images   imagestore.Store
	MaxBytes int64
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
}

// NewHandler constructs an upload Handler. maxBytes <= 0 falls back to
// DefaultMaxBytes.
func NewHandler(images imagestore.Store, maxBytes int64, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Handler{
		Images:   images,
		MaxBytes: maxBytes,
		Log:      logger,
		ErrLog:   errLog,
	}
}
