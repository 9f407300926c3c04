// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger couples error logging with error responses so handlers
// report failures in one call. Constructed once in bootstrap and shared
// by all features.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger wrapping the given zap logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs the internal detail and answers 500 with a generic
// body.
func (el *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	el.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	RenderServerError(w)
}

// LogBadRequest logs a client error at warn level and answers 400 with
// the public message.
func (el *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, publicMsg string) {
	el.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	RenderBadRequest(w, publicMsg)
}
