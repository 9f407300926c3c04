// internal/app/features/errors/errors.go

// Package errors renders the API's JSON error taxonomy and logs the
// server-side detail that never reaches the caller.
//
// Buckets: 401 unauthenticated, 403 forbidden, 400 validation,
// 404 not found, 500 upstream/internal (generic message only).
package errors

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

func render(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}

// RenderUnauthorized writes a 401 with a fixed message.
func RenderUnauthorized(w http.ResponseWriter) {
	render(w, http.StatusUnauthorized, "unauthorized")
}

// RenderForbidden writes a 403 with the given message.
func RenderForbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "forbidden"
	}
	render(w, http.StatusForbidden, msg)
}

// RenderBadRequest writes a 400 with the given message.
func RenderBadRequest(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "bad request"
	}
	render(w, http.StatusBadRequest, msg)
}

// RenderNotFound writes a 404 with the given message.
func RenderNotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "not found"
	}
	render(w, http.StatusNotFound, msg)
}

// RenderTooManyRequests writes a 429 with the given message.
func RenderTooManyRequests(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "too many requests"
	}
	render(w, http.StatusTooManyRequests, msg)
}

// RenderServerError writes a 500 with a generic message. Detail goes to
// the logger, not the wire.
func RenderServerError(w http.ResponseWriter) {
	render(w, http.StatusInternalServerError, "internal server error")
}
