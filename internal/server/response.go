// Package server provides the HTTP server, router, middleware, and JSON
// response helpers for the newsboard API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GyroZepelix/newsboard/internal/apperr"
)

// FieldError represents a single field-level validation error in an API response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorBody is the inner structure of an error response.
type errorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// errorResponse is the top-level error response envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

// JSON writes v as the response body with the given status code. Handlers
// pass keyed objects such as {"article": ...} or {"articles": ..., "total_count": n}.
func JSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes a JSON error response with the given status code, error code,
// message, and optional field-level details.
func Error(w http.ResponseWriter, status int, code string, message string, details []FieldError) {
	writeJSON(w, status, errorResponse{
		Error: errorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteError classifies err and writes the matching error response. It is
// the only place storage and runtime failures are translated for clients.
// Internal failures are logged with their cause; the client only sees a
// generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.Classify(err)
	if e == nil {
		e = apperr.Internal(nil)
	}

	status := apperr.Status(e.Kind)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	} else {
		slog.Debug("request rejected",
			"kind", e.Kind.String(),
			"path", r.URL.Path,
			"error", err,
		)
	}

	var details []FieldError
	if e.Field != "" && (e.Kind == apperr.KindMissingField || e.Kind == apperr.KindInvalidFormat) {
		details = []FieldError{{Field: e.Field, Message: e.Kind.String()}}
	}

	Error(w, status, apperr.Code(e.Kind), apperr.Message(e), details)
}

// writeJSON marshals v to JSON and writes it to the response writer.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		// At this point headers are already sent, so we can only log.
		slog.Error("failed to encode JSON response", "error", err)
	}
}
