// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error response.
// The response body contains {"error": "<error message>"}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	RespondErrorWith(w, logger, status, err, nil)
}

// RespondErrorWith behaves like RespondError and adds fields to the body.
// An "error" key in fields is ignored.
func RespondErrorWith(w http.ResponseWriter, logger *slog.Logger, status int, err error, fields map[string]any) {
	logger.Error("handler error", "error", err, "status", status)

	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["error"] = err.Error()

	RespondJSON(w, status, body)
}
