// Package handlers provides HTTP handlers for the FileVault API.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marmos91/filevault/internal/logger"
	"github.com/marmos91/filevault/pkg/models"
)

// errorResponse is the error payload shape used by every endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
//
// Encoding is done to a buffer first so a marshalling failure can still
// produce an error response before any headers are sent.
func writeJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// writeError writes the standard {"error": ...} payload.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (an error response is
// written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// writeDomainError maps a domain error to its HTTP status and payload.
//
// The message strings are part of the API contract and must not drift.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrMissingName):
		writeError(w, http.StatusBadRequest, "Missing name")
	case errors.Is(err, models.ErrMissingType):
		writeError(w, http.StatusBadRequest, "Missing type")
	case errors.Is(err, models.ErrMissingData):
		writeError(w, http.StatusBadRequest, "Missing data")
	case errors.Is(err, models.ErrParentNotFound):
		writeError(w, http.StatusBadRequest, "Parent not found")
	case errors.Is(err, models.ErrParentNotFolder):
		writeError(w, http.StatusBadRequest, "Parent is not a folder")
	case errors.Is(err, models.ErrFolderHasNoContent):
		writeError(w, http.StatusBadRequest, "A folder doesn't have content")
	case errors.Is(err, models.ErrFileNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, models.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, models.ErrMimeUnresolved):
		writeError(w, http.StatusInternalServerError, "Failed to determine MIME type")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, models.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "Service unavailable")
	default:
		logger.Error("Unhandled error in API handler", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
