// Package httpapi exposes the primary ports over a JSON HTTP API.
// Error responses use {"error": {"code": "...", "message": "..."}}.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/esys/internal/apperr"
)

// Error codes.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeUnavailable     = "UNAVAILABLE"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError writes an error envelope with the given status and code.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// writeServiceError maps a service error onto the envelope by kind.
// Unkinded errors are logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		WriteError(w, http.StatusNotFound, CodeNotFound, err.Error())
	case apperr.KindPermissionDenied:
		WriteError(w, http.StatusForbidden, CodeForbidden, err.Error())
	case apperr.KindValidation:
		WriteError(w, http.StatusBadRequest, CodeValidationError, err.Error())
	case apperr.KindConflict:
		WriteError(w, http.StatusConflict, CodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON request body into dest.
func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidationError, "invalid request body: "+err.Error())
		return false
	}
	return true
}
