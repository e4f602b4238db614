// Package respond provides utilities for sending HTTP responses in JSON
// format. Error responses are sanitized so internal details never reach the
// client.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; log and move on.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// SafeError returns the error message to the client only when it belongs to
// a domain error family the user can act on. Anything else is logged and
// replaced with a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	if code < 500 && isUserFacing(err) {
		JSON(w, code, map[string]string{"error": err.Error()})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", err))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

// isUserFacing reports whether the error carries a message the user needs
// to see to correct their input or retry the step.
func isUserFacing(err error) bool {
	for _, sentinel := range []error{
		entity.ErrInvalidInput,
		entity.ErrStepNotReady,
		entity.ErrFetch,
		entity.ErrGeneration,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
