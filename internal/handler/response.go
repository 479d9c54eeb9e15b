package handler

// Response helpers. Every handler sends JSON through writeJSON and routes
// failures through writeError, so the status-code mapping lives in exactly
// one place.
//
// The mapping follows the service's external contract rather than generic
// REST conventions: duplicate registrations come back as 400 (not 409),
// a rejected partial update comes back as 401, and unrecognized errors are
// surfaced as a 500 whose payload is the raw error text. None of that is
// accidental — it is the observed behavior this service reproduces.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/asif/userstore/internal/apperror"
)

// envelope is the JSON response wrapper, e.g. {"user": ...} or {"error": ...}.
type envelope map[string]any

// writeJSON sends a JSON response with the given status code. Headers and
// status must be written before the body; once Encode starts writing they
// are already on the wire.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent at this point — logging is all we can do.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to its HTTP status code and sends the
// {"error": ...} envelope.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrConflict):
			// Duplicate email at registration is reported as a plain 400.
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		}

		writeJSON(w, status, envelope{"error": appErr.Message})
		return
	}

	// Unknown error: 500 with the raw error text as the payload.
	writeJSON(w, http.StatusInternalServerError, envelope{"error": err.Error()})
}
