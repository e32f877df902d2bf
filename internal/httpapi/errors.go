package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"reserva.org/internal/auth"
	"reserva.org/internal/reservation"
	"reserva.org/internal/task"
	"reserva.org/internal/user"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleDomainError maps sentinel errors from the services onto HTTP codes.
// The auth layer has already established identity, so a policy denial here
// is a 403, not a 401.
func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(w, r, http.StatusForbidden, "forbidden")
	case errors.Is(err, reservation.ErrInvalidStatus),
		errors.Is(err, reservation.ErrTaskRequired),
		errors.Is(err, reservation.ErrCommentTooLong),
		errors.Is(err, task.ErrTitleRequired),
		errors.Is(err, task.ErrNameRequired):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, reservation.ErrInvalidTransition),
		errors.Is(err, reservation.ErrVersionConflict),
		errors.Is(err, task.ErrInUse),
		errors.Is(err, user.ErrEmailTaken):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, task.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, user.ErrBadCredentials):
		writeError(w, r, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}
