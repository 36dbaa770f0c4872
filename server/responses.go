package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-stock-server/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	contentTypeJSON      = "application/json; charset=utf-8"
	internalErrorMessage = "internal server error"
	maxRequestBodyBytes  = 1 << 20
)

// messageResponse is the body of every error and of acknowledgements
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

// writeError maps err onto a status code. Storage and unknown failures are
// logged and answered with a generic message so no internal detail leaks.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		message = internalErrorMessage
	}
	writeJSON(w, status, messageResponse{Message: message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errors.ErrInvalidCredentials), errors.Is(err, errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a single JSON object from the request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body", errors.ErrInvalidInput)
	}
	return nil
}
