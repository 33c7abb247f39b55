package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps repository and validation errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrInvalidStatus),
		errors.Is(err, types.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrBackendDetached):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondErr(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}
