// Package json centralizes the JSON envelopes used by every endpoint so the
// client can rely on one error shape.
package json

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/Flv72S/Eterna-Home-sub001/pkg/domain-errors"
)

// ErrorBody is the wire shape of every error response. The Code field is the
// machine-readable contract; clients must branch on it, not on the HTTP
// status alone.
type ErrorBody struct {
	Code        dErrors.Code `json:"error"`
	Description string       `json:"error_description,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// best-effort fallback; don't override status for the caller
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, status int, code dErrors.Code, description string) {
	WriteJSON(w, status, ErrorBody{Code: code, Description: description})
}

// WriteDomainError translates a domain error into an HTTP response.
func WriteDomainError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteError(w, StatusFor(code), code, err.Error())
}

// StatusFor maps domain error codes onto HTTP statuses. Session-level
// failures are 401; scope-level failures are 403 so clients can tell the
// two apart even before reading the body.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeAuthentication, dErrors.CodeInvalidToken, dErrors.CodeSessionExpired:
		return http.StatusUnauthorized
	case dErrors.CodeHouseAccessDenied, dErrors.CodeHouseNotFound, dErrors.CodeInvalidScope:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeInvalidInput, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
