// Package domainerrors defines stable, transport-agnostic error codes shared
// by the server services and the client state machine.
package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms, not HTTP terms.
type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeInvalidInput Code = "invalid_input"
	CodeValidation   Code = "validation_failed"
	CodeInternal     Code = "internal_error"
	CodeConflict     Code = "conflict"
	CodeUnavailable  Code = "unavailable"

	// Authentication failures. CodeAuthentication means the presented
	// credentials were rejected (form-level, recoverable in place).
	// CodeSessionExpired means a previously valid token is stale or revoked
	// and the session must be torn down.
	CodeAuthentication Code = "authentication_failed"
	CodeInvalidToken   Code = "invalid_token"
	CodeSessionExpired Code = "session_expired"

	// Scope failures. These are strictly weaker than session failures: the
	// caller's identity is fine, only the selected scope is not. Conflating
	// them with session failures would force a logout on a house-level
	// denial, which is a correctness bug.
	CodeInvalidScope      Code = "invalid_scope"
	CodeHouseAccessDenied Code = "house_access_denied"
	CodeHouseNotFound     Code = "house_not_found"
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and client layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the domain code from an error chain, or CodeInternal when
// the error carries no domain code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// SessionLevel reports whether the code invalidates the whole session, as
// opposed to a single scope selection.
func (c Code) SessionLevel() bool {
	return c == CodeSessionExpired || c == CodeInvalidToken
}

// HouseScopeLevel reports whether the code invalidates only the active house
// selection.
func (c Code) HouseScopeLevel() bool {
	return c == CodeHouseAccessDenied || c == CodeHouseNotFound
}
