// Package apperr maps domain failures onto client-safe HTTP errors.
package apperr

import (
	"errors"
	"net/http"
)

// AppError carries a status code and a message safe to send to clients.
// Cause is only ever logged.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// Unauthenticated covers missing, malformed and expired session tokens.
func Unauthenticated(msg string) *AppError {
	return &AppError{Code: "UNAUTHENTICATED", Message: msg, HTTPStatus: http.StatusUnauthorized}
}

func Forbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, HTTPStatus: http.StatusForbidden}
}

// NotFound builds "<resource> not found".
func NotFound(resource string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: resource + " not found", HTTPStatus: http.StatusNotFound}
}

func Conflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, HTTPStatus: http.StatusConflict}
}

func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: msg, HTTPStatus: http.StatusBadRequest, Details: details}
}

// CredentialMismatch is the login failure for a known identity with a wrong
// password. It is reported as a client error, distinct from NotFound.
func CredentialMismatch() *AppError {
	return &AppError{Code: "CREDENTIAL_MISMATCH", Message: "Unauthorized: credential mismatch", HTTPStatus: http.StatusBadRequest}
}

// Internal wraps an unexpected failure. The cause never reaches the client.
func Internal(cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", HTTPStatus: http.StatusInternalServerError, Cause: cause}
}

func Unavailable(msg string) *AppError {
	return &AppError{Code: "SERVICE_UNAVAILABLE", Message: msg, HTTPStatus: http.StatusServiceUnavailable}
}

// As extracts the *AppError from err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// Is reports whether err carries an AppError with the given code.
func Is(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
