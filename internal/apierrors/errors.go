// Package apierrors defines errors carried from services to the HTTP
// boundary together with the status code they map to. Anything that is
// not an APIError is rendered as a generic 500 so storage internals
// never leak to clients.
package apierrors

import (
	"fmt"
	"net/http"
)

// APIError is a client-facing error with an HTTP status code.
type APIError struct {
	HTTPCode int
	Template string
	Args     []any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf(e.Template, e.Args...)
}

// New creates an APIError with the given status code and message template.
func New(httpCode int, template string, args ...any) *APIError {
	return &APIError{
		HTTPCode: httpCode,
		Template: template,
		Args:     args,
	}
}

// NewErrEmailIsTaken reports an attempt to register an already used email.
func NewErrEmailIsTaken(email string) *APIError {
	return New(http.StatusBadRequest, "email %s is already taken", email)
}

// NewErrUserNotFound reports a lookup of a non-existent user id.
func NewErrUserNotFound(id int64) *APIError {
	return New(http.StatusNotFound, "user %d not found", id)
}

// NewErrPasswordRequired reports a delete request without a password.
func NewErrPasswordRequired() *APIError {
	return New(http.StatusBadRequest, "password is required")
}

// NewErrWrongPassword reports a delete request with a wrong password.
func NewErrWrongPassword() *APIError {
	return New(http.StatusUnauthorized, "wrong password")
}

// NewErrInvalidUserID reports a non-numeric user id path parameter.
func NewErrInvalidUserID(raw string) *APIError {
	return New(http.StatusBadRequest, "invalid user id %q", raw)
}

// NewErrInternalServerError hides the underlying failure behind a
// generic message. The cause is kept for logging, not for the client.
func NewErrInternalServerError(err error) *APIError {
	return New(http.StatusInternalServerError, "internal server error")
}
