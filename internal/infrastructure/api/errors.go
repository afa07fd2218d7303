package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Fallback message when the backend body carries no usable message
const genericErrorMessage = "An unexpected error occurred"

// Error is a normalized backend rejection: the message extracted from the
// response body when present, plus the HTTP status.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return e.Message
}

// IsUnauthorized reports whether the error is an authentication expiry (401)
func (e *Error) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsNotFound reports whether the error is a 404
func (e *Error) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// AsError extracts an *Error from an error chain, if present
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
