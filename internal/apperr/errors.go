// Package apperr defines the error taxonomy shared by every module.
// All errors here are recoverable at the HTTP boundary; none of them
// should ever terminate the process.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: a referenced project or comment does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the caller is not the owner/author of the target.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated: the action requires a known identity and none was supplied.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrConflict: a genuine write conflict surfaced by storage; the caller may retry.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable: storage connectivity failure, distinct from invalid input.
	ErrUnavailable = errors.New("storage unavailable")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a field-level validation error.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
