package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned by pure helpers that cannot produce a result
	// for the given input (e.g. the centroid of zero points).
	ErrInvalidInput = errors.New("invalid input")

	// ErrServiceUnavailable means an optional collaborator (mailer, renderer)
	// is not configured for this deployment.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ValidationError describes malformed or out-of-range client input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Invalid builds a *ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err (or anything it wraps) is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
