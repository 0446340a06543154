package domain

import "errors"

// Domain errors represent business-level errors that can occur in the system.
// These errors are used across layers to communicate specific failure conditions.
var (
	// ErrValidation is the kind every ValidationError unwraps to.
	ErrValidation = errors.New("validation failed")

	// Cron errors
	ErrPreviewUnsupported = errors.New("expression uses syntax the preview scheduler cannot evaluate")

	// Config errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrConfigLoadFailed = errors.New("failed to load configuration")
)

// ValidationError names the offending field and value of a rejected input.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsValidation reports whether err is, or wraps, a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
