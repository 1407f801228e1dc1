package service

import "errors"

var (
	ErrContactNotFound   = errors.New("contact not found")
	ErrContactNotOptedIn = errors.New("contact has not opted in for notifications")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}
