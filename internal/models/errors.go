package models

import (
	"errors"
)

var (
	ErrValidation = errors.New("validation error")

	ErrEmptyText     = errors.New("empty text")
	ErrTextTooLong   = errors.New("text too long")
	ErrTooManyImages = errors.New("too many images")

	ErrClassifierUnavailable = errors.New("classifier not available")
)

// ValidationError carries the human-readable message for a violated input
// constraint. It matches both ErrValidation and its Cause under errors.Is.
type ValidationError struct {
	Cause   error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// NewValidationError builds a ValidationError for cause with message msg.
func NewValidationError(cause error, msg string) error {
	return &ValidationError{Cause: cause, Message: msg}
}
