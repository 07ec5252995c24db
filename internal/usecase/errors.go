package usecase

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource already exists")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ValidationError carries every problem found in a payload. It matches
// ErrInvalidInput with errors.Is.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
