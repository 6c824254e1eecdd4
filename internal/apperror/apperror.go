// Package apperror defines the error taxonomy shared by every layer.
//
// Each AppError wraps one sentinel so callers branch with errors.Is, and
// carries a human-readable message that is safe to show to clients.
//
//	ErrInvalidArgument   a caller broke a query contract (e.g. a 0-day window)
//	ErrValidation        user input failed a business rule
//	ErrNotFound          a referenced habit does not exist
//	ErrConflict          the store rejected a duplicate
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

type AppError struct {
	Err     error  // sentinel
	Message string // Human-readable error message
	Field   string // Optional: field or argument causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidArgument reports a contract violation on a query's own inputs.
// The analytics core returns nothing else.
func InvalidArgument(arg, message string) *AppError {
	return &AppError{
		Err:     ErrInvalidArgument,
		Message: message,
		Field:   arg,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}
