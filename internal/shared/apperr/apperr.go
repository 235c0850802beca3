// Package apperr defines the error taxonomy shared by every service layer.
// Absence of a record is never an error; these kinds cover genuine rejections
// and faults only.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrAuthentication   = errors.New("authentication failed")
	ErrAuthorization    = errors.New("not allowed")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrStore            = errors.New("store failure")
)

func Validation(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

func Conflict(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

func Authentication(format string, args ...any) error {
	return wrap(ErrAuthentication, format, args...)
}

func Authorization(format string, args ...any) error {
	return wrap(ErrAuthorization, format, args...)
}

func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func InvalidOperation(format string, args ...any) error {
	return wrap(ErrInvalidOperation, format, args...)
}

// Store wraps a driver-level failure. The cause stays in the chain for logs
// but is never rendered to clients.
func Store(cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStore, cause)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
