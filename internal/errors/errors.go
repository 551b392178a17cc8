package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin console
var (
	// Session errors
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrUnauthorized       = errors.New("role not permitted for this view")
	ErrSessionIncomplete  = errors.New("session is incomplete")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	// Role errors
	ErrInvalidRole = errors.New("invalid role")

	// List / mutation errors
	ErrNoPendingDelete = errors.New("no delete pending confirmation")
	ErrBusy            = errors.New("operation already in progress")
	ErrViewClosed      = errors.New("view is no longer mounted")
	ErrNotOnPage       = errors.New("entity not on the current page")
	ErrSuperseded      = errors.New("superseded by a newer request")

	// Validation errors
	ErrValidation = errors.New("validation failed")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
