package errors

import (
	"errors"
	"fmt"
)

// Common error types for the stock server
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized: no token provided")
	ErrForbidden          = errors.New("forbidden: invalid token")

	// Product errors
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("product not found")

	// Storage errors
	ErrStorage = errors.New("storage failure")

	// Client session errors
	ErrNotLoggedIn = errors.New("not logged in")
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

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return errors.Join(errs...)
}
