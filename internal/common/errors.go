// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Failure kinds returned by the ledger core. The boundary translates these to
// transport status codes; the core never recovers from them silently.
var (
	// ErrNotFound covers records that are absent, owned by someone else, or
	// soft-deleted. The three cases are intentionally indistinguishable so
	// one owner cannot probe for another owner's data.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers duplicate live category names and category/transaction
	// kind mismatches.
	ErrConflict = errors.New("conflict")

	// ErrValidation covers malformed input rejected before any storage access.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized covers missing or invalid caller credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Conflictf wraps ErrConflict with a formatted detail message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// Validationf wraps ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
