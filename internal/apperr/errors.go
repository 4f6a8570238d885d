// Package apperr defines the error taxonomy shared by services and the
// HTTP layer. Errors are built by wrapping one of the sentinel kinds so
// callers can classify with errors.Is while keeping the full message.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers missing entities and, intentionally, resources
	// the caller is not allowed to see. Authorization failures are
	// uniformly hidden behind it so existence is never leaked.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput covers malformed parameters and payloads.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBusinessRule covers well-formed requests that violate a domain
	// invariant (unavailable item, double decision, comment without a
	// completed rental).
	ErrBusinessRule = errors.New("business rule violation")

	// ErrConflict covers unique-key collisions such as duplicate email.
	ErrConflict = errors.New("conflict")
)

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

func BusinessRulef(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrBusinessRule)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// IsClient reports whether err belongs to any of the client-facing
// kinds. Everything else is treated as an unexpected server failure.
func IsClient(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrBusinessRule) ||
		errors.Is(err, ErrConflict)
}
