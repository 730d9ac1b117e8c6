package services

import "errors"

// Error kinds surfaced by the core services. Callers classify with
// errors.Is; the controllers map them onto HTTP statuses.
var (
	// ErrValidation marks bad input (empty cart, unknown payment method).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced pending order, confirmation or bill
	// that is absent or already consumed. A duplicate approve/resolve is
	// reported as ErrNotFound, never applied twice.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a lost optimistic-concurrency race on a table
	// bill. It is retried internally before ever reaching a caller.
	ErrConflict = errors.New("conflict")

	// ErrDependency marks a failed store or notification call.
	ErrDependency = errors.New("dependency failure")
)
