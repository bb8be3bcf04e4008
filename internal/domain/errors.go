// Package domain holds the core entities of the events platform together
// with the error taxonomy shared by services, repositories and handlers.
package domain

import "errors"

// Sentinel errors returned by workflows. Services wrap them with a
// human-readable message via fmt.Errorf("%w: ...") so handlers can match
// with errors.Is while still surfacing the specific rule that failed.
var (
	// ErrValidation marks malformed input or a business rule violation
	// discoverable at request time (registration closed, event full, bad
	// date format). The wrapped message is safe to show to the caller.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the entity exists but the caller is
	// not its creator.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned on a duplicate registration attempt.
	ErrConflict = errors.New("conflict")

	// ErrInternal marks unexpected failures from the entity store or the
	// media service. Handlers log the cause and answer with a generic
	// message only.
	ErrInternal = errors.New("internal error")
)
