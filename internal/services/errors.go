package services

import "errors"

// Sentinel errors services wrap with context. Handlers map them onto
// HTTP statuses with errors.Is.
var (
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a state collision, e.g. a duplicate favorite.
	ErrConflict = errors.New("conflict")

	// ErrAlreadyDecided marks a status transition attempted on an
	// application that has already left the pending state.
	ErrAlreadyDecided = errors.New("application already decided")

	// ErrValidation marks malformed client input.
	ErrValidation = errors.New("validation failed")
)
