package entity

import "errors"

// Base sentinel errors for the domain layer. Operation-specific errors wrap
// one of these so callers can classify a failure (client mistake vs missing
// entity) without enumerating every variant.
var (
	// ErrNotFound indicates that a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that client-supplied input failed validation.
	ErrInvalidInput = errors.New("invalid input")
)
