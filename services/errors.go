package services

import "errors"

// Sentinel errors surfaced by the services. Controllers map these onto HTTP
// statuses with errors.Is; anything else is an internal failure.
var (
	// ErrNotFound means a referenced user, post or comment does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrConflict means a unique field (username, nickname) is already taken.
	ErrConflict = errors.New("duplicate unique field")
)
