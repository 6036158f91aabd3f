package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrLockHeld means another creation for the same car is in flight.
	ErrLockHeld = errors.New("car is locked by another booking attempt")
)
