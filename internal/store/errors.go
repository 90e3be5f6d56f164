package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g. a second activity row for the same day).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrProfileNotFound indicates that the requested user profile does not exist.
	ErrProfileNotFound = fmt.Errorf("%w: user profile", ErrNotFound)

	// ErrActivityNotFound indicates that no activity row exists for the requested day.
	ErrActivityNotFound = fmt.Errorf("%w: daily activity", ErrNotFound)

	// ErrWordProgressNotFound indicates that the requested word progress does not exist.
	ErrWordProgressNotFound = fmt.Errorf("%w: word progress", ErrNotFound)

	// ErrWordNotFound indicates that the requested catalog word does not exist.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrProfileExists indicates that a profile already exists for the user.
	ErrProfileExists = fmt.Errorf("%w: user profile", ErrDuplicate)

	// ErrActivityExists indicates that an activity row already exists for the day.
	ErrActivityExists = fmt.Errorf("%w: daily activity", ErrDuplicate)

	// ErrWordProgressExists indicates that progress already exists for the word.
	ErrWordProgressExists = fmt.Errorf("%w: word progress", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
