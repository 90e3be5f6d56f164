package progress

import "errors"

// Common progress service errors
var (
	// ErrInvalidDuration indicates a session duration that is negative.
	ErrInvalidDuration = errors.New("session duration cannot be negative")

	// ErrInvalidGoalTarget indicates a daily goal target that is not positive.
	ErrInvalidGoalTarget = errors.New("daily goal target must be greater than zero")

	// ErrInvalidSwipeDirection indicates an unrecognized swipe direction.
	ErrInvalidSwipeDirection = errors.New("invalid swipe direction")
)
