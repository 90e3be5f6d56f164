package api

import (
	"errors"
	"net/http"

	"github.com/lexa-app/lexa-api/internal/service/auth"
	"github.com/lexa-app/lexa-api/internal/service/progress"
	"github.com/lexa-app/lexa-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, progress.ErrInvalidDuration),
		errors.Is(err, progress.ErrInvalidGoalTarget),
		errors.Is(err, progress.ErrInvalidSwipeDirection):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"

	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	case store.IsNotFoundError(err):
		return "Resource not found"

	case store.IsDuplicateError(err):
		return "Resource already exists"

	case errors.Is(err, progress.ErrInvalidDuration):
		return "Session duration cannot be negative"

	case errors.Is(err, progress.ErrInvalidGoalTarget):
		return "Daily goal must be greater than zero"

	case errors.Is(err, progress.ErrInvalidSwipeDirection):
		return "Swipe direction must be left or right"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
