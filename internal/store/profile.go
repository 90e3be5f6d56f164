package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexa-app/lexa-api/internal/domain"
)

// ProfileStore defines the interface for user profile persistence.
type ProfileStore interface {
	// Create saves a new profile. It handles domain validation internally.
	// Returns ErrProfileExists if a profile for the user already exists.
	Create(ctx context.Context, profile *domain.UserProfile) error

	// Get retrieves a profile by user ID without locking.
	// Returns ErrProfileNotFound if the profile does not exist.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)

	// GetForUpdate retrieves a profile with a row-level lock using
	// SELECT FOR UPDATE. Use inside a transaction when the profile will be
	// updated, to protect read-modify-write cycles (streak bootstrap, XP
	// totals) from concurrent actions for the same user.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)

	// Update modifies an existing profile.
	// Returns ErrProfileNotFound if the profile does not exist.
	Update(ctx context.Context, profile *domain.UserProfile) error

	// WithTx returns a new ProfileStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
