package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lexa-app/lexa-api/internal/domain"
)

// WordProgressStore defines the interface for per-word progress persistence.
type WordProgressStore interface {
	// Create saves a new word progress row.
	// Returns ErrWordProgressExists if the row already exists.
	Create(ctx context.Context, progress *domain.WordProgress) error

	// Get retrieves progress by (user, word) without locking.
	// Returns ErrWordProgressNotFound if no row exists.
	Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error)

	// GetForUpdate retrieves progress with a row-level lock using
	// SELECT FOR UPDATE. Use inside a transaction when applying a scheduler
	// result, so two simultaneous reviews of the same word serialize
	// instead of losing one update on a stale snapshot.
	// Returns ErrWordProgressNotFound if no row exists.
	GetForUpdate(ctx context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error)

	// Update modifies an existing progress row.
	// Returns ErrWordProgressNotFound if no row exists.
	Update(ctx context.Context, progress *domain.WordProgress) error

	// Distribution counts the user's words per known state.
	Distribution(ctx context.Context, userID uuid.UUID) (map[domain.KnownState]int, error)

	// CountDue counts words whose next review is at or before now.
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)

	// WithTx returns a new WordProgressStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) WordProgressStore
}
