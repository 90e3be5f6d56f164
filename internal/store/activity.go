package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexa-app/lexa-api/internal/domain"
)

// ActivityTotals aggregates historical daily activity for the dashboard.
type ActivityTotals struct {
	DaysActive   int
	SessionCount int
	TotalTimeMs  int64
}

// DailyActivityStore defines the interface for per-day activity persistence.
// Exactly one row exists per (user, day); the progress service creates it
// lazily at day bootstrap.
type DailyActivityStore interface {
	// Create inserts the activity row for a day.
	// Returns ErrActivityExists if the row already exists, which callers
	// use to keep day bootstrapping idempotent under concurrency.
	Create(ctx context.Context, activity *domain.DailyActivity) error

	// Get retrieves the activity row for a user and day without locking.
	// Returns ErrActivityNotFound if no row exists.
	Get(ctx context.Context, userID uuid.UUID, date domain.DayKey) (*domain.DailyActivity, error)

	// GetForUpdate retrieves the activity row with a row-level lock for
	// read-modify-write counter updates inside a transaction.
	// Returns ErrActivityNotFound if no row exists.
	GetForUpdate(ctx context.Context, userID uuid.UUID, date domain.DayKey) (*domain.DailyActivity, error)

	// Update modifies an existing activity row.
	// Returns ErrActivityNotFound if no row exists.
	Update(ctx context.Context, activity *domain.DailyActivity) error

	// ListActiveDays returns the user's active day keys, most recent first,
	// capped at limit. Feeds the streak calculation.
	ListActiveDays(ctx context.Context, userID uuid.UUID, limit int) ([]domain.DayKey, error)

	// Totals aggregates all of the user's activity rows for the dashboard.
	Totals(ctx context.Context, userID uuid.UUID) (*ActivityTotals, error)

	// WithTx returns a new DailyActivityStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) DailyActivityStore
}
