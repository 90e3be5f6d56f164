package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexa-app/lexa-api/internal/domain"
)

// XPEventStore defines the interface for the append-only XP ledger.
// Events are never updated or deleted; the ledger is the audit trail that
// reconciles with profile totals and per-day earned XP.
type XPEventStore interface {
	// Create appends a new ledger entry.
	Create(ctx context.Context, event *domain.XPEvent) error

	// ListForDay returns all of a user's events for a day, oldest first.
	ListForDay(ctx context.Context, userID uuid.UUID, date domain.DayKey) ([]*domain.XPEvent, error)

	// SumForDay returns the total amount awarded to a user on a day.
	SumForDay(ctx context.Context, userID uuid.UUID, date domain.DayKey) (int, error)

	// WithTx returns a new XPEventStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) XPEventStore
}
