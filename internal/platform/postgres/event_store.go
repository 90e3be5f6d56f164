package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexa-app/lexa-api/internal/domain"
	"github.com/lexa-app/lexa-api/internal/platform/logger"
	"github.com/lexa-app/lexa-api/internal/store"
)

// PostgresXPEventStore implements the store.XPEventStore interface using a
// PostgreSQL database as the storage backend. The xp_events table is
// append-only; no update or delete paths exist.
type PostgresXPEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresXPEventStore creates a new PostgreSQL implementation of the
// XPEventStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresXPEventStore(db store.DBTX, logger *slog.Logger) *PostgresXPEventStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresXPEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "xp_event_store")),
	}
}

// Ensure PostgresXPEventStore implements store.XPEventStore interface
var _ store.XPEventStore = (*PostgresXPEventStore)(nil)

// Create implements store.XPEventStore.Create
func (s *PostgresXPEventStore) Create(ctx context.Context, event *domain.XPEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("xp event validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", event.UserID.String()),
			slog.String("source", string(event.Source)))
		return err
	}

	query := `
		INSERT INTO xp_events (id, user_id, date, source, base_xp,
			streak_multiplier, amount, word_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.UserID,
		string(event.Date),
		string(event.Source),
		event.BaseXP,
		event.StreakMultiplier,
		event.Amount,
		event.WordID,
		event.CreatedAt,
	)
	if err != nil {
		log.Error("failed to append xp event",
			slog.String("error", err.Error()),
			slog.String("user_id", event.UserID.String()),
			slog.String("source", string(event.Source)))
		return mapError(err)
	}

	log.Debug("xp event appended",
		slog.String("user_id", event.UserID.String()),
		slog.String("source", string(event.Source)),
		slog.Int("amount", event.Amount))
	return nil
}

// ListForDay implements store.XPEventStore.ListForDay
func (s *PostgresXPEventStore) ListForDay(
	ctx context.Context,
	userID uuid.UUID,
	date domain.DayKey,
) ([]*domain.XPEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, date, source, base_xp, streak_multiplier,
			amount, word_id, created_at
		FROM xp_events
		WHERE user_id = $1 AND date = $2
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID, string(date))
	if err != nil {
		log.Error("failed to query xp events",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("date", date.String()))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var events []*domain.XPEvent
	for rows.Next() {
		var event domain.XPEvent
		var dateStr, source string
		var wordID uuid.NullUUID

		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&dateStr,
			&source,
			&event.BaseXP,
			&event.StreakMultiplier,
			&event.Amount,
			&wordID,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, mapError(err)
		}

		event.Date = domain.DayKey(dateStr)
		event.Source = domain.XPSource(source)
		if wordID.Valid {
			id := wordID.UUID
			event.WordID = &id
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	if events == nil {
		events = []*domain.XPEvent{}
	}

	return events, nil
}

// SumForDay implements store.XPEventStore.SumForDay
func (s *PostgresXPEventStore) SumForDay(
	ctx context.Context,
	userID uuid.UUID,
	date domain.DayKey,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM xp_events
		WHERE user_id = $1 AND date = $2
	`

	var sum int
	if err := s.db.QueryRowContext(ctx, query, userID, string(date)).Scan(&sum); err != nil {
		log.Error("failed to sum xp events",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("date", date.String()))
		return 0, mapError(err)
	}

	return sum, nil
}

// WithTx implements store.XPEventStore.WithTx
func (s *PostgresXPEventStore) WithTx(tx *sql.Tx) store.XPEventStore {
	return &PostgresXPEventStore{
		db:     tx,
		logger: s.logger,
	}
}
