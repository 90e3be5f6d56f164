package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexa-app/lexa-api/internal/domain"
	"github.com/lexa-app/lexa-api/internal/platform/logger"
	"github.com/lexa-app/lexa-api/internal/store"
)

// PostgresWordProgressStore implements the store.WordProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordProgressStore creates a new PostgreSQL implementation of
// the WordProgressStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresWordProgressStore(db store.DBTX, logger *slog.Logger) *PostgresWordProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_progress_store")),
	}
}

// Ensure PostgresWordProgressStore implements store.WordProgressStore interface
var _ store.WordProgressStore = (*PostgresWordProgressStore)(nil)

const progressColumns = `user_id, word_id, view_count, swipe_right_count,
	swipe_left_count, bookmarked, recall_success_count, recall_fail_count,
	production_success_count, known_state, difficulty_state, stability,
	lapses_count, last_review, next_review, created_at, updated_at`

// Create implements store.WordProgressStore.Create
// Returns store.ErrWordProgressExists if the (user, word) row already exists.
func (s *PostgresWordProgressStore) Create(ctx context.Context, progress *domain.WordProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("word progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("word_id", progress.WordID.String()))
		return err
	}

	// ON CONFLICT DO NOTHING keeps a lost creation race from aborting the
	// surrounding transaction, so callers can fall back to reading the
	// winner's row in the same transaction.
	query := `
		INSERT INTO word_progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		progress.UserID,
		progress.WordID,
		progress.ViewCount,
		progress.SwipeRightCount,
		progress.SwipeLeftCount,
		progress.Bookmarked,
		progress.RecallSuccessCount,
		progress.RecallFailCount,
		progress.ProductionSuccessCount,
		string(progress.KnownState),
		string(progress.DifficultyState),
		progress.Stability,
		progress.LapsesCount,
		nullableTime(progress.LastReview),
		nullableTime(progress.NextReview),
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("word_id", progress.WordID.String()))
		return mapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return store.ErrWordProgressExists
	}

	log.Debug("word progress created",
		slog.String("user_id", progress.UserID.String()),
		slog.String("word_id", progress.WordID.String()))
	return nil
}

// Get implements store.WordProgressStore.Get
func (s *PostgresWordProgressStore) Get(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.WordProgress, error) {
	return s.get(ctx, userID, wordID, false)
}

// GetForUpdate implements store.WordProgressStore.GetForUpdate
func (s *PostgresWordProgressStore) GetForUpdate(
	ctx context.Context,
	userID, wordID uuid.UUID,
) (*domain.WordProgress, error) {
	return s.get(ctx, userID, wordID, true)
}

func (s *PostgresWordProgressStore) get(
	ctx context.Context,
	userID, wordID uuid.UUID,
	forUpdate bool,
) (*domain.WordProgress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + progressColumns + `
		FROM word_progress
		WHERE user_id = $1 AND word_id = $2
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var progress domain.WordProgress
	var knownState, difficultyState string
	var lastReview, nextReview sql.NullTime

	err := s.db.QueryRowContext(ctx, query, userID, wordID).Scan(
		&progress.UserID,
		&progress.WordID,
		&progress.ViewCount,
		&progress.SwipeRightCount,
		&progress.SwipeLeftCount,
		&progress.Bookmarked,
		&progress.RecallSuccessCount,
		&progress.RecallFailCount,
		&progress.ProductionSuccessCount,
		&knownState,
		&difficultyState,
		&progress.Stability,
		&progress.LapsesCount,
		&lastReview,
		&nextReview,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordProgressNotFound
		}
		log.Error("failed to get word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("word_id", wordID.String()))
		return nil, mapError(err)
	}

	progress.KnownState = domain.KnownState(knownState)
	progress.DifficultyState = domain.DifficultyState(difficultyState)
	if lastReview.Valid {
		progress.LastReview = lastReview.Time
	}
	if nextReview.Valid {
		progress.NextReview = nextReview.Time
	}

	return &progress, nil
}

// Update implements store.WordProgressStore.Update
// Returns store.ErrWordProgressNotFound if the row does not exist.
func (s *PostgresWordProgressStore) Update(ctx context.Context, progress *domain.WordProgress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("word progress validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("word_id", progress.WordID.String()))
		return err
	}

	query := `
		UPDATE word_progress
		SET view_count = $1, swipe_right_count = $2, swipe_left_count = $3,
			bookmarked = $4, recall_success_count = $5, recall_fail_count = $6,
			production_success_count = $7, known_state = $8, difficulty_state = $9,
			stability = $10, lapses_count = $11, last_review = $12,
			next_review = $13, updated_at = $14
		WHERE user_id = $15 AND word_id = $16
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		progress.ViewCount,
		progress.SwipeRightCount,
		progress.SwipeLeftCount,
		progress.Bookmarked,
		progress.RecallSuccessCount,
		progress.RecallFailCount,
		progress.ProductionSuccessCount,
		string(progress.KnownState),
		string(progress.DifficultyState),
		progress.Stability,
		progress.LapsesCount,
		nullableTime(progress.LastReview),
		nullableTime(progress.NextReview),
		progress.UpdatedAt,
		progress.UserID,
		progress.WordID,
	)
	if err != nil {
		log.Error("failed to update word progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("word_id", progress.WordID.String()))
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrWordProgressNotFound)
}

// Distribution implements store.WordProgressStore.Distribution
func (s *PostgresWordProgressStore) Distribution(
	ctx context.Context,
	userID uuid.UUID,
) (map[domain.KnownState]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT known_state, COUNT(*)
		FROM word_progress
		WHERE user_id = $1
		GROUP BY known_state
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query word state distribution",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	distribution := make(map[domain.KnownState]int)
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, mapError(err)
		}
		distribution[domain.KnownState(state)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return distribution, nil
}

// CountDue implements store.WordProgressStore.CountDue
func (s *PostgresWordProgressStore) CountDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM word_progress
		WHERE user_id = $1 AND next_review IS NOT NULL AND next_review <= $2
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, now).Scan(&count); err != nil {
		log.Error("failed to count due words",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, mapError(err)
	}

	return count, nil
}

// WithTx implements store.WordProgressStore.WithTx
func (s *PostgresWordProgressStore) WithTx(tx *sql.Tx) store.WordProgressStore {
	return &PostgresWordProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// nullableTime converts a zero time to NULL for storage.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
