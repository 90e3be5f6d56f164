package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexa-app/lexa-api/internal/domain"
	"github.com/lexa-app/lexa-api/internal/platform/logger"
	"github.com/lexa-app/lexa-api/internal/store"
)

// PostgresDailyActivityStore implements the store.DailyActivityStore
// interface using a PostgreSQL database as the storage backend.
type PostgresDailyActivityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDailyActivityStore creates a new PostgreSQL implementation of
// the DailyActivityStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDailyActivityStore(db store.DBTX, logger *slog.Logger) *PostgresDailyActivityStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDailyActivityStore{
		db:     db,
		logger: logger.With(slog.String("component", "daily_activity_store")),
	}
}

// Ensure PostgresDailyActivityStore implements store.DailyActivityStore interface
var _ store.DailyActivityStore = (*PostgresDailyActivityStore)(nil)

const activityColumns = `user_id, date, words_viewed, recall_success_count,
	recall_fail_count, practice_success_count, mastered_count, session_count,
	total_time_ms, total_xp_earned, daily_goal_target, daily_goal_met,
	last_updated_at`

// Create implements store.DailyActivityStore.Create
// Returns store.ErrActivityExists if the (user, day) row already exists.
func (s *PostgresDailyActivityStore) Create(ctx context.Context, activity *domain.DailyActivity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := activity.Validate(); err != nil {
		log.Warn("daily activity validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", activity.UserID.String()),
			slog.String("date", activity.Date.String()))
		return err
	}

	// ON CONFLICT DO NOTHING keeps a lost bootstrap race from aborting the
	// surrounding transaction, so callers can fall back to reading the
	// winner's row in the same transaction.
	query := `
		INSERT INTO daily_activity (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id, date) DO NOTHING
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		activity.UserID,
		string(activity.Date),
		activity.WordsViewed,
		activity.RecallSuccessCount,
		activity.RecallFailCount,
		activity.PracticeSuccessCount,
		activity.MasteredCount,
		activity.SessionCount,
		activity.TotalTimeMs,
		activity.TotalXPEarned,
		activity.DailyGoalTarget,
		activity.DailyGoalMet,
		activity.LastUpdatedAt,
	)
	if err != nil {
		log.Error("failed to create daily activity",
			slog.String("error", err.Error()),
			slog.String("user_id", activity.UserID.String()),
			slog.String("date", activity.Date.String()))
		return mapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		log.Debug("daily activity already exists",
			slog.String("user_id", activity.UserID.String()),
			slog.String("date", activity.Date.String()))
		return store.ErrActivityExists
	}

	log.Debug("daily activity created",
		slog.String("user_id", activity.UserID.String()),
		slog.String("date", activity.Date.String()))
	return nil
}

// Get implements store.DailyActivityStore.Get
func (s *PostgresDailyActivityStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	date domain.DayKey,
) (*domain.DailyActivity, error) {
	return s.get(ctx, userID, date, false)
}

// GetForUpdate implements store.DailyActivityStore.GetForUpdate
func (s *PostgresDailyActivityStore) GetForUpdate(
	ctx context.Context,
	userID uuid.UUID,
	date domain.DayKey,
) (*domain.DailyActivity, error) {
	return s.get(ctx, userID, date, true)
}

func (s *PostgresDailyActivityStore) get(
	ctx context.Context,
	userID uuid.UUID,
	date domain.DayKey,
	forUpdate bool,
) (*domain.DailyActivity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + activityColumns + `
		FROM daily_activity
		WHERE user_id = $1 AND date = $2
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var activity domain.DailyActivity
	var dateStr string

	err := s.db.QueryRowContext(ctx, query, userID, string(date)).Scan(
		&activity.UserID,
		&dateStr,
		&activity.WordsViewed,
		&activity.RecallSuccessCount,
		&activity.RecallFailCount,
		&activity.PracticeSuccessCount,
		&activity.MasteredCount,
		&activity.SessionCount,
		&activity.TotalTimeMs,
		&activity.TotalXPEarned,
		&activity.DailyGoalTarget,
		&activity.DailyGoalMet,
		&activity.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrActivityNotFound
		}
		log.Error("failed to get daily activity",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("date", date.String()))
		return nil, mapError(err)
	}

	activity.Date = domain.DayKey(dateStr)
	return &activity, nil
}

// Update implements store.DailyActivityStore.Update
// Returns store.ErrActivityNotFound if the row does not exist.
func (s *PostgresDailyActivityStore) Update(ctx context.Context, activity *domain.DailyActivity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := activity.Validate(); err != nil {
		log.Warn("daily activity validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", activity.UserID.String()),
			slog.String("date", activity.Date.String()))
		return err
	}

	query := `
		UPDATE daily_activity
		SET words_viewed = $1, recall_success_count = $2, recall_fail_count = $3,
			practice_success_count = $4, mastered_count = $5, session_count = $6,
			total_time_ms = $7, total_xp_earned = $8, daily_goal_target = $9,
			daily_goal_met = $10, last_updated_at = $11
		WHERE user_id = $12 AND date = $13
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		activity.WordsViewed,
		activity.RecallSuccessCount,
		activity.RecallFailCount,
		activity.PracticeSuccessCount,
		activity.MasteredCount,
		activity.SessionCount,
		activity.TotalTimeMs,
		activity.TotalXPEarned,
		activity.DailyGoalTarget,
		activity.DailyGoalMet,
		activity.LastUpdatedAt,
		activity.UserID,
		string(activity.Date),
	)
	if err != nil {
		log.Error("failed to update daily activity",
			slog.String("error", err.Error()),
			slog.String("user_id", activity.UserID.String()),
			slog.String("date", activity.Date.String()))
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrActivityNotFound)
}

// ListActiveDays implements store.DailyActivityStore.ListActiveDays
func (s *PostgresDailyActivityStore) ListActiveDays(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]domain.DayKey, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 400
	}

	query := `
		SELECT date
		FROM daily_activity
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		log.Error("failed to list active days",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var days []domain.DayKey
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			log.Error("failed to scan active day row",
				slog.String("error", err.Error()))
			return nil, mapError(err)
		}
		days = append(days, domain.DayKey(day))
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return days, nil
}

// Totals implements store.DailyActivityStore.Totals
func (s *PostgresDailyActivityStore) Totals(
	ctx context.Context,
	userID uuid.UUID,
) (*store.ActivityTotals, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*), COALESCE(SUM(session_count), 0), COALESCE(SUM(total_time_ms), 0)
		FROM daily_activity
		WHERE user_id = $1
	`

	var totals store.ActivityTotals
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&totals.DaysActive,
		&totals.SessionCount,
		&totals.TotalTimeMs,
	)
	if err != nil {
		log.Error("failed to aggregate daily activity",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, mapError(err)
	}

	return &totals, nil
}

// WithTx implements store.DailyActivityStore.WithTx
func (s *PostgresDailyActivityStore) WithTx(tx *sql.Tx) store.DailyActivityStore {
	return &PostgresDailyActivityStore{
		db:     tx,
		logger: s.logger,
	}
}
