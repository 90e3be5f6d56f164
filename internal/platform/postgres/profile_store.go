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

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

const profileColumns = `user_id, total_xp, current_streak, best_streak,
	streak_freezes, last_active_date, daily_goal_xp, created_at, updated_at`

// Create implements store.ProfileStore.Create
// Returns store.ErrProfileExists if a profile for the user already exists.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.UserProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	// ON CONFLICT DO NOTHING keeps a lost creation race from aborting the
	// surrounding transaction, so callers can fall back to reading the
	// winner's row in the same transaction.
	query := `
		INSERT INTO user_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		ON CONFLICT (user_id) DO NOTHING
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		profile.UserID,
		profile.TotalXP,
		profile.CurrentStreak,
		profile.BestStreak,
		profile.StreakFreezes,
		string(profile.LastActiveDate),
		profile.DailyGoalXP,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return mapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		log.Debug("profile already exists",
			slog.String("user_id", profile.UserID.String()))
		return store.ErrProfileExists
	}

	log.Info("profile created",
		slog.String("user_id", profile.UserID.String()),
		slog.Int("daily_goal_xp", profile.DailyGoalXP))
	return nil
}

// Get implements store.ProfileStore.Get
func (s *PostgresProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	return s.get(ctx, userID, false)
}

// GetForUpdate implements store.ProfileStore.GetForUpdate
func (s *PostgresProfileStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	return s.get(ctx, userID, true)
}

func (s *PostgresProfileStore) get(ctx context.Context, userID uuid.UUID, forUpdate bool) (*domain.UserProfile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + profileColumns + `
		FROM user_profiles
		WHERE user_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var profile domain.UserProfile
	var lastActive sql.NullString

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.TotalXP,
		&profile.CurrentStreak,
		&profile.BestStreak,
		&profile.StreakFreezes,
		&lastActive,
		&profile.DailyGoalXP,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, mapError(err)
	}

	if lastActive.Valid {
		profile.LastActiveDate = domain.DayKey(lastActive.String)
	}

	return &profile, nil
}

// Update implements store.ProfileStore.Update
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresProfileStore) Update(ctx context.Context, profile *domain.UserProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	query := `
		UPDATE user_profiles
		SET total_xp = $1, current_streak = $2, best_streak = $3,
			streak_freezes = $4, last_active_date = NULLIF($5, ''),
			daily_goal_xp = $6, updated_at = $7
		WHERE user_id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		profile.TotalXP,
		profile.CurrentStreak,
		profile.BestStreak,
		profile.StreakFreezes,
		string(profile.LastActiveDate),
		profile.DailyGoalXP,
		profile.UpdatedAt,
		profile.UserID,
	)
	if err != nil {
		log.Error("failed to update profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return mapError(err)
	}

	return checkRowsAffected(result, store.ErrProfileNotFound)
}

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}
