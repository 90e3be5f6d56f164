package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexa-app/lexa-api/internal/platform/logger"
	"github.com/lexa-app/lexa-api/internal/store"
)

// PostgresWordCatalog implements the store.WordCatalog interface over the
// words table maintained by the catalog import pipeline.
type PostgresWordCatalog struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordCatalog creates a new PostgreSQL implementation of the
// WordCatalog interface.
// If logger is nil, a default logger will be used.
func NewPostgresWordCatalog(db store.DBTX, logger *slog.Logger) *PostgresWordCatalog {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordCatalog{
		db:     db,
		logger: logger.With(slog.String("component", "word_catalog")),
	}
}

// Ensure PostgresWordCatalog implements store.WordCatalog interface
var _ store.WordCatalog = (*PostgresWordCatalog)(nil)

// GetWordMeta implements store.WordCatalog.GetWordMeta
func (s *PostgresWordCatalog) GetWordMeta(ctx context.Context, wordID uuid.UUID) (*store.WordMeta, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT rank, frequency
		FROM words
		WHERE id = $1
	`

	var meta store.WordMeta
	err := s.db.QueryRowContext(ctx, query, wordID).Scan(&meta.Rank, &meta.Frequency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found in catalog",
				slog.String("word_id", wordID.String()))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word metadata",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()))
		return nil, mapError(err)
	}

	return &meta, nil
}
