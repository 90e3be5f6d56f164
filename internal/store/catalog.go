package store

import (
	"context"

	"github.com/google/uuid"
)

// WordMeta is the catalog metadata the scheduler needs for a vocabulary
// item. Rank is the popularity rank (lower = more common); Frequency is the
// corpus frequency bucket.
type WordMeta struct {
	Rank      int
	Frequency int
}

// WordCatalog supplies vocabulary metadata. The catalog is owned by an
// external collaborator; the engine only reads from it.
type WordCatalog interface {
	// GetWordMeta retrieves rank/frequency metadata for a word.
	// Returns ErrWordNotFound if the catalog does not know the word.
	GetWordMeta(ctx context.Context, wordID uuid.UUID) (*WordMeta, error)
}
