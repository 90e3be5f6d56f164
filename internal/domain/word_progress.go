package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// KnownState represents how well a word has been learned.
type KnownState string

// Possible known state values, ordered from least to most learned.
const (
	KnownStateNew      KnownState = "new"
	KnownStateLearning KnownState = "learning"
	KnownStateKnown    KnownState = "known"
	KnownStateMastered KnownState = "mastered"
)

// knownStateOrder maps each state to its position in the learning ladder.
var knownStateOrder = map[KnownState]int{
	KnownStateNew:      0,
	KnownStateLearning: 1,
	KnownStateKnown:    2,
	KnownStateMastered: 3,
}

// IsValid reports whether the state is one of the defined values.
func (s KnownState) IsValid() bool {
	_, ok := knownStateOrder[s]
	return ok
}

// Advance returns the next state up the ladder. MASTERED stays MASTERED.
func (s KnownState) Advance() KnownState {
	switch s {
	case KnownStateNew:
		return KnownStateLearning
	case KnownStateLearning:
		return KnownStateKnown
	case KnownStateKnown:
		return KnownStateMastered
	default:
		return KnownStateMastered
	}
}

// Regress returns the next state down the ladder. NEW stays NEW.
func (s KnownState) Regress() KnownState {
	switch s {
	case KnownStateMastered:
		return KnownStateKnown
	case KnownStateKnown:
		return KnownStateLearning
	case KnownStateLearning:
		return KnownStateNew
	default:
		return KnownStateNew
	}
}

// AtLeast reports whether the state is at or above the given state on the
// learning ladder.
func (s KnownState) AtLeast(other KnownState) bool {
	return knownStateOrder[s] >= knownStateOrder[other]
}

// DifficultyState is the adaptive difficulty classification of a word for a
// particular learner.
type DifficultyState string

// Possible difficulty values.
const (
	DifficultyEasy   DifficultyState = "easy"
	DifficultyMedium DifficultyState = "medium"
	DifficultyHard   DifficultyState = "hard"
)

// IsValid reports whether the difficulty is one of the defined values.
func (d DifficultyState) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Common validation errors for WordProgress
var (
	ErrEmptyProgressUserID = errors.New("word progress user ID cannot be empty")
	ErrEmptyProgressWordID = errors.New("word progress word ID cannot be empty")
	ErrInvalidKnownState   = errors.New("invalid known state")
	ErrInvalidDifficulty   = errors.New("invalid difficulty state")
	ErrNegativeStability   = errors.New("stability cannot be negative")
	ErrNegativeLapses      = errors.New("lapse count cannot be negative")
)

// WordProgress tracks a learner's spaced-repetition state for one vocabulary
// item: engagement counters, the known-state machine, memory stability and
// the review schedule. Rows are created on first interaction with a word and
// mutated only through the srs scheduler's outputs.
type WordProgress struct {
	UserID                 uuid.UUID       `json:"user_id"`
	WordID                 uuid.UUID       `json:"word_id"`
	ViewCount              int             `json:"view_count"`
	SwipeRightCount        int             `json:"swipe_right_count"`
	SwipeLeftCount         int             `json:"swipe_left_count"`
	Bookmarked             bool            `json:"bookmarked"`
	RecallSuccessCount     int             `json:"recall_success_count"`
	RecallFailCount        int             `json:"recall_fail_count"`
	ProductionSuccessCount int             `json:"production_success_count"`
	KnownState             KnownState      `json:"known_state"`
	DifficultyState        DifficultyState `json:"difficulty_state"`
	Stability              float64         `json:"stability"` // Estimated memory strength, drives the review interval
	LapsesCount            int             `json:"lapses_count"`
	LastReview             time.Time       `json:"last_review"` // Zero time if never reviewed
	NextReview             time.Time       `json:"next_review"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// NewWordProgress creates progress for a user and word with default values.
// New words start in the NEW state, classified easy, and are due for review
// immediately.
func NewWordProgress(userID, wordID uuid.UUID, now time.Time) (*WordProgress, error) {
	progress := &WordProgress{
		UserID:          userID,
		WordID:          wordID,
		KnownState:      KnownStateNew,
		DifficultyState: DifficultyEasy,
		Stability:       0,
		LastReview:      time.Time{},
		NextReview:      now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the WordProgress has valid data.
// Returns an error if any field fails validation.
func (p *WordProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}

	if p.WordID == uuid.Nil {
		return ErrEmptyProgressWordID
	}

	if !p.KnownState.IsValid() {
		return ErrInvalidKnownState
	}

	if !p.DifficultyState.IsValid() {
		return ErrInvalidDifficulty
	}

	if p.Stability < 0 {
		return ErrNegativeStability
	}

	if p.LapsesCount < 0 {
		return ErrNegativeLapses
	}

	return nil
}
