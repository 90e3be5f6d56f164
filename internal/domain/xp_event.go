package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// XPSource tags an XP ledger entry with the action that produced it.
type XPSource string

// XP event sources. Streak milestone sources carry the milestone length,
// e.g. "streak_milestone_7"; use MilestoneSource to build them.
const (
	XPSourceWordView        XPSource = "word_view"
	XPSourceRecallSuccess   XPSource = "recall_success"
	XPSourcePracticeSuccess XPSource = "practice_success"
	XPSourceWordMastered    XPSource = "word_mastered"
	XPSourceDailyGoalBonus  XPSource = "daily_goal_bonus"
	XPSourceFirstSession    XPSource = "first_session_bonus"
)

// MilestoneSource returns the XP source tag for a streak milestone of the
// given length in days.
func MilestoneSource(days int) XPSource {
	return XPSource(fmt.Sprintf("streak_milestone_%d", days))
}

// Common validation errors for XPEvent
var (
	ErrEmptyEventUserID   = errors.New("xp event user ID cannot be empty")
	ErrEmptyEventSource   = errors.New("xp event source cannot be empty")
	ErrInvalidEventDate   = errors.New("xp event date is not a valid day key")
	ErrNegativeEventXP    = errors.New("xp event amounts cannot be negative")
	ErrInvalidMultiplier  = errors.New("xp event multiplier must be at least 1.0")
)

// XPEvent is one immutable entry in the append-only XP ledger. The sum of
// amounts for a (user, day) must reconcile with that day's TotalXPEarned,
// and the lifetime sum with the profile's TotalXP. Events are never mutated
// or deleted.
type XPEvent struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	Date             DayKey     `json:"date"`
	Source           XPSource   `json:"source"`
	BaseXP           int        `json:"base_xp"`
	StreakMultiplier float64    `json:"streak_multiplier"`
	Amount           int        `json:"amount"`
	WordID           *uuid.UUID `json:"word_id,omitempty"` // Set for word-scoped sources only
	CreatedAt        time.Time  `json:"created_at"`
}

// NewXPEvent creates a ledger entry. Flat bonuses pass multiplier 1.0 and
// amount equal to baseXP; multiplied awards pass the applied multiplier and
// the floored product.
func NewXPEvent(
	userID uuid.UUID,
	date DayKey,
	source XPSource,
	baseXP int,
	multiplier float64,
	amount int,
	wordID *uuid.UUID,
	now time.Time,
) (*XPEvent, error) {
	event := &XPEvent{
		ID:               uuid.New(),
		UserID:           userID,
		Date:             date,
		Source:           source,
		BaseXP:           baseXP,
		StreakMultiplier: multiplier,
		Amount:           amount,
		WordID:           wordID,
		CreatedAt:        now,
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the XPEvent has valid data.
// Returns an error if any field fails validation.
func (e *XPEvent) Validate() error {
	if e.UserID == uuid.Nil {
		return ErrEmptyEventUserID
	}

	if e.Source == "" {
		return ErrEmptyEventSource
	}

	if !e.Date.Valid() {
		return ErrInvalidEventDate
	}

	if e.BaseXP < 0 || e.Amount < 0 {
		return ErrNegativeEventXP
	}

	if e.StreakMultiplier < 1.0 {
		return ErrInvalidMultiplier
	}

	return nil
}
