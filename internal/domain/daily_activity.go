package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for DailyActivity
var (
	ErrEmptyActivityUserID = errors.New("daily activity user ID cannot be empty")
	ErrInvalidActivityDate = errors.New("daily activity date is not a valid day key")
	ErrNegativeCounter     = errors.New("activity counters cannot be negative")
	ErrInvalidGoalTarget   = errors.New("daily goal target must be greater than zero")
)

// DailyActivity accumulates one learner's engagement for a single calendar
// day. Exactly one row exists per (user, day); it is created lazily by the
// progress service on the first action of the day. DailyGoalMet is
// monotonic: engine code only ever flips it false to true.
type DailyActivity struct {
	UserID               uuid.UUID `json:"user_id"`
	Date                 DayKey    `json:"date"`
	WordsViewed          int       `json:"words_viewed"`
	RecallSuccessCount   int       `json:"recall_success_count"`
	RecallFailCount      int       `json:"recall_fail_count"`
	PracticeSuccessCount int       `json:"practice_success_count"`
	MasteredCount        int       `json:"mastered_count"`
	SessionCount         int       `json:"session_count"`
	TotalTimeMs          int64     `json:"total_time_ms"`
	TotalXPEarned        int       `json:"total_xp_earned"`
	DailyGoalTarget      int       `json:"daily_goal_target"` // Snapshot of the profile goal at day start
	DailyGoalMet         bool      `json:"daily_goal_met"`
	LastUpdatedAt        time.Time `json:"last_updated_at"`
}

// NewDailyActivity creates the activity row for the given user and day with
// all counters at zero and the profile's current goal snapshotted in.
func NewDailyActivity(userID uuid.UUID, date DayKey, goalTarget int, now time.Time) (*DailyActivity, error) {
	activity := &DailyActivity{
		UserID:          userID,
		Date:            date,
		DailyGoalTarget: goalTarget,
		LastUpdatedAt:   now,
	}

	if err := activity.Validate(); err != nil {
		return nil, err
	}

	return activity, nil
}

// Validate checks if the DailyActivity has valid data.
// Returns an error if any field fails validation.
func (a *DailyActivity) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrEmptyActivityUserID
	}

	if !a.Date.Valid() {
		return ErrInvalidActivityDate
	}

	if a.WordsViewed < 0 || a.RecallSuccessCount < 0 || a.RecallFailCount < 0 ||
		a.PracticeSuccessCount < 0 || a.MasteredCount < 0 || a.SessionCount < 0 ||
		a.TotalTimeMs < 0 || a.TotalXPEarned < 0 {
		return ErrNegativeCounter
	}

	if a.DailyGoalTarget <= 0 {
		return ErrInvalidGoalTarget
	}

	return nil
}
