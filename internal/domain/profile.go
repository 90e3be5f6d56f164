package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for UserProfile
var (
	ErrEmptyProfileUserID = errors.New("user profile user ID cannot be empty")
	ErrNegativeTotalXP    = errors.New("total XP cannot be negative")
	ErrNegativeStreak     = errors.New("streak cannot be negative")
	ErrBestStreakTooSmall = errors.New("best streak cannot be less than current streak")
	ErrNegativeFreezes    = errors.New("streak freeze count cannot be negative")
	ErrInvalidDailyGoal   = errors.New("daily goal XP must be greater than zero")
)

// UserProfile is the per-learner progress ledger head: lifetime XP, streak
// state and the daily goal target. The user ID is owned by the external
// identity provider and treated as an opaque key. Profiles are created on
// the first engine interaction and mutated only by the progress service.
type UserProfile struct {
	UserID         uuid.UUID `json:"user_id"`
	TotalXP        int64     `json:"total_xp"`        // Monotonic, only ever increases
	CurrentStreak  int       `json:"current_streak"`  // Consecutive active days ending today
	BestStreak     int       `json:"best_streak"`     // Highest streak ever reached
	StreakFreezes  int       `json:"streak_freezes"`  // Available skip-a-day tokens
	LastActiveDate DayKey    `json:"last_active_date"` // Zero value if never active
	DailyGoalXP    int       `json:"daily_goal_xp"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUserProfile creates a profile for a first-time user with the given
// daily goal target. The caller supplies the current time so creation stays
// deterministic under an injected clock.
func NewUserProfile(userID uuid.UUID, dailyGoalXP int, now time.Time) (*UserProfile, error) {
	profile := &UserProfile{
		UserID:      userID,
		TotalXP:     0,
		DailyGoalXP: dailyGoalXP,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the UserProfile has valid data.
// Returns an error if any field fails validation.
func (p *UserProfile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}

	if p.TotalXP < 0 {
		return ErrNegativeTotalXP
	}

	if p.CurrentStreak < 0 {
		return ErrNegativeStreak
	}

	if p.BestStreak < p.CurrentStreak {
		return ErrBestStreakTooSmall
	}

	if p.StreakFreezes < 0 {
		return ErrNegativeFreezes
	}

	if p.DailyGoalXP <= 0 {
		return ErrInvalidDailyGoal
	}

	if p.LastActiveDate != "" && !p.LastActiveDate.Valid() {
		return ErrInvalidDayKey
	}

	return nil
}
