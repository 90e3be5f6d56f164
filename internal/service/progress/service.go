package progress

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lexa-app/lexa-api/internal/domain"
)

// SwipeDirection is the direction of a card swipe in the discovery feed.
type SwipeDirection string

// Swipe directions. Right means "I want to learn this", left means "skip".
const (
	SwipeRight SwipeDirection = "right"
	SwipeLeft  SwipeDirection = "left"
)

// IsValid reports whether the direction is one of the defined values.
func (d SwipeDirection) IsValid() bool {
	return d == SwipeRight || d == SwipeLeft
}

// ActionResult summarizes the reward outcome of a recorded action so the
// client can render feedback (XP toast, level-up, goal celebration) without
// a follow-up read.
type ActionResult struct {
	// BaseXP is the unscaled reward for the action itself.
	BaseXP int `json:"base_xp"`

	// StreakMultiplier is the multiplier applied to BaseXP.
	StreakMultiplier float64 `json:"streak_multiplier"`

	// TotalXPAwarded is everything granted by this call: the scaled action
	// reward plus any flat bonuses (first session, milestone, daily goal)
	// that fired with it.
	TotalXPAwarded int `json:"total_xp_awarded"`

	// NewLifetimeXP is the profile's lifetime XP after the action.
	NewLifetimeXP int64 `json:"new_lifetime_xp"`

	// NewLevel is the level derived from NewLifetimeXP.
	NewLevel int `json:"new_level"`

	// LeveledUp is true when this action crossed a level threshold.
	LeveledUp bool `json:"leveled_up"`

	// DailyGoalJustMet is true when this action flipped today's goal from
	// unmet to met. The flip happens at most once per day.
	DailyGoalJustMet bool `json:"daily_goal_just_met"`
}

// Dashboard is the read-only aggregation snapshot for the progress screen.
// It is assembled from unlocked reads and may trail concurrent writes
// slightly.
type Dashboard struct {
	UserID         uuid.UUID                 `json:"user_id"`
	TotalXP        int64                     `json:"total_xp"`
	Level          int                       `json:"level"`
	LevelProgress  float64                   `json:"level_progress"`
	XPToNextLevel  int64                     `json:"xp_to_next_level"`
	CurrentStreak  int                       `json:"current_streak"`
	BestStreak     int                       `json:"best_streak"`
	StreakFreezes  int                       `json:"streak_freezes"`
	DailyGoalXP    int                       `json:"daily_goal_xp"`
	Today          domain.DayKey             `json:"today"`
	TodayXP        int                       `json:"today_xp"`
	DailyGoalMet   bool                      `json:"daily_goal_met"`
	WordCounts     map[domain.KnownState]int `json:"word_counts"`
	DueCount       int                       `json:"due_count"`
	DaysActive     int                       `json:"days_active"`
	SessionCount   int                       `json:"session_count"`
	TotalTimeMs    int64                     `json:"total_time_ms"`
}

// ProgressService is the single entry point for recording learner actions
// and reading progress. All write operations are atomic per action and
// idempotently bootstrap the learner's day first.
type ProgressService interface {
	// EnsureTodayExists bootstraps today's activity row for the user,
	// recomputing the streak, consuming a streak freeze when one bridges a
	// single missed day, and granting milestone and first-session bonuses.
	// It is idempotent; callers normally rely on the Record* operations
	// invoking it implicitly.
	EnsureTodayExists(ctx context.Context, userID uuid.UUID) error

	// RecordWordView records a passive exposure to a word.
	RecordWordView(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error)

	// RecordRecallSuccess records a successful passive recall (e.g. a
	// correct multiple-choice answer).
	RecordRecallSuccess(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error)

	// RecordRecallFail records a failed recall. It never awards XP.
	RecordRecallFail(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error)

	// RecordProductionSuccess records the learner actively producing the
	// word (typed or spoke it correctly).
	RecordProductionSuccess(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error)

	// RecordWordMastered promotes a word directly to MASTERED. The mastery
	// reward is granted only when the word was not already mastered.
	RecordWordMastered(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error)

	// RecordSession accumulates a finished study session's duration into
	// today's activity row.
	RecordSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*ActionResult, error)

	// SetDailyGoal changes the user's daily XP target. The new target
	// applies from the next day's bootstrap; today's snapshotted target is
	// unchanged.
	SetDailyGoal(ctx context.Context, userID uuid.UUID, targetXP int) error

	// RecordSwipe records a discovery-feed swipe on a word. Swipes are
	// engagement metadata only; they neither award XP nor count as
	// learning activity for the streak.
	RecordSwipe(ctx context.Context, userID, wordID uuid.UUID, direction SwipeDirection) error

	// SetBookmark sets or clears the bookmark flag on a word.
	SetBookmark(ctx context.Context, userID, wordID uuid.UUID, bookmarked bool) error

	// GetDashboard returns the aggregation snapshot for the user. Users
	// with no recorded activity get a zero-valued dashboard rather than an
	// error.
	GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}
