// Package xp implements the reward economy: streak-scaled XP awards and the
// monotonic level curve over lifetime XP. All functions are pure.
package xp

import "math"

// Base XP amounts per action. Flat bonuses (daily goal, first session,
// streak milestones) are recorded with multiplier 1.0 and never scaled by
// the streak, which keeps compounding bounded.
const (
	BaseWordViewXP        = 2
	BaseRecallSuccessXP   = 10
	BasePracticeSuccessXP = 15
	BaseWordMasteredXP    = 25

	DailyGoalBonusXP    = 50
	FirstSessionBonusXP = 10
)

// multiplierStep and multiplierCapStreak define the streak multiplier
// curve: 5% per streak day, saturating at 10 days (x1.5).
const (
	multiplierStep      = 0.05
	multiplierCapStreak = 10
)

// StreakMultiplier returns the reward multiplier for the given streak
// length. It is non-decreasing, 1.0 at streak zero and capped at 1.5.
func StreakMultiplier(streak int) float64 {
	if streak < 0 {
		streak = 0
	}
	if streak > multiplierCapStreak {
		streak = multiplierCapStreak
	}
	return 1.0 + multiplierStep*float64(streak)
}

// MaxStreakMultiplier is the saturation value of the multiplier curve.
func MaxStreakMultiplier() float64 {
	return StreakMultiplier(multiplierCapStreak)
}

// Award converts a base reward and current streak into the amount actually
// granted: floor(baseXP * StreakMultiplier(streak)).
func Award(baseXP, streak int) (amount int, multiplier float64) {
	multiplier = StreakMultiplier(streak)
	amount = int(math.Floor(float64(baseXP) * multiplier))
	return amount, multiplier
}
