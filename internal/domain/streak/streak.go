// Package streak implements the continuous-day streak calculation: streak
// length over a set of active day keys, streak-freeze consumption and
// milestone detection. All functions are pure; the progress service owns
// the surrounding I/O and applies their results.
package streak

import (
	"github.com/lexa-app/lexa-api/internal/domain"
)

// PreviousDayFn maps a day key to its predecessor. Production code passes
// PreviousDay; tests may substitute their own calendar.
type PreviousDayFn func(domain.DayKey) domain.DayKey

// PreviousDay is the standard calendar predecessor function.
func PreviousDay(day domain.DayKey) domain.DayKey {
	return day.Prev()
}

// CalculateStreak returns the length of the consecutive-day run ending at
// today, or at yesterday when today has no activity yet. Duplicate day keys
// in the input are tolerated. Returns 0 when neither today nor yesterday is
// active.
func CalculateStreak(
	activeDays []domain.DayKey,
	today, yesterday domain.DayKey,
	previousDay PreviousDayFn,
) int {
	if len(activeDays) == 0 {
		return 0
	}

	active := make(map[domain.DayKey]struct{}, len(activeDays))
	for _, day := range activeDays {
		active[day] = struct{}{}
	}

	// Anchor the walk at today if active, else at yesterday. A streak that
	// ended before yesterday is already broken.
	start := today
	if _, ok := active[today]; !ok {
		if _, ok := active[yesterday]; !ok {
			return 0
		}
		start = yesterday
	}

	count := 0
	for day := start; ; day = previousDay(day) {
		if _, ok := active[day]; !ok {
			break
		}
		count++
	}

	return count
}

// ShouldConsumeFreeze reports whether a streak freeze can bridge the gap
// between the last active day and today: true iff yesterday has no activity,
// the day before yesterday does, and today's session is the first of the day
// (today not yet active). At most one skipped day can be bridged; the caller
// decrements the freeze count.
func ShouldConsumeFreeze(activeDays []domain.DayKey, today, yesterday domain.DayKey) bool {
	active := make(map[domain.DayKey]struct{}, len(activeDays))
	for _, day := range activeDays {
		active[day] = struct{}{}
	}

	if _, ok := active[today]; ok {
		return false
	}
	if _, ok := active[yesterday]; ok {
		return false
	}

	_, ok := active[yesterday.Prev()]
	return ok
}
