package progress_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexa-app/lexa-api/internal/domain"
	"github.com/lexa-app/lexa-api/internal/events"
	"github.com/lexa-app/lexa-api/internal/service/progress"
)

func TestFirstActionBootstrapsProfileAndDay(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	result, err := fx.svc.RecordRecallSuccess(ctx, userID, wordID)
	require.NoError(t, err)

	// Streak 1 scales the 10 XP recall base to floor(10.5) = 10; the
	// first-session bonus adds a flat 10.
	assert.Equal(t, 10, result.BaseXP)
	assert.InDelta(t, 1.05, result.StreakMultiplier, 1e-9)
	assert.Equal(t, 20, result.TotalXPAwarded)
	assert.Equal(t, int64(20), result.NewLifetimeXP)
	assert.Equal(t, 0, result.NewLevel)
	assert.False(t, result.LeveledUp)
	assert.False(t, result.DailyGoalJustMet)

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CurrentStreak)
	assert.Equal(t, 1, profile.BestStreak)
	assert.Equal(t, fx.today(), profile.LastActiveDate)
	assert.Equal(t, int64(20), profile.TotalXP)

	activity, err := fx.activities.Get(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Equal(t, 1, activity.RecallSuccessCount)
	assert.Equal(t, 20, activity.TotalXPEarned)
	assert.False(t, activity.DailyGoalMet)

	word, err := fx.words.Get(ctx, userID, wordID)
	require.NoError(t, err)
	assert.Equal(t, 1, word.RecallSuccessCount)
	assert.Equal(t, domain.KnownStateLearning, word.KnownState)

	sum, err := fx.ledger.SumForDay(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Equal(t, activity.TotalXPEarned, sum)

	assert.ElementsMatch(t, []string{
		events.KindProfileUpdated,
		events.KindActivityUpdated,
		events.KindWordProgressUpdated,
	}, fx.emitter.kinds())
}

func TestSecondActionSameDaySkipsBonuses(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	_, err := fx.svc.RecordRecallSuccess(ctx, userID, wordID)
	require.NoError(t, err)

	result, err := fx.svc.RecordWordView(ctx, userID, wordID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.BaseXP)
	assert.Equal(t, 2, result.TotalXPAwarded)

	dayEvents, err := fx.ledger.ListForDay(ctx, userID, fx.today())
	require.NoError(t, err)
	require.Len(t, dayEvents, 3)

	bonusCount := 0
	for _, event := range dayEvents {
		if event.Source == domain.XPSourceFirstSession {
			bonusCount++
		}
	}
	assert.Equal(t, 1, bonusCount, "first-session bonus must be granted once per day")
}

func TestEnsureTodayExistsIsIdempotent(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, fx.svc.EnsureTodayExists(ctx, userID))

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), profile.TotalXP, "bootstrap grants only the first-session bonus")
	assert.Equal(t, 1, profile.CurrentStreak)

	require.NoError(t, fx.svc.EnsureTodayExists(ctx, userID))

	profile, err = fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), profile.TotalXP, "repeat bootstrap must not grant more XP")

	dayEvents, err := fx.ledger.ListForDay(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Len(t, dayEvents, 1)
}

func TestFreezeBridgesOneMissedDay(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	today := fx.today()
	// Active two and three days ago; yesterday was missed.
	fx.seedActivity(t, userID, today.Prev().Prev())
	fx.seedActivity(t, userID, today.Prev().Prev().Prev())
	fx.seedProfile(t, userID, 2, 2, 1, today.Prev().Prev(), 0)

	require.NoError(t, fx.svc.EnsureTodayExists(ctx, userID))

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.StreakFreezes, "the freeze must be consumed")
	assert.Equal(t, 3, profile.CurrentStreak, "the forgiven day connects the run but does not count")
	assert.Equal(t, 3, profile.BestStreak)
}

func TestFreezeBridgeStillFiresMilestone(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	today := fx.today()
	// Six active days ending the day before yesterday; yesterday was
	// missed. The freeze carries the run to seven, not past it.
	day := today.Prev().Prev()
	for i := 0; i < 6; i++ {
		fx.seedActivity(t, userID, day)
		day = day.Prev()
	}
	fx.seedProfile(t, userID, 6, 6, 1, today.Prev().Prev(), 0)

	require.NoError(t, fx.svc.EnsureTodayExists(ctx, userID))

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, profile.StreakFreezes)
	assert.Equal(t, 7, profile.CurrentStreak)
	assert.Equal(t, int64(60), profile.TotalXP, "seven-day milestone plus first-session bonus")

	dayEvents, err := fx.ledger.ListForDay(ctx, userID, today)
	require.NoError(t, err)

	sources := make(map[domain.XPSource]int)
	for _, event := range dayEvents {
		sources[event.Source] += event.Amount
	}
	assert.Equal(t, 50, sources[domain.MilestoneSource(7)])
	assert.Equal(t, 10, sources[domain.XPSourceFirstSession])
}

func TestFreezeNotConsumedForLargerGap(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	today := fx.today()
	// Last active three days ago: two missed days, beyond what one freeze
	// can bridge.
	fx.seedActivity(t, userID, today.Prev().Prev().Prev())
	fx.seedProfile(t, userID, 1, 1, 1, today.Prev().Prev().Prev(), 0)

	require.NoError(t, fx.svc.EnsureTodayExists(ctx, userID))

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.StreakFreezes, "the freeze must be kept")
	assert.Equal(t, 1, profile.CurrentStreak, "the streak restarts at one")
}

func TestSevenDayMilestoneWithGoalAndLevelUp(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	today := fx.today()
	day := today.Prev()
	for i := 0; i < 6; i++ {
		fx.seedActivity(t, userID, day)
		day = day.Prev()
	}
	fx.seedProfile(t, userID, 6, 6, 0, today.Prev(), 0)

	result, err := fx.svc.RecordRecallSuccess(ctx, userID, wordID)
	require.NoError(t, err)

	// Streak 7: action floor(10*1.35)=13, milestone 50, first-session 10.
	// 73 earned crosses the 50 XP goal, adding the flat 50 goal bonus.
	assert.Equal(t, 10, result.BaseXP)
	assert.InDelta(t, 1.35, result.StreakMultiplier, 1e-9)
	assert.Equal(t, 123, result.TotalXPAwarded)
	assert.True(t, result.DailyGoalJustMet)
	assert.Equal(t, int64(123), result.NewLifetimeXP)
	assert.Equal(t, 1, result.NewLevel)
	assert.True(t, result.LeveledUp)

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 7, profile.CurrentStreak)
	assert.Equal(t, 7, profile.BestStreak)

	activity, err := fx.activities.Get(ctx, userID, today)
	require.NoError(t, err)
	assert.Equal(t, 123, activity.TotalXPEarned)
	assert.True(t, activity.DailyGoalMet)

	dayEvents, err := fx.ledger.ListForDay(ctx, userID, today)
	require.NoError(t, err)
	require.Len(t, dayEvents, 4)

	sources := make(map[domain.XPSource]int)
	for _, event := range dayEvents {
		sources[event.Source] += event.Amount
	}
	assert.Equal(t, 13, sources[domain.XPSourceRecallSuccess])
	assert.Equal(t, 50, sources[domain.MilestoneSource(7)])
	assert.Equal(t, 10, sources[domain.XPSourceFirstSession])
	assert.Equal(t, 50, sources[domain.XPSourceDailyGoalBonus])
}

func TestDailyGoalBonusFiresExactlyOnce(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	// First-session bonus 10, then recalls at 10 each. The fourth recall
	// reaches the 50 XP goal.
	for i := 0; i < 3; i++ {
		result, err := fx.svc.RecordRecallSuccess(ctx, userID, wordID)
		require.NoError(t, err)
		assert.False(t, result.DailyGoalJustMet)
	}

	result, err := fx.svc.RecordRecallSuccess(ctx, userID, wordID)
	require.NoError(t, err)
	assert.True(t, result.DailyGoalJustMet)
	assert.Equal(t, 60, result.TotalXPAwarded, "the action award plus the goal bonus")

	// Further XP never re-fires the transition.
	result, err = fx.svc.RecordRecallSuccess(ctx, userID, wordID)
	require.NoError(t, err)
	assert.False(t, result.DailyGoalJustMet)
	assert.Equal(t, 10, result.TotalXPAwarded)

	dayEvents, err := fx.ledger.ListForDay(ctx, userID, fx.today())
	require.NoError(t, err)
	goalBonuses := 0
	for _, event := range dayEvents {
		if event.Source == domain.XPSourceDailyGoalBonus {
			goalBonuses++
		}
	}
	assert.Equal(t, 1, goalBonuses)

	activity, err := fx.activities.Get(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.True(t, activity.DailyGoalMet)
	assert.Equal(t, 110, activity.TotalXPEarned)
}

func TestUnknownWordIsANoOp(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	result, err := fx.svc.RecordWordView(ctx, userID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, &progress.ActionResult{StreakMultiplier: 1.0}, result)

	_, err = fx.profiles.Get(ctx, userID)
	assert.Error(t, err, "no profile may be created for an unknown word")
	assert.Equal(t, 0, fx.emitter.count())

	dayEvents, err := fx.ledger.ListForDay(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Empty(t, dayEvents)
}

func TestRecallFailAwardsNoXP(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	result, err := fx.svc.RecordRecallFail(ctx, userID, wordID)
	require.NoError(t, err)

	assert.Equal(t, 0, result.BaseXP)
	assert.Equal(t, 10, result.TotalXPAwarded, "only the first-session bonus")

	activity, err := fx.activities.Get(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Equal(t, 1, activity.RecallFailCount)

	word, err := fx.words.Get(ctx, userID, wordID)
	require.NoError(t, err)
	assert.Equal(t, 1, word.RecallFailCount)
	assert.Equal(t, 1, word.LapsesCount)
}

func TestMarkMasteredAwardsOnce(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	result, err := fx.svc.RecordWordMastered(ctx, userID, wordID)
	require.NoError(t, err)
	assert.Equal(t, 25, result.BaseXP)
	assert.Equal(t, 36, result.TotalXPAwarded, "floor(25*1.05) plus the first-session bonus")

	word, err := fx.words.Get(ctx, userID, wordID)
	require.NoError(t, err)
	assert.Equal(t, domain.KnownStateMastered, word.KnownState)
	assert.GreaterOrEqual(t, word.Stability, 8.0)

	activity, err := fx.activities.Get(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Equal(t, 1, activity.MasteredCount)

	// Mastering an already-mastered word grants nothing.
	result, err = fx.svc.RecordWordMastered(ctx, userID, wordID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.BaseXP)
	assert.Equal(t, 0, result.TotalXPAwarded)

	activity, err = fx.activities.Get(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Equal(t, 1, activity.MasteredCount)
}

func TestRecordSession(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := fx.svc.RecordSession(ctx, userID, -time.Second)
	assert.ErrorIs(t, err, progress.ErrInvalidDuration)

	result, err := fx.svc.RecordSession(ctx, userID, 90*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 10, result.TotalXPAwarded, "first session of the day carries the bonus")

	activity, err := fx.activities.Get(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Equal(t, 1, activity.SessionCount)
	assert.Equal(t, int64(90000), activity.TotalTimeMs)

	_, err = fx.svc.RecordSession(ctx, userID, 30*time.Second)
	require.NoError(t, err)

	activity, err = fx.activities.Get(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Equal(t, 2, activity.SessionCount)
	assert.Equal(t, int64(120000), activity.TotalTimeMs)
}

func TestSetDailyGoal(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	assert.ErrorIs(t, fx.svc.SetDailyGoal(ctx, userID, 0), progress.ErrInvalidGoalTarget)
	assert.ErrorIs(t, fx.svc.SetDailyGoal(ctx, userID, -10), progress.ErrInvalidGoalTarget)

	// Today's activity snapshots the goal at bootstrap; changing the
	// profile goal afterwards must not retarget the running day.
	_, err := fx.svc.RecordWordView(ctx, userID, wordID)
	require.NoError(t, err)

	require.NoError(t, fx.svc.SetDailyGoal(ctx, userID, 100))

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 100, profile.DailyGoalXP)

	activity, err := fx.activities.Get(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Equal(t, defaultTestGoalXP, activity.DailyGoalTarget)

	// The dashboard reports the target the running day is measured
	// against, not the freshly configured one.
	dashboard, err := fx.svc.GetDashboard(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, defaultTestGoalXP, dashboard.DailyGoalXP)
}

func TestSetDailyGoalCreatesProfileForNewUser(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, fx.svc.SetDailyGoal(ctx, userID, 75))

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 75, profile.DailyGoalXP)
	assert.Equal(t, 0, profile.CurrentStreak, "setting a goal is not a learning action")

	_, err = fx.activities.Get(ctx, userID, fx.today())
	assert.Error(t, err, "no activity row may be bootstrapped")
}

func TestSwipesAndBookmarksAreEngagementOnly(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	assert.ErrorIs(t, fx.svc.RecordSwipe(ctx, userID, wordID, "up"), progress.ErrInvalidSwipeDirection)

	require.NoError(t, fx.svc.RecordSwipe(ctx, userID, wordID, progress.SwipeRight))
	require.NoError(t, fx.svc.RecordSwipe(ctx, userID, wordID, progress.SwipeRight))
	require.NoError(t, fx.svc.RecordSwipe(ctx, userID, wordID, progress.SwipeLeft))
	require.NoError(t, fx.svc.SetBookmark(ctx, userID, wordID, true))

	word, err := fx.words.Get(ctx, userID, wordID)
	require.NoError(t, err)
	assert.Equal(t, 2, word.SwipeRightCount)
	assert.Equal(t, 1, word.SwipeLeftCount)
	assert.True(t, word.Bookmarked)

	_, err = fx.profiles.Get(ctx, userID)
	assert.Error(t, err, "engagement signals must not bootstrap a profile")

	dayEvents, err := fx.ledger.ListForDay(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Empty(t, dayEvents)

	require.NoError(t, fx.svc.SetBookmark(ctx, userID, wordID, false))
	word, err = fx.words.Get(ctx, userID, wordID)
	require.NoError(t, err)
	assert.False(t, word.Bookmarked)
}

func TestSwipeOnUnknownWordIsANoOp(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.svc.RecordSwipe(ctx, uuid.New(), uuid.New(), progress.SwipeRight))
	assert.Equal(t, 0, fx.emitter.count())
}

func TestGetDashboardForNewUser(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	dashboard, err := fx.svc.GetDashboard(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, userID, dashboard.UserID)
	assert.Equal(t, int64(0), dashboard.TotalXP)
	assert.Equal(t, 0, dashboard.Level)
	assert.Equal(t, 0, dashboard.CurrentStreak)
	assert.Equal(t, defaultTestGoalXP, dashboard.DailyGoalXP)
	assert.Equal(t, fx.today(), dashboard.Today)
	assert.Empty(t, dashboard.WordCounts)
	assert.Equal(t, 0, dashboard.DueCount)
	assert.Equal(t, 0, dashboard.DaysActive)
}

func TestGetDashboardZeroesStaleStreak(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	today := fx.today()
	fx.seedProfile(t, userID, 5, 8, 0, today.Prev().Prev().Prev(), 1000)

	dashboard, err := fx.svc.GetDashboard(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 0, dashboard.CurrentStreak, "a streak last touched three days ago is broken")
	assert.Equal(t, 8, dashboard.BestStreak)
	assert.Equal(t, int64(1000), dashboard.TotalXP)
}

func TestGetDashboardKeepsStreakActiveThroughYesterday(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.seedProfile(t, userID, 5, 8, 0, fx.today().Prev(), 1000)

	dashboard, err := fx.svc.GetDashboard(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 5, dashboard.CurrentStreak)
}

func TestGetDashboardReflectsActivity(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	_, err := fx.svc.RecordWordView(ctx, userID, wordID)
	require.NoError(t, err)
	_, err = fx.svc.RecordSession(ctx, userID, time.Minute)
	require.NoError(t, err)

	dashboard, err := fx.svc.GetDashboard(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 1, dashboard.CurrentStreak)
	assert.Equal(t, 12, dashboard.TodayXP, "view award plus first-session bonus")
	assert.Equal(t, int64(12), dashboard.TotalXP)
	assert.Equal(t, 1, dashboard.WordCounts[domain.KnownStateNew])
	assert.Equal(t, 1, dashboard.DueCount, "a viewed but unreviewed word is due immediately")
	assert.Equal(t, 1, dashboard.DaysActive)
	assert.Equal(t, 1, dashboard.SessionCount)
	assert.Equal(t, int64(60000), dashboard.TotalTimeMs)
}

func TestLedgerReconcilesWithTotals(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	_, err := fx.svc.RecordRecallSuccess(ctx, userID, wordID)
	require.NoError(t, err)
	_, err = fx.svc.RecordProductionSuccess(ctx, userID, wordID)
	require.NoError(t, err)
	_, err = fx.svc.RecordWordView(ctx, userID, wordID)
	require.NoError(t, err)

	sum, err := fx.ledger.SumForDay(ctx, userID, fx.today())
	require.NoError(t, err)

	activity, err := fx.activities.Get(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Equal(t, activity.TotalXPEarned, sum)

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(sum), profile.TotalXP)
}

func TestNewDayBootstrapsAgain(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	wordID := fx.newCatalogWord()

	_, err := fx.svc.RecordRecallSuccess(ctx, userID, wordID)
	require.NoError(t, err)

	firstDay := fx.today()
	fx.clk.Advance(24 * time.Hour)

	result, err := fx.svc.RecordRecallSuccess(ctx, userID, wordID)
	require.NoError(t, err)

	profile, err := fx.profiles.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.CurrentStreak)
	assert.Equal(t, fx.today(), profile.LastActiveDate)
	assert.NotEqual(t, firstDay, fx.today())

	// Streak 2 scales recall to floor(10*1.1)=11, plus the new day's
	// first-session bonus.
	assert.Equal(t, 21, result.TotalXPAwarded)

	dayEvents, err := fx.ledger.ListForDay(ctx, userID, fx.today())
	require.NoError(t, err)
	assert.Len(t, dayEvents, 2)
}
