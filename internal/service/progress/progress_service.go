package progress

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexa-app/lexa-api/internal/domain"
	"github.com/lexa-app/lexa-api/internal/domain/srs"
	"github.com/lexa-app/lexa-api/internal/domain/streak"
	"github.com/lexa-app/lexa-api/internal/domain/xp"
	"github.com/lexa-app/lexa-api/internal/events"
	"github.com/lexa-app/lexa-api/internal/platform/clock"
	"github.com/lexa-app/lexa-api/internal/platform/logger"
	"github.com/lexa-app/lexa-api/internal/store"
)

// activeDaysWindow bounds the streak lookback. One year of daily activity
// plus slack; a streak longer than the window would be truncated, and the
// longest milestone is 365 days.
const activeDaysWindow = 400

// wordAction enumerates the word-scoped learning actions.
type wordAction int

const (
	actionView wordAction = iota
	actionRecallSuccess
	actionRecallFail
	actionProductionSuccess
	actionMastered
)

// pendingAward is a flat bonus produced by the day bootstrap, settled with
// whatever action triggered it.
type pendingAward struct {
	source domain.XPSource
	baseXP int
}

// dayContext carries the locked profile and activity rows plus any bonuses
// the bootstrap produced, across the steps of one action transaction.
type dayContext struct {
	profile  *domain.UserProfile
	activity *domain.DailyActivity
	today    domain.DayKey
	bonuses  []pendingAward
}

// syncSnapshots holds the entity states captured inside a committed
// transaction for post-commit event emission.
type syncSnapshots struct {
	profile  *domain.UserProfile
	activity *domain.DailyActivity
	word     *domain.WordProgress
}

// progressService is the standard implementation of ProgressService.
type progressService struct {
	db            *sql.DB
	profileStore  store.ProfileStore
	activityStore store.DailyActivityStore
	progressStore store.WordProgressStore
	eventStore    store.XPEventStore
	catalog       store.WordCatalog
	scheduler     srs.Scheduler
	emitter       events.EventEmitter
	clock         clock.Clock
	location      *time.Location
	defaultGoalXP int
	logger        *slog.Logger
}

var _ ProgressService = (*progressService)(nil)

// NewProgressService creates the progress orchestrator. All collaborators
// are required; the location is the fixed reference timezone for deriving
// day keys.
func NewProgressService(
	db *sql.DB,
	profileStore store.ProfileStore,
	activityStore store.DailyActivityStore,
	progressStore store.WordProgressStore,
	eventStore store.XPEventStore,
	catalog store.WordCatalog,
	scheduler srs.Scheduler,
	emitter events.EventEmitter,
	clk clock.Clock,
	location *time.Location,
	defaultGoalXP int,
	logger *slog.Logger,
) ProgressService {
	if db == nil {
		panic("db cannot be nil")
	}
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if activityStore == nil {
		panic("activityStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if eventStore == nil {
		panic("eventStore cannot be nil")
	}
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if clk == nil {
		panic("clock cannot be nil")
	}
	if location == nil {
		location = time.UTC
	}
	if defaultGoalXP <= 0 {
		panic("defaultGoalXP must be greater than zero")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &progressService{
		db:            db,
		profileStore:  profileStore,
		activityStore: activityStore,
		progressStore: progressStore,
		eventStore:    eventStore,
		catalog:       catalog,
		scheduler:     scheduler,
		emitter:       emitter,
		clock:         clk,
		location:      location,
		defaultGoalXP: defaultGoalXP,
		logger:        logger.With("component", "progress_service"),
	}
}

// bootstrapDay ensures the profile and today's activity row exist and are
// locked for update. On the first action of a new day it recomputes the
// streak, consumes a freeze when one bridges a single missed day, and
// queues the milestone and first-session bonuses for settlement.
//
// Lock order is always profile then activity then word progress, so
// concurrent actions for the same user serialize instead of deadlocking.
func (s *progressService) bootstrapDay(
	ctx context.Context,
	tx *sql.Tx,
	userID uuid.UUID,
	now time.Time,
) (*dayContext, error) {
	profiles := s.profileStore.WithTx(tx)
	activities := s.activityStore.WithTx(tx)

	today := domain.NewDayKey(now, s.location)
	yesterday := today.Prev()

	profile, err := profiles.GetForUpdate(ctx, userID)
	if store.IsNotFoundError(err) {
		profile, err = domain.NewUserProfile(userID, s.defaultGoalXP, now)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize profile: %w", err)
		}
		if createErr := profiles.Create(ctx, profile); createErr != nil {
			if !store.IsDuplicateError(createErr) {
				return nil, createErr
			}
			// Lost the creation race; the winner's row is committed, so
			// lock and use it.
			profile, err = profiles.GetForUpdate(ctx, userID)
			if err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	activity, err := activities.GetForUpdate(ctx, userID, today)
	if err == nil {
		// Day already bootstrapped.
		return &dayContext{profile: profile, activity: activity, today: today}, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, err
	}

	// First action of the day: recompute the streak over the active-day
	// history.
	activeDays, err := activities.ListActiveDays(ctx, userID, activeDaysWindow)
	if err != nil {
		return nil, err
	}

	var newStreak int
	if profile.StreakFreezes > 0 && streak.ShouldConsumeFreeze(activeDays, today, yesterday) {
		profile.StreakFreezes--
		// The frozen day bridges the gap without counting as active: the
		// new streak is the run ending the day before the gap, plus today.
		dayBeforeGap := yesterday.Prev()
		newStreak = streak.CalculateStreak(activeDays, dayBeforeGap, dayBeforeGap.Prev(), streak.PreviousDay) + 1
	} else {
		days := make([]domain.DayKey, 0, len(activeDays)+1)
		days = append(days, activeDays...)
		days = append(days, today)
		newStreak = streak.CalculateStreak(days, today, yesterday, streak.PreviousDay)
	}

	var bonuses []pendingAward
	if m, ok := streak.CheckMilestone(newStreak); ok {
		bonuses = append(bonuses, pendingAward{
			source: domain.MilestoneSource(m.Days),
			baseXP: m.BonusXP,
		})
	}
	bonuses = append(bonuses, pendingAward{
		source: domain.XPSourceFirstSession,
		baseXP: xp.FirstSessionBonusXP,
	})

	profile.CurrentStreak = newStreak
	if newStreak > profile.BestStreak {
		profile.BestStreak = newStreak
	}
	profile.LastActiveDate = today
	profile.UpdatedAt = now

	activity, err = domain.NewDailyActivity(userID, today, profile.DailyGoalXP, now)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize daily activity: %w", err)
	}
	if createErr := activities.Create(ctx, activity); createErr != nil {
		if !store.IsDuplicateError(createErr) {
			return nil, createErr
		}
		// Another transaction bootstrapped the day first. Discard our
		// in-memory bootstrap and use the committed rows.
		activity, err = activities.GetForUpdate(ctx, userID, today)
		if err != nil {
			return nil, err
		}
		profile, err = profiles.GetForUpdate(ctx, userID)
		if err != nil {
			return nil, err
		}
		return &dayContext{profile: profile, activity: activity, today: today}, nil
	}

	return &dayContext{
		profile:  profile,
		activity: activity,
		today:    today,
		bonuses:  bonuses,
	}, nil
}

// settle applies the XP economy for one action and persists the daily
// activity, profile and ledger entries, in that order with the ledger last.
// actionBaseXP of zero means a non-rewarding action; queued bootstrap
// bonuses are settled either way.
func (s *progressService) settle(
	ctx context.Context,
	tx *sql.Tx,
	day *dayContext,
	actionSource domain.XPSource,
	actionBaseXP int,
	wordID *uuid.UUID,
	now time.Time,
) (*ActionResult, error) {
	profile := day.profile
	activity := day.activity

	prevLevel := xp.LevelFromXP(profile.TotalXP)

	result := &ActionResult{
		StreakMultiplier: xp.StreakMultiplier(profile.CurrentStreak),
	}

	var ledger []*domain.XPEvent
	totalAwarded := 0

	if actionBaseXP > 0 {
		amount, multiplier := xp.Award(actionBaseXP, profile.CurrentStreak)
		event, err := domain.NewXPEvent(
			profile.UserID, day.today, actionSource,
			actionBaseXP, multiplier, amount, wordID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to build xp event: %w", err)
		}
		ledger = append(ledger, event)
		totalAwarded += amount
		result.BaseXP = actionBaseXP
		result.StreakMultiplier = multiplier
	}

	for _, bonus := range day.bonuses {
		event, err := domain.NewXPEvent(
			profile.UserID, day.today, bonus.source,
			bonus.baseXP, 1.0, bonus.baseXP, nil, now)
		if err != nil {
			return nil, fmt.Errorf("failed to build bonus xp event: %w", err)
		}
		ledger = append(ledger, event)
		totalAwarded += bonus.baseXP
	}
	day.bonuses = nil

	activity.TotalXPEarned += totalAwarded
	profile.TotalXP += int64(totalAwarded)

	// Daily goal transition fires at most once per day; DailyGoalMet only
	// ever flips false to true. The bonus itself counts toward the day's
	// earned XP but cannot re-trigger the transition.
	if !activity.DailyGoalMet && activity.TotalXPEarned >= activity.DailyGoalTarget {
		activity.DailyGoalMet = true
		result.DailyGoalJustMet = true

		event, err := domain.NewXPEvent(
			profile.UserID, day.today, domain.XPSourceDailyGoalBonus,
			xp.DailyGoalBonusXP, 1.0, xp.DailyGoalBonusXP, nil, now)
		if err != nil {
			return nil, fmt.Errorf("failed to build goal bonus xp event: %w", err)
		}
		ledger = append(ledger, event)
		totalAwarded += xp.DailyGoalBonusXP
		activity.TotalXPEarned += xp.DailyGoalBonusXP
		profile.TotalXP += int64(xp.DailyGoalBonusXP)
	}

	activity.LastUpdatedAt = now
	profile.UpdatedAt = now

	if err := s.activityStore.WithTx(tx).Update(ctx, activity); err != nil {
		return nil, err
	}
	if err := s.profileStore.WithTx(tx).Update(ctx, profile); err != nil {
		return nil, err
	}
	eventStore := s.eventStore.WithTx(tx)
	for _, event := range ledger {
		if err := eventStore.Create(ctx, event); err != nil {
			return nil, err
		}
	}

	result.TotalXPAwarded = totalAwarded
	result.NewLifetimeXP = profile.TotalXP
	result.NewLevel = xp.LevelFromXP(profile.TotalXP)
	result.LeveledUp = result.NewLevel > prevLevel
	return result, nil
}

func (s *progressService) EnsureTodayExists(ctx context.Context, userID uuid.UUID) error {
	now := s.clock.Now()

	var snapshots syncSnapshots
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		day, err := s.bootstrapDay(ctx, tx, userID, now)
		if err != nil {
			return err
		}
		if _, err := s.settle(ctx, tx, day, "", 0, nil, now); err != nil {
			return err
		}
		snapshots = syncSnapshots{profile: day.profile, activity: day.activity}
		return nil
	})
	if err != nil {
		return err
	}

	s.emitSync(ctx, userID, snapshots)
	return nil
}

func (s *progressService) RecordWordView(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error) {
	return s.recordWordAction(ctx, userID, wordID, actionView)
}

func (s *progressService) RecordRecallSuccess(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error) {
	return s.recordWordAction(ctx, userID, wordID, actionRecallSuccess)
}

func (s *progressService) RecordRecallFail(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error) {
	return s.recordWordAction(ctx, userID, wordID, actionRecallFail)
}

func (s *progressService) RecordProductionSuccess(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error) {
	return s.recordWordAction(ctx, userID, wordID, actionProductionSuccess)
}

func (s *progressService) RecordWordMastered(ctx context.Context, userID, wordID uuid.UUID) (*ActionResult, error) {
	return s.recordWordAction(ctx, userID, wordID, actionMastered)
}

// recordWordAction is the shared write path for all word-scoped actions.
// A word the catalog does not know short-circuits as a no-op: nothing is
// recorded, no XP is awarded, and the call succeeds so clients can retry
// after the catalog syncs.
func (s *progressService) recordWordAction(
	ctx context.Context,
	userID, wordID uuid.UUID,
	action wordAction,
) (*ActionResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	meta, err := s.catalog.GetWordMeta(ctx, wordID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.WarnContext(ctx, "word missing from catalog, action not recorded",
				"user_id", userID,
				"word_id", wordID)
			return &ActionResult{StreakMultiplier: 1.0}, nil
		}
		return nil, fmt.Errorf("failed to load word metadata: %w", err)
	}
	itemMeta := srs.ItemMeta{Rank: meta.Rank, Frequency: meta.Frequency}

	now := s.clock.Now()

	var result *ActionResult
	var snapshots syncSnapshots

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		day, err := s.bootstrapDay(ctx, tx, userID, now)
		if err != nil {
			return err
		}

		wordProgress, err := s.loadOrCreateWordProgress(ctx, tx, userID, wordID, now)
		if err != nil {
			return err
		}
		prevState := wordProgress.KnownState

		var next *domain.WordProgress
		var source domain.XPSource
		baseXP := 0

		switch action {
		case actionView:
			wordProgress.ViewCount++
			wordProgress.UpdatedAt = now
			next = wordProgress
			day.activity.WordsViewed++
			source, baseXP = domain.XPSourceWordView, xp.BaseWordViewXP

		case actionRecallSuccess:
			next, err = s.scheduler.OnRecallSuccess(wordProgress, itemMeta, now)
			day.activity.RecallSuccessCount++
			source, baseXP = domain.XPSourceRecallSuccess, xp.BaseRecallSuccessXP

		case actionRecallFail:
			next, err = s.scheduler.OnRecallFail(wordProgress, now)
			day.activity.RecallFailCount++

		case actionProductionSuccess:
			next, err = s.scheduler.OnProductionSuccess(wordProgress, itemMeta, now)
			day.activity.PracticeSuccessCount++
			source, baseXP = domain.XPSourcePracticeSuccess, xp.BasePracticeSuccessXP

		case actionMastered:
			next, err = s.scheduler.MarkMastered(wordProgress, now)
			if prevState != domain.KnownStateMastered {
				source, baseXP = domain.XPSourceWordMastered, xp.BaseWordMasteredXP
			}

		default:
			return fmt.Errorf("unknown word action %d", action)
		}
		if err != nil {
			return err
		}

		if prevState != domain.KnownStateMastered && next.KnownState == domain.KnownStateMastered {
			day.activity.MasteredCount++
		}

		if err := s.progressStore.WithTx(tx).Update(ctx, next); err != nil {
			return err
		}

		var wordRef *uuid.UUID
		if baseXP > 0 {
			wordRef = &wordID
		}
		result, err = s.settle(ctx, tx, day, source, baseXP, wordRef, now)
		if err != nil {
			return err
		}

		snapshots = syncSnapshots{profile: day.profile, activity: day.activity, word: next}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitSync(ctx, userID, snapshots)
	return result, nil
}

func (s *progressService) RecordSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*ActionResult, error) {
	if duration < 0 {
		return nil, ErrInvalidDuration
	}

	now := s.clock.Now()

	var result *ActionResult
	var snapshots syncSnapshots

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		day, err := s.bootstrapDay(ctx, tx, userID, now)
		if err != nil {
			return err
		}

		day.activity.SessionCount++
		day.activity.TotalTimeMs += duration.Milliseconds()

		result, err = s.settle(ctx, tx, day, "", 0, nil, now)
		if err != nil {
			return err
		}

		snapshots = syncSnapshots{profile: day.profile, activity: day.activity}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitSync(ctx, userID, snapshots)
	return result, nil
}

func (s *progressService) SetDailyGoal(ctx context.Context, userID uuid.UUID, targetXP int) error {
	if targetXP <= 0 {
		return ErrInvalidGoalTarget
	}

	now := s.clock.Now()

	var snapshots syncSnapshots
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		profiles := s.profileStore.WithTx(tx)

		profile, err := profiles.GetForUpdate(ctx, userID)
		if store.IsNotFoundError(err) {
			profile, err = domain.NewUserProfile(userID, targetXP, now)
			if err != nil {
				return fmt.Errorf("failed to initialize profile: %w", err)
			}
			if createErr := profiles.Create(ctx, profile); createErr != nil {
				if !store.IsDuplicateError(createErr) {
					return createErr
				}
				profile, err = profiles.GetForUpdate(ctx, userID)
				if err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		profile.DailyGoalXP = targetXP
		profile.UpdatedAt = now
		if err := profiles.Update(ctx, profile); err != nil {
			return err
		}

		snapshots = syncSnapshots{profile: profile}
		return nil
	})
	if err != nil {
		return err
	}

	s.emitSync(ctx, userID, snapshots)
	return nil
}

func (s *progressService) RecordSwipe(ctx context.Context, userID, wordID uuid.UUID, direction SwipeDirection) error {
	if !direction.IsValid() {
		return ErrInvalidSwipeDirection
	}
	return s.updateEngagement(ctx, userID, wordID, func(wordProgress *domain.WordProgress) {
		if direction == SwipeRight {
			wordProgress.SwipeRightCount++
		} else {
			wordProgress.SwipeLeftCount++
		}
	})
}

func (s *progressService) SetBookmark(ctx context.Context, userID, wordID uuid.UUID, bookmarked bool) error {
	return s.updateEngagement(ctx, userID, wordID, func(wordProgress *domain.WordProgress) {
		wordProgress.Bookmarked = bookmarked
	})
}

// updateEngagement applies a pure-engagement mutation (swipes, bookmarks)
// to the word progress row. Engagement signals do not bootstrap the day,
// award XP or touch the streak.
func (s *progressService) updateEngagement(
	ctx context.Context,
	userID, wordID uuid.UUID,
	apply func(*domain.WordProgress),
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.catalog.GetWordMeta(ctx, wordID); err != nil {
		if store.IsNotFoundError(err) {
			log.WarnContext(ctx, "word missing from catalog, engagement not recorded",
				"user_id", userID,
				"word_id", wordID)
			return nil
		}
		return fmt.Errorf("failed to load word metadata: %w", err)
	}

	now := s.clock.Now()

	var snapshots syncSnapshots
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		wordProgress, err := s.loadOrCreateWordProgress(ctx, tx, userID, wordID, now)
		if err != nil {
			return err
		}

		apply(wordProgress)
		wordProgress.UpdatedAt = now

		if err := s.progressStore.WithTx(tx).Update(ctx, wordProgress); err != nil {
			return err
		}

		snapshots = syncSnapshots{word: wordProgress}
		return nil
	})
	if err != nil {
		return err
	}

	s.emitSync(ctx, userID, snapshots)
	return nil
}

// loadOrCreateWordProgress returns the locked word progress row, creating
// it on first interaction with the word.
func (s *progressService) loadOrCreateWordProgress(
	ctx context.Context,
	tx *sql.Tx,
	userID, wordID uuid.UUID,
	now time.Time,
) (*domain.WordProgress, error) {
	wordProgressStore := s.progressStore.WithTx(tx)

	wordProgress, err := wordProgressStore.GetForUpdate(ctx, userID, wordID)
	if err == nil {
		return wordProgress, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, err
	}

	wordProgress, err = domain.NewWordProgress(userID, wordID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize word progress: %w", err)
	}
	if createErr := wordProgressStore.Create(ctx, wordProgress); createErr != nil {
		if !store.IsDuplicateError(createErr) {
			return nil, createErr
		}
		return wordProgressStore.GetForUpdate(ctx, userID, wordID)
	}
	return wordProgress, nil
}

func (s *progressService) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	now := s.clock.Now()
	today := domain.NewDayKey(now, s.location)

	dashboard := &Dashboard{
		UserID:      userID,
		Today:       today,
		DailyGoalXP: s.defaultGoalXP,
		WordCounts:  map[domain.KnownState]int{},
	}

	profile, err := s.profileStore.Get(ctx, userID)
	if err != nil && !store.IsNotFoundError(err) {
		return nil, err
	}
	if profile != nil {
		dashboard.TotalXP = profile.TotalXP
		dashboard.BestStreak = profile.BestStreak
		dashboard.StreakFreezes = profile.StreakFreezes
		dashboard.DailyGoalXP = profile.DailyGoalXP

		// The stored streak is only current through the last bootstrap; a
		// fully missed day since then means the displayed streak is zero
		// until the next action either resumes or resets it.
		if profile.LastActiveDate == today || profile.LastActiveDate == today.Prev() {
			dashboard.CurrentStreak = profile.CurrentStreak
		}
	}

	dashboard.Level = xp.LevelFromXP(dashboard.TotalXP)
	dashboard.LevelProgress = xp.LevelProgress(dashboard.TotalXP)
	dashboard.XPToNextLevel = xp.XPToNextLevel(dashboard.TotalXP)

	activity, err := s.activityStore.Get(ctx, userID, today)
	if err != nil && !store.IsNotFoundError(err) {
		return nil, err
	}
	if activity != nil {
		dashboard.TodayXP = activity.TotalXPEarned
		dashboard.DailyGoalMet = activity.DailyGoalMet
		// Today runs against the target snapshotted at bootstrap; the
		// profile's goal may have changed since and applies from tomorrow.
		dashboard.DailyGoalXP = activity.DailyGoalTarget
	}

	distribution, err := s.progressStore.Distribution(ctx, userID)
	if err != nil {
		return nil, err
	}
	for state, count := range distribution {
		dashboard.WordCounts[state] = count
	}

	due, err := s.progressStore.CountDue(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	dashboard.DueCount = due

	totals, err := s.activityStore.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}
	dashboard.DaysActive = totals.DaysActive
	dashboard.SessionCount = totals.SessionCount
	dashboard.TotalTimeMs = totals.TotalTimeMs

	return dashboard, nil
}

// emitSync publishes post-commit sync events for the captured snapshots.
// Emission is best-effort and never affects the caller's result.
func (s *progressService) emitSync(ctx context.Context, userID uuid.UUID, snapshots syncSnapshots) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	emit := func(kind string, payload interface{}) {
		event, err := events.NewProgressSyncEvent(userID, kind, payload)
		if err != nil {
			log.WarnContext(ctx, "failed to build sync event",
				"event_kind", kind,
				"error", err)
			return
		}
		if err := s.emitter.EmitEvent(ctx, event); err != nil {
			log.WarnContext(ctx, "failed to emit sync event",
				"event_kind", kind,
				"error", err)
		}
	}

	if snapshots.profile != nil {
		emit(events.KindProfileUpdated, snapshots.profile)
	}
	if snapshots.activity != nil {
		emit(events.KindActivityUpdated, snapshots.activity)
	}
	if snapshots.word != nil {
		emit(events.KindWordProgressUpdated, snapshots.word)
	}
}
