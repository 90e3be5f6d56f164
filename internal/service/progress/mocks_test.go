package progress_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lexa-app/lexa-api/internal/domain"
	"github.com/lexa-app/lexa-api/internal/domain/srs"
	"github.com/lexa-app/lexa-api/internal/events"
	"github.com/lexa-app/lexa-api/internal/platform/clock"
	"github.com/lexa-app/lexa-api/internal/service/progress"
	"github.com/lexa-app/lexa-api/internal/store"
)

// The fakes below are in-memory implementations of the store interfaces.
// They ignore transactions (WithTx returns the same instance); transaction
// begin/commit mechanics are covered by the store package tests.

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]domain.UserProfile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]domain.UserProfile)}
}

func (f *fakeProfileStore) Create(_ context.Context, profile *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.UserID]; ok {
		return store.ErrProfileExists
	}
	f.profiles[profile.UserID] = *profile
	return nil
}

func (f *fakeProfileStore) Get(_ context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	copied := profile
	return &copied, nil
}

func (f *fakeProfileStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	return f.Get(ctx, userID)
}

func (f *fakeProfileStore) Update(_ context.Context, profile *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.UserID]; !ok {
		return store.ErrProfileNotFound
	}
	f.profiles[profile.UserID] = *profile
	return nil
}

func (f *fakeProfileStore) WithTx(*sql.Tx) store.ProfileStore { return f }

type activityKey struct {
	userID uuid.UUID
	date   domain.DayKey
}

type fakeActivityStore struct {
	mu   sync.Mutex
	rows map[activityKey]domain.DailyActivity
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{rows: make(map[activityKey]domain.DailyActivity)}
}

func (f *fakeActivityStore) Create(_ context.Context, activity *domain.DailyActivity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := activityKey{activity.UserID, activity.Date}
	if _, ok := f.rows[key]; ok {
		return store.ErrActivityExists
	}
	f.rows[key] = *activity
	return nil
}

func (f *fakeActivityStore) Get(_ context.Context, userID uuid.UUID, date domain.DayKey) (*domain.DailyActivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	activity, ok := f.rows[activityKey{userID, date}]
	if !ok {
		return nil, store.ErrActivityNotFound
	}
	copied := activity
	return &copied, nil
}

func (f *fakeActivityStore) GetForUpdate(ctx context.Context, userID uuid.UUID, date domain.DayKey) (*domain.DailyActivity, error) {
	return f.Get(ctx, userID, date)
}

func (f *fakeActivityStore) Update(_ context.Context, activity *domain.DailyActivity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := activityKey{activity.UserID, activity.Date}
	if _, ok := f.rows[key]; !ok {
		return store.ErrActivityNotFound
	}
	f.rows[key] = *activity
	return nil
}

func (f *fakeActivityStore) ListActiveDays(_ context.Context, userID uuid.UUID, limit int) ([]domain.DayKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var days []domain.DayKey
	for key := range f.rows {
		if key.userID == userID {
			days = append(days, key.date)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	if len(days) > limit {
		days = days[:limit]
	}
	return days, nil
}

func (f *fakeActivityStore) Totals(_ context.Context, userID uuid.UUID) (*store.ActivityTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := &store.ActivityTotals{}
	for key, activity := range f.rows {
		if key.userID != userID {
			continue
		}
		totals.DaysActive++
		totals.SessionCount += activity.SessionCount
		totals.TotalTimeMs += activity.TotalTimeMs
	}
	return totals, nil
}

func (f *fakeActivityStore) WithTx(*sql.Tx) store.DailyActivityStore { return f }

type wordKey struct {
	userID uuid.UUID
	wordID uuid.UUID
}

type fakeWordProgressStore struct {
	mu   sync.Mutex
	rows map[wordKey]domain.WordProgress
}

func newFakeWordProgressStore() *fakeWordProgressStore {
	return &fakeWordProgressStore{rows: make(map[wordKey]domain.WordProgress)}
}

func (f *fakeWordProgressStore) Create(_ context.Context, wordProgress *domain.WordProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := wordKey{wordProgress.UserID, wordProgress.WordID}
	if _, ok := f.rows[key]; ok {
		return store.ErrWordProgressExists
	}
	f.rows[key] = *wordProgress
	return nil
}

func (f *fakeWordProgressStore) Get(_ context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wordProgress, ok := f.rows[wordKey{userID, wordID}]
	if !ok {
		return nil, store.ErrWordProgressNotFound
	}
	copied := wordProgress
	return &copied, nil
}

func (f *fakeWordProgressStore) GetForUpdate(ctx context.Context, userID, wordID uuid.UUID) (*domain.WordProgress, error) {
	return f.Get(ctx, userID, wordID)
}

func (f *fakeWordProgressStore) Update(_ context.Context, wordProgress *domain.WordProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := wordKey{wordProgress.UserID, wordProgress.WordID}
	if _, ok := f.rows[key]; !ok {
		return store.ErrWordProgressNotFound
	}
	f.rows[key] = *wordProgress
	return nil
}

func (f *fakeWordProgressStore) Distribution(_ context.Context, userID uuid.UUID) (map[domain.KnownState]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	distribution := make(map[domain.KnownState]int)
	for key, wordProgress := range f.rows {
		if key.userID == userID {
			distribution[wordProgress.KnownState]++
		}
	}
	return distribution, nil
}

func (f *fakeWordProgressStore) CountDue(_ context.Context, userID uuid.UUID, now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for key, wordProgress := range f.rows {
		if key.userID == userID && !wordProgress.NextReview.After(now) {
			count++
		}
	}
	return count, nil
}

func (f *fakeWordProgressStore) WithTx(*sql.Tx) store.WordProgressStore { return f }

type fakeXPEventStore struct {
	mu     sync.Mutex
	events []domain.XPEvent
}

func newFakeXPEventStore() *fakeXPEventStore {
	return &fakeXPEventStore{}
}

func (f *fakeXPEventStore) Create(_ context.Context, event *domain.XPEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeXPEventStore) ListForDay(_ context.Context, userID uuid.UUID, date domain.DayKey) ([]*domain.XPEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.XPEvent
	for i := range f.events {
		if f.events[i].UserID == userID && f.events[i].Date == date {
			copied := f.events[i]
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeXPEventStore) SumForDay(ctx context.Context, userID uuid.UUID, date domain.DayKey) (int, error) {
	dayEvents, err := f.ListForDay(ctx, userID, date)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, event := range dayEvents {
		sum += event.Amount
	}
	return sum, nil
}

func (f *fakeXPEventStore) WithTx(*sql.Tx) store.XPEventStore { return f }

type fakeWordCatalog struct {
	mu    sync.Mutex
	words map[uuid.UUID]store.WordMeta
}

func newFakeWordCatalog() *fakeWordCatalog {
	return &fakeWordCatalog{words: make(map[uuid.UUID]store.WordMeta)}
}

func (f *fakeWordCatalog) addWord(wordID uuid.UUID, rank, frequency int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.words[wordID] = store.WordMeta{Rank: rank, Frequency: frequency}
}

func (f *fakeWordCatalog) GetWordMeta(_ context.Context, wordID uuid.UUID) (*store.WordMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	meta, ok := f.words[wordID]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	copied := meta
	return &copied, nil
}

// recordingEmitter captures emitted sync events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.ProgressSyncEvent
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.ProgressSyncEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *recordingEmitter) kinds() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	kinds := make([]string, 0, len(e.events))
	for _, event := range e.events {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

func (e *recordingEmitter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

const defaultTestGoalXP = 50

// fixture wires a progress service against the in-memory fakes, a frozen
// clock and a mock database whose transactions always succeed.
type fixture struct {
	svc        progress.ProgressService
	profiles   *fakeProfileStore
	activities *fakeActivityStore
	words      *fakeWordProgressStore
	ledger     *fakeXPEventStore
	catalog    *fakeWordCatalog
	emitter    *recordingEmitter
	clk        *clock.FrozenClock
}

// testStart is noon UTC so that clock adjustments within a test never cross
// a day boundary unintentionally.
var testStart = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newFixture(t require.TestingT) *fixture {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	// The fakes ignore the transaction handle, so the mock only needs to
	// accept begin/commit/rollback in whatever order the scenarios produce.
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 100; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	fx := &fixture{
		profiles:   newFakeProfileStore(),
		activities: newFakeActivityStore(),
		words:      newFakeWordProgressStore(),
		ledger:     newFakeXPEventStore(),
		catalog:    newFakeWordCatalog(),
		emitter:    &recordingEmitter{},
		clk:        clock.NewFrozen(testStart),
	}

	fx.svc = progress.NewProgressService(
		db,
		fx.profiles,
		fx.activities,
		fx.words,
		fx.ledger,
		fx.catalog,
		srs.NewDefaultScheduler(),
		fx.emitter,
		fx.clk,
		time.UTC,
		defaultTestGoalXP,
		nil,
	)
	return fx
}

// today returns the day key for the fixture clock's current instant.
func (fx *fixture) today() domain.DayKey {
	return domain.NewDayKey(fx.clk.Now(), time.UTC)
}

// newCatalogWord registers a common word and returns its ID.
func (fx *fixture) newCatalogWord() uuid.UUID {
	wordID := uuid.New()
	fx.catalog.addWord(wordID, 100, 3)
	return wordID
}

// seedActivity inserts a minimal activity row marking the day active.
func (fx *fixture) seedActivity(t require.TestingT, userID uuid.UUID, date domain.DayKey) {
	activity, err := domain.NewDailyActivity(userID, date, defaultTestGoalXP, testStart)
	require.NoError(t, err)
	require.NoError(t, fx.activities.Create(context.Background(), activity))
}

// seedProfile inserts a profile with the given streak state as of lastActive.
func (fx *fixture) seedProfile(t require.TestingT, userID uuid.UUID, streakLen, best, freezes int, lastActive domain.DayKey, totalXP int64) {
	profile := &domain.UserProfile{
		UserID:         userID,
		TotalXP:        totalXP,
		CurrentStreak:  streakLen,
		BestStreak:     best,
		StreakFreezes:  freezes,
		LastActiveDate: lastActive,
		DailyGoalXP:    defaultTestGoalXP,
		CreatedAt:      testStart.AddDate(0, -1, 0),
		UpdatedAt:      testStart.AddDate(0, -1, 0),
	}
	require.NoError(t, fx.profiles.Create(context.Background(), profile))
}
