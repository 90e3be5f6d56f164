package srs

import (
	"errors"
	"time"

	"github.com/lexa-app/lexa-api/internal/domain"
)

// Common errors
var (
	ErrNilProgress = errors.New("word progress cannot be nil")
)

// Scheduler defines the interface for spaced-repetition scheduling
// operations. Every method returns a new WordProgress snapshot; inputs are
// never mutated and, aside from a nil snapshot, the operations cannot fail.
type Scheduler interface {
	// OnRecallSuccess computes the next snapshot after a successful recall.
	OnRecallSuccess(progress *domain.WordProgress, meta ItemMeta, now time.Time) (*domain.WordProgress, error)

	// OnRecallFail computes the next snapshot after a failed recall.
	OnRecallFail(progress *domain.WordProgress, now time.Time) (*domain.WordProgress, error)

	// OnProductionSuccess computes the next snapshot after the learner
	// actively produced the word (typed or spoke it correctly).
	OnProductionSuccess(progress *domain.WordProgress, meta ItemMeta, now time.Time) (*domain.WordProgress, error)

	// MarkMastered promotes the word directly to MASTERED.
	MarkMastered(progress *domain.WordProgress, now time.Time) (*domain.WordProgress, error)
}

// defaultScheduler is the standard implementation of the Scheduler interface.
type defaultScheduler struct {
	params *Params
}

// NewDefaultScheduler creates a new scheduler with default parameters.
func NewDefaultScheduler() Scheduler {
	return &defaultScheduler{
		params: NewDefaultParams(),
	}
}

// NewSchedulerWithParams creates a new scheduler with custom parameters.
func NewSchedulerWithParams(params *Params) Scheduler {
	return &defaultScheduler{
		params: params,
	}
}

func (s *defaultScheduler) OnRecallSuccess(
	progress *domain.WordProgress,
	meta ItemMeta,
	now time.Time,
) (*domain.WordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}
	return calculateRecallSuccess(progress, meta, now, s.params), nil
}

func (s *defaultScheduler) OnRecallFail(
	progress *domain.WordProgress,
	now time.Time,
) (*domain.WordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}
	return calculateRecallFail(progress, now, s.params), nil
}

func (s *defaultScheduler) OnProductionSuccess(
	progress *domain.WordProgress,
	meta ItemMeta,
	now time.Time,
) (*domain.WordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}
	return calculateProductionSuccess(progress, meta, now, s.params), nil
}

func (s *defaultScheduler) MarkMastered(
	progress *domain.WordProgress,
	now time.Time,
) (*domain.WordProgress, error) {
	if progress == nil {
		return nil, ErrNilProgress
	}
	return calculateMarkMastered(progress, now, s.params), nil
}
