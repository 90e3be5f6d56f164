package srs

import (
	"math"
	"time"

	"github.com/lexa-app/lexa-api/internal/domain"
)

// ItemMeta is the vocabulary-catalog metadata consumed by the scheduler.
// Rank is the popularity rank (lower = more common); Frequency is the
// corpus frequency bucket (higher = more common).
type ItemMeta struct {
	Rank      int
	Frequency int
}

// rarityWeight scales stability gains by how common a word is. Frequent
// words consolidate faster; rare words gain less per success. The weight
// decays with log10(rank) and is clamped so no word gains nothing or runs
// away.
func rarityWeight(meta ItemMeta, params *Params) float64 {
	rank := meta.Rank
	if rank < 1 {
		rank = 1
	}

	weight := 1.15 - 0.1*math.Log10(float64(rank))

	bucket := meta.Frequency
	if bucket < 0 {
		bucket = 0
	}
	if bucket > params.FrequencyBucketCap {
		bucket = params.FrequencyBucketCap
	}
	weight *= 1 + params.FrequencyBoostStep*float64(bucket)

	if weight < params.RarityFloor {
		return params.RarityFloor
	}
	if weight > params.RarityCeil {
		return params.RarityCeil
	}
	return weight
}

// reviewIntervalDays converts memory stability into a review backoff.
// Growth is super-linear (stability^IntervalExponent), capped at
// MaxIntervalDays and never below one day.
func reviewIntervalDays(stability float64, params *Params) int {
	if stability <= 0 {
		return 1
	}

	days := int(math.Ceil(math.Pow(stability, params.IntervalExponent)))
	if days < 1 {
		days = 1
	}
	if days > params.MaxIntervalDays {
		days = params.MaxIntervalDays
	}
	return days
}

// nextDifficulty escalates difficulty with accumulated lapses. Difficulty
// only ever moves toward HARD here; it never eases back down.
func nextDifficulty(current domain.DifficultyState, lapses int, params *Params) domain.DifficultyState {
	if lapses >= params.HardLapseThreshold {
		return domain.DifficultyHard
	}
	if lapses >= params.MediumLapseThreshold && current != domain.DifficultyHard {
		return domain.DifficultyMedium
	}
	return current
}

// clone copies a WordProgress snapshot so the scheduler can return a new
// value without mutating the caller's.
func clone(p *domain.WordProgress) *domain.WordProgress {
	copied := *p
	return &copied
}

// calculateRecallSuccess produces the next snapshot after a successful
// passive recall: stability grows by the rarity-weighted gain, the known
// state advances once its success threshold is met, and the next review
// backs off with the new stability. No counters are cleared.
func calculateRecallSuccess(
	progress *domain.WordProgress,
	meta ItemMeta,
	now time.Time,
	params *Params,
) *domain.WordProgress {
	next := clone(progress)

	next.RecallSuccessCount++
	next.Stability += params.RecallStabilityGain * rarityWeight(meta, params)

	threshold, ok := params.RecallAdvanceThresholds[next.KnownState]
	if ok && next.RecallSuccessCount+next.ProductionSuccessCount >= threshold {
		next.KnownState = next.KnownState.Advance()
	}

	next.LastReview = now
	next.NextReview = now.AddDate(0, 0, reviewIntervalDays(next.Stability, params))
	next.UpdatedAt = now

	return next
}

// calculateRecallFail produces the next snapshot after a failed recall: the
// lapse count grows, the known state regresses one step (never below NEW),
// stability collapses to a floor proportional to its previous value, the
// word is re-tested shortly, and difficulty escalates once lapses pass the
// configured thresholds.
func calculateRecallFail(
	progress *domain.WordProgress,
	now time.Time,
	params *Params,
) *domain.WordProgress {
	next := clone(progress)

	next.RecallFailCount++
	next.LapsesCount++
	next.KnownState = next.KnownState.Regress()
	next.Stability *= params.LapseRetention
	if next.Stability < params.LapseStabilityFloor {
		next.Stability = params.LapseStabilityFloor
	}
	next.DifficultyState = nextDifficulty(next.DifficultyState, next.LapsesCount, params)

	next.LastReview = now
	next.NextReview = now.Add(time.Duration(params.RetestMinutes) * time.Minute)
	next.UpdatedAt = now

	return next
}

// calculateProductionSuccess mirrors calculateRecallSuccess with a larger
// stability gain, and additionally lets accumulated production successes
// promote a KNOWN word straight to MASTERED: producing a word unprompted is
// stronger evidence of mastery than recognizing it.
func calculateProductionSuccess(
	progress *domain.WordProgress,
	meta ItemMeta,
	now time.Time,
	params *Params,
) *domain.WordProgress {
	next := clone(progress)

	next.ProductionSuccessCount++
	next.Stability += params.ProductionStabilityGain * rarityWeight(meta, params)

	if next.KnownState == domain.KnownStateKnown &&
		next.ProductionSuccessCount >= params.ProductionMasteryThreshold {
		next.KnownState = domain.KnownStateMastered
	} else {
		threshold, ok := params.RecallAdvanceThresholds[next.KnownState]
		if ok && next.RecallSuccessCount+next.ProductionSuccessCount >= threshold {
			next.KnownState = next.KnownState.Advance()
		}
	}

	next.LastReview = now
	next.NextReview = now.AddDate(0, 0, reviewIntervalDays(next.Stability, params))
	next.UpdatedAt = now

	return next
}

// calculateMarkMastered promotes a word directly to MASTERED, e.g. when the
// learner flags it as already known. Stability is raised to at least the
// mastered floor so the review backoff matches the new state.
func calculateMarkMastered(
	progress *domain.WordProgress,
	now time.Time,
	params *Params,
) *domain.WordProgress {
	next := clone(progress)

	next.KnownState = domain.KnownStateMastered
	if next.Stability < params.MasteredStabilityFloor {
		next.Stability = params.MasteredStabilityFloor
	}

	next.NextReview = now.AddDate(0, 0, reviewIntervalDays(next.Stability, params))
	next.UpdatedAt = now

	return next
}
