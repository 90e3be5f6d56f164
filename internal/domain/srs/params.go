package srs

import (
	"github.com/lexa-app/lexa-api/internal/domain"
)

// Params defines all configurable parameters for the spaced-repetition
// scheduler.
type Params struct {
	// Stability gains per successful outcome, before rarity weighting.
	// Production (active use) is stronger evidence than passive recall.
	RecallStabilityGain     float64
	ProductionStabilityGain float64

	// Rarity weighting: the gain is scaled by a weight that decays with
	// log10(rank) and is clamped to [RarityFloor, RarityCeil]. Frequency
	// buckets up to FrequencyBucketCap add FrequencyBoostStep each.
	RarityFloor        float64
	RarityCeil         float64
	FrequencyBoostStep float64
	FrequencyBucketCap int

	// Interval growth: next review is due in stability^IntervalExponent
	// days, capped at MaxIntervalDays.
	IntervalExponent float64
	MaxIntervalDays  int

	// Lapse handling: stability is multiplied by LapseRetention (partial
	// forgetting), never dropping below LapseStabilityFloor, and the word
	// is re-tested after RetestMinutes.
	LapseRetention      float64
	LapseStabilityFloor float64
	RetestMinutes       int

	// RecallAdvanceThresholds maps each state to the total success count at
	// which the word advances one state.
	RecallAdvanceThresholds map[domain.KnownState]int

	// ProductionMasteryThreshold is the production success count that
	// promotes a KNOWN word directly to MASTERED.
	ProductionMasteryThreshold int

	// Difficulty escalation by accumulated lapses.
	MediumLapseThreshold int
	HardLapseThreshold   int

	// MasteredStabilityFloor is the minimum stability granted when a word
	// is marked mastered outright.
	MasteredStabilityFloor float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the default in place.
type ParamsConfig struct {
	RecallStabilityGain     float64
	ProductionStabilityGain float64

	RarityFloor        float64
	RarityCeil         float64
	FrequencyBoostStep float64
	FrequencyBucketCap int

	IntervalExponent float64
	MaxIntervalDays  int

	LapseRetention      float64
	LapseStabilityFloor float64
	RetestMinutes       int

	LearningThreshold int
	KnownThreshold    int
	MasteredThreshold int

	ProductionMasteryThreshold int

	MediumLapseThreshold int
	HardLapseThreshold   int

	MasteredStabilityFloor float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		RecallStabilityGain:     1.0,
		ProductionStabilityGain: 1.8,

		RarityFloor:        0.5,
		RarityCeil:         1.2,
		FrequencyBoostStep: 0.04,
		FrequencyBucketCap: 5,

		IntervalExponent: 1.4,
		MaxIntervalDays:  365,

		LapseRetention:      0.5,
		LapseStabilityFloor: 0.1,
		RetestMinutes:       10,

		// Successes needed to leave each state: one success moves a new
		// word into learning, four to known, nine to mastered.
		RecallAdvanceThresholds: map[domain.KnownState]int{
			domain.KnownStateNew:      1,
			domain.KnownStateLearning: 4,
			domain.KnownStateKnown:    9,
		},

		ProductionMasteryThreshold: 3,

		MediumLapseThreshold: 1,
		HardLapseThreshold:   3,

		MasteredStabilityFloor: 8.0,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.RecallStabilityGain > 0 {
		params.RecallStabilityGain = config.RecallStabilityGain
	}
	if config.ProductionStabilityGain > 0 {
		params.ProductionStabilityGain = config.ProductionStabilityGain
	}

	if config.RarityFloor > 0 {
		params.RarityFloor = config.RarityFloor
	}
	if config.RarityCeil > 0 {
		params.RarityCeil = config.RarityCeil
	}
	if config.FrequencyBoostStep > 0 {
		params.FrequencyBoostStep = config.FrequencyBoostStep
	}
	if config.FrequencyBucketCap > 0 {
		params.FrequencyBucketCap = config.FrequencyBucketCap
	}

	if config.IntervalExponent > 0 {
		params.IntervalExponent = config.IntervalExponent
	}
	if config.MaxIntervalDays > 0 {
		params.MaxIntervalDays = config.MaxIntervalDays
	}

	if config.LapseRetention > 0 {
		params.LapseRetention = config.LapseRetention
	}
	if config.LapseStabilityFloor > 0 {
		params.LapseStabilityFloor = config.LapseStabilityFloor
	}
	if config.RetestMinutes > 0 {
		params.RetestMinutes = config.RetestMinutes
	}

	if config.LearningThreshold > 0 {
		params.RecallAdvanceThresholds[domain.KnownStateNew] = config.LearningThreshold
	}
	if config.KnownThreshold > 0 {
		params.RecallAdvanceThresholds[domain.KnownStateLearning] = config.KnownThreshold
	}
	if config.MasteredThreshold > 0 {
		params.RecallAdvanceThresholds[domain.KnownStateKnown] = config.MasteredThreshold
	}

	if config.ProductionMasteryThreshold > 0 {
		params.ProductionMasteryThreshold = config.ProductionMasteryThreshold
	}

	if config.MediumLapseThreshold > 0 {
		params.MediumLapseThreshold = config.MediumLapseThreshold
	}
	if config.HardLapseThreshold > 0 {
		params.HardLapseThreshold = config.HardLapseThreshold
	}

	if config.MasteredStabilityFloor > 0 {
		params.MasteredStabilityFloor = config.MasteredStabilityFloor
	}

	return params
}
