// Package telemetry aggregates raw per-tick player and world state into
// one performance sample per level attempt. The samples are the training
// data for skill classification.
package telemetry

import (
	"math"
	"time"
)

// Label is a skill tier assigned to a level attempt.
type Label string

const (
	Novice       Label = "novice"
	Intermediate Label = "intermediate"
	Expert       Label = "expert"
)

// Labels lists all tiers in difficulty order.
var Labels = []Label{Novice, Intermediate, Expert}

// Valid reports whether the label is one of the three known tiers.
func (l Label) Valid() bool {
	return l == Novice || l == Intermediate || l == Expert
}

// FeatureCount is the fixed length of a sample's feature vector.
const FeatureCount = 10

// PerformanceSample is the finalized record of one completed level attempt.
// Immutable once created; the append-only unit of the history store.
type PerformanceSample struct {
	Timestamp       time.Time
	Level           int
	CompletionTime  float64 // seconds
	Jumps           int
	Deaths          int
	CoinsCollected  int
	EnemiesDefeated int
	TotalDistance   float64
	PreciseLandings int
	MaxSpeed        float64
	AirTimeRatio    float64
	CompletionSpeed float64
	Skill           Label
}

// Features returns the sample's classifier feature vector in fixed order:
// completion_time, jumps, deaths, coins_collected, enemies_defeated,
// total_distance, precise_landings, max_speed, air_time_ratio,
// completion_speed. Non-finite values are substituted with zero.
func (s PerformanceSample) Features() [FeatureCount]float64 {
	raw := [FeatureCount]float64{
		s.CompletionTime,
		float64(s.Jumps),
		float64(s.Deaths),
		float64(s.CoinsCollected),
		float64(s.EnemiesDefeated),
		s.TotalDistance,
		float64(s.PreciseLandings),
		s.MaxSpeed,
		s.AirTimeRatio,
		s.CompletionSpeed,
	}
	for i, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			raw[i] = 0
		}
	}
	return raw
}
