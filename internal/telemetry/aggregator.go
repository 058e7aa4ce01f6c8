package telemetry

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// edgeThreshold is the distance from a platform edge, in world units,
// within which a landing counts as precise.
const edgeThreshold = 20

// PlayerObservation is the per-tick player state reported by the physics
// collaborator.
type PlayerObservation struct {
	X, Y     float64
	VelX     float64
	VelY     float64 // negative = upward
	OnGround bool
	Rect     core.Rect
}

// WorldObservation is the per-tick world state reported by the physics
// collaborator. Coin and enemy counts are level-scoped: they are the
// number of collected/defeated entities in the current level, not running
// totals accumulated here.
type WorldObservation struct {
	Platforms       []core.Rect
	CoinsCollected  int
	EnemiesDefeated int
}

// Aggregator accumulates per-tick counters for the current level attempt.
// Reset begins a new attempt; Finalize produces the attempt's sample.
type Aggregator struct {
	jumps           int
	deaths          int
	coinsCollected  int
	enemiesDefeated int
	totalDistance   float64
	preciseLandings int

	lastPlayerX float64
	maxSpeed    float64
	airTicks    int
	groundTicks int

	// Edge-detection state
	wasOnGround bool
	wasAirborne bool
	primed      bool // first OnTick after Reset only seeds lastPlayerX
}

// NewAggregator creates an aggregator ready for a fresh level attempt.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// OnTick updates counters from the current tick's player and world state.
func (a *Aggregator) OnTick(player PlayerObservation, world WorldObservation) {
	// A jump is the rising edge of "airborne with upward velocity" coming
	// from a grounded frame. The previous-grounded flag keeps multiple
	// ticks of the same jump from counting more than once.
	if !player.OnGround && player.VelY < 0 && a.wasOnGround {
		a.jumps++
	}
	a.wasOnGround = player.OnGround

	// Horizontal displacement since last tick. The first tick after a
	// reset only seeds the reference position.
	if a.primed {
		a.totalDistance += core.AbsF(player.X - a.lastPlayerX)
	}
	a.lastPlayerX = player.X
	a.primed = true

	if speed := core.AbsF(player.VelX); speed > a.maxSpeed {
		a.maxSpeed = speed
	}

	if player.OnGround {
		a.groundTicks++
	} else {
		a.airTicks++
	}

	// Level-scoped counts, recomputed rather than accumulated.
	a.coinsCollected = world.CoinsCollected
	a.enemiesDefeated = world.EnemiesDefeated

	// Precise landing: airborne last tick, grounded now, within the edge
	// threshold of the landing platform. Counted at most once per landing.
	if player.OnGround && a.wasAirborne {
		for _, platform := range world.Platforms {
			if !player.Rect.Intersects(platform) {
				continue
			}
			center := player.Rect.CenterX()
			if core.AbsF(center-platform.X) < edgeThreshold ||
				core.AbsF(center-platform.Right()) < edgeThreshold {
				a.preciseLandings++
			}
			break
		}
	}
	a.wasAirborne = !player.OnGround
}

// RecordDeath increments the death counter. Other counters are untouched:
// deaths persist across respawns within the same attempt.
func (a *Aggregator) RecordDeath() {
	a.deaths++
}

// Deaths returns the number of deaths recorded this attempt.
func (a *Aggregator) Deaths() int {
	return a.deaths
}

// Jumps returns the number of jumps detected this attempt.
func (a *Aggregator) Jumps() int {
	return a.jumps
}

// CoinsCollected returns the current level-scoped coin count.
func (a *Aggregator) CoinsCollected() int {
	return a.coinsCollected
}

// Finalize computes derived ratios and produces the attempt's sample.
// The skill label is the local heuristic estimate; a trained classifier
// downstream may overwrite it.
func (a *Aggregator) Finalize(levelIndex int, completionTime float64) PerformanceSample {
	totalTicks := a.airTicks + a.groundTicks
	airTimeRatio := float64(a.airTicks) / float64(max(totalTicks, 1))
	completionSpeed := a.totalDistance / max(completionTime, 1)

	return PerformanceSample{
		Timestamp:       time.Now(),
		Level:           levelIndex,
		CompletionTime:  completionTime,
		Jumps:           a.jumps,
		Deaths:          a.deaths,
		CoinsCollected:  a.coinsCollected,
		EnemiesDefeated: a.enemiesDefeated,
		TotalDistance:   a.totalDistance,
		PreciseLandings: a.preciseLandings,
		MaxSpeed:        a.maxSpeed,
		AirTimeRatio:    airTimeRatio,
		CompletionSpeed: completionSpeed,
		Skill:           a.estimateSkill(completionTime),
	}
}

// estimateSkill is the per-attempt heuristic fallback: an additive point
// score over completion time, deaths, coins, and precise landings. It is
// deliberately distinct from the full-feature heuristic the classifier
// uses when untrained; the two tables score different inputs.
func (a *Aggregator) estimateSkill(completionTime float64) Label {
	score := 0

	switch {
	case completionTime < 30:
		score += 3
	case completionTime < 60:
		score += 2
	default:
		score += 1
	}

	switch {
	case a.deaths == 0:
		score += 3
	case a.deaths <= 2:
		score += 2
	default:
		score += 1
	}

	switch {
	case a.coinsCollected > 10:
		score += 2
	case a.coinsCollected > 5:
		score += 1
	}

	switch {
	case a.preciseLandings > 5:
		score += 2
	case a.preciseLandings > 2:
		score += 1
	}

	switch {
	case score >= 8:
		return Expert
	case score >= 5:
		return Intermediate
	default:
		return Novice
	}
}

// Reset zeroes all per-attempt counters and edge-detection flags.
// Called at the start of every new level attempt.
func (a *Aggregator) Reset() {
	*a = Aggregator{}
}
