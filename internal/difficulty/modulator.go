package difficulty

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

const (
	// levelScalingStep raises difficulty 5% per level within a tier.
	levelScalingStep = 0.05
	// levelScalingCap keeps per-level scaling at most 50% above base.
	levelScalingCap = 1.5
	// transitionRate makes a full transition take about two seconds.
	transitionRate = 0.5
	// maxTrapDensity bounds trap probability regardless of scaling.
	maxTrapDensity = 1.5
	// minCheckpointFrequency keeps at least sparse checkpoints for experts.
	minCheckpointFrequency = 0.5
)

// Modulator computes the difficulty vector for each upcoming level and
// smooths the transition from the previous parameters so gameplay feel
// changes gradually rather than at the level boundary.
type Modulator struct {
	tiers TierTable

	from     Vector // parameters at the moment the last transition began
	target   Vector
	current  Vector // smoothed values read by gameplay
	progress float64
}

// NewModulator creates a modulator over the given tier table, starting
// at the intermediate base parameters with no transition in flight.
// A nil table falls back to the built-in defaults.
func NewModulator(tiers TierTable) *Modulator {
	if tiers == nil {
		tiers = DefaultTiers()
	}
	start := tiers[telemetry.Intermediate]
	return &Modulator{
		tiers:    tiers,
		from:     start,
		target:   start,
		current:  start,
		progress: 1,
	}
}

// ComputeNextVector derives the parameter set for the upcoming level
// from the predicted skill label and begins a smooth transition toward
// it. The returned vector is the target; gameplay should keep reading
// Current while the transition runs.
func (m *Modulator) ComputeNextVector(label telemetry.Label, levelIndex int) Vector {
	base, ok := m.tiers[label]
	if !ok {
		base = m.tiers[telemetry.Intermediate]
	}

	scaling := math.Min(1+float64(levelIndex)*levelScalingStep, levelScalingCap)

	next := base
	next.EnemySpeedMultiplier *= scaling
	next.TrapDensity = math.Min(next.TrapDensity*scaling, maxTrapDensity)
	if label == telemetry.Expert {
		next.CheckpointFrequency = math.Max(minCheckpointFrequency, next.CheckpointFrequency/scaling)
	}

	// The transition starts from wherever the smoothed values are now,
	// not from the previous target.
	m.from = m.current
	m.target = next
	m.progress = 0

	log.Debug("difficulty target set",
		"skill", label,
		"level", levelIndex+1,
		"enemy_speed", next.EnemySpeedMultiplier,
		"spawn_rate", next.EnemySpawnRate,
		"gap", next.PlatformGapMultiplier,
		"coins", next.CoinFrequency,
		"traps", next.TrapDensity,
		"checkpoints", next.CheckpointFrequency)

	return next
}

// Tick advances the transition by dt seconds. Once progress reaches 1
// the current vector is snapped to the target exactly.
func (m *Modulator) Tick(dt float64) {
	if m.progress >= 1 {
		return
	}
	m.progress = math.Min(1, m.progress+dt*transitionRate)
	if m.progress >= 1 {
		m.from = m.target
		m.current = m.target
		return
	}
	m.current = m.from.lerpTo(m.target, m.progress)
}

// Current returns the smoothed parameter vector.
func (m *Modulator) Current() Vector {
	return m.current
}

// Target returns the vector the modulator is transitioning toward.
func (m *Modulator) Target() Vector {
	return m.target
}

// Transitioning reports whether a transition is still in flight.
func (m *Modulator) Transitioning() bool {
	return m.progress < 1
}

// EnemySpeed scales a base enemy speed by the smoothed multiplier.
func (m *Modulator) EnemySpeed(base float64) float64 {
	return base * m.current.EnemySpeedMultiplier
}

// SpawnRate scales a base spawn probability by the smoothed multiplier.
func (m *Modulator) SpawnRate(base float64) float64 {
	return base * m.current.EnemySpawnRate
}

// PlatformGap scales a base gap distance by the smoothed multiplier.
func (m *Modulator) PlatformGap(base float64) float64 {
	return base * m.current.PlatformGapMultiplier
}

// CoinProbability scales a base coin probability by the smoothed
// multiplier.
func (m *Modulator) CoinProbability(base float64) float64 {
	return base * m.current.CoinFrequency
}
