// Package difficulty adjusts gameplay parameters based on predicted
// player skill. It owns the per-tier base table, progressive level
// scaling and the smooth transition between parameter sets.
package difficulty

import "github.com/vovakirdan/tui-platformer/internal/telemetry"

// Vector is one complete set of tunable gameplay parameters. All
// fields are positive multipliers applied on top of base game values.
type Vector struct {
	EnemySpeedMultiplier  float64 `yaml:"enemy_speed_multiplier"`
	EnemySpawnRate        float64 `yaml:"enemy_spawn_rate"`
	PlatformGapMultiplier float64 `yaml:"platform_gap_multiplier"`
	CoinFrequency         float64 `yaml:"coin_frequency"`
	TrapDensity           float64 `yaml:"trap_density"`
	CheckpointFrequency   float64 `yaml:"checkpoint_frequency"`
}

// lerpTo interpolates every field toward target by t in [0,1].
func (v Vector) lerpTo(target Vector, t float64) Vector {
	return Vector{
		EnemySpeedMultiplier:  lerp(v.EnemySpeedMultiplier, target.EnemySpeedMultiplier, t),
		EnemySpawnRate:        lerp(v.EnemySpawnRate, target.EnemySpawnRate, t),
		PlatformGapMultiplier: lerp(v.PlatformGapMultiplier, target.PlatformGapMultiplier, t),
		CoinFrequency:         lerp(v.CoinFrequency, target.CoinFrequency, t),
		TrapDensity:           lerp(v.TrapDensity, target.TrapDensity, t),
		CheckpointFrequency:   lerp(v.CheckpointFrequency, target.CheckpointFrequency, t),
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// TierTable maps each skill label to its hand-tuned base vector.
type TierTable map[telemetry.Label]Vector

// DefaultTiers returns the built-in base table. Novices get slow,
// sparse enemies and generous coins; experts get the opposite.
func DefaultTiers() TierTable {
	return TierTable{
		telemetry.Novice: {
			EnemySpeedMultiplier:  0.6,
			EnemySpawnRate:        0.5,
			PlatformGapMultiplier: 0.7,
			CoinFrequency:         1.5,
			TrapDensity:           0.3,
			CheckpointFrequency:   1.5,
		},
		telemetry.Intermediate: {
			EnemySpeedMultiplier:  1.0,
			EnemySpawnRate:        1.0,
			PlatformGapMultiplier: 1.0,
			CoinFrequency:         1.0,
			TrapDensity:           0.6,
			CheckpointFrequency:   1.0,
		},
		telemetry.Expert: {
			EnemySpeedMultiplier:  1.5,
			EnemySpawnRate:        1.5,
			PlatformGapMultiplier: 1.3,
			CoinFrequency:         0.7,
			TrapDensity:           1.0,
			CheckpointFrequency:   0.7,
		},
	}
}
