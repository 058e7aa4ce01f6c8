package skill

import "github.com/vovakirdan/tui-platformer/internal/telemetry"

// Heuristic estimates a skill tier from a full performance sample
// without a trained model. It is a wider point table than the one
// the telemetry aggregator applies at level completion; the two use
// different bonuses and thresholds and must stay separate.
func Heuristic(s telemetry.PerformanceSample) telemetry.Label {
	score := 0

	switch {
	case s.CompletionTime < 30:
		score += 3
	case s.CompletionTime < 60:
		score += 2
	default:
		score++
	}

	switch {
	case s.Deaths == 0:
		score += 3
	case s.Deaths <= 2:
		score += 2
	default:
		score++
	}

	switch {
	case s.CoinsCollected > 10:
		score += 2
	case s.CoinsCollected > 5:
		score++
	}

	switch {
	case s.EnemiesDefeated > 3:
		score += 2
	case s.EnemiesDefeated > 1:
		score++
	}

	switch {
	case s.CompletionSpeed > 100:
		score += 2
	case s.CompletionSpeed > 50:
		score++
	}

	switch {
	case score >= 10:
		return telemetry.Expert
	case score >= 6:
		return telemetry.Intermediate
	default:
		return telemetry.Novice
	}
}
