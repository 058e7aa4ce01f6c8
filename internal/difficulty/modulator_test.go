package difficulty

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

func TestComputeNextVectorExpertLevel10(t *testing.T) {
	m := NewModulator(nil)
	got := m.ComputeNextVector(telemetry.Expert, 10)

	// scaling = min(1 + 10*0.05, 1.5) = 1.5
	wantSpeed := 1.5 * 1.5
	wantTrap := 1.5 // min(1.0*1.5, 1.5)
	wantCheckpoint := math.Max(0.5, 0.7/1.5)

	if got.EnemySpeedMultiplier != wantSpeed {
		t.Errorf("enemy speed = %v, want %v", got.EnemySpeedMultiplier, wantSpeed)
	}
	if got.TrapDensity != wantTrap {
		t.Errorf("trap density = %v, want %v", got.TrapDensity, wantTrap)
	}
	if got.CheckpointFrequency != wantCheckpoint {
		t.Errorf("checkpoint frequency = %v, want %v", got.CheckpointFrequency, wantCheckpoint)
	}
	// Fields untouched by scaling stay at the tier base.
	if got.EnemySpawnRate != 1.5 || got.PlatformGapMultiplier != 1.3 || got.CoinFrequency != 0.7 {
		t.Errorf("unscaled fields changed: %+v", got)
	}
}

func TestComputeNextVectorUnknownLabelFallsBack(t *testing.T) {
	m := NewModulator(nil)
	got := m.ComputeNextVector(telemetry.Label("wizard"), 0)
	want := DefaultTiers()[telemetry.Intermediate]
	if got != want {
		t.Errorf("unknown label: got %+v, want intermediate base %+v", got, want)
	}
}

func TestNoviceCheckpointFrequencyNotReduced(t *testing.T) {
	m := NewModulator(nil)
	got := m.ComputeNextVector(telemetry.Novice, 10)
	if got.CheckpointFrequency != 1.5 {
		t.Errorf("checkpoint frequency = %v, want unchanged 1.5 for novice", got.CheckpointFrequency)
	}
}

func TestScalingCap(t *testing.T) {
	m := NewModulator(nil)
	at10 := m.ComputeNextVector(telemetry.Intermediate, 10)
	at50 := m.ComputeNextVector(telemetry.Intermediate, 50)
	if at10.EnemySpeedMultiplier != at50.EnemySpeedMultiplier {
		t.Errorf("scaling not capped: level 10 speed %v vs level 50 speed %v",
			at10.EnemySpeedMultiplier, at50.EnemySpeedMultiplier)
	}
}

func TestTickConvergesWithinTwoSeconds(t *testing.T) {
	m := NewModulator(nil)
	target := m.ComputeNextVector(telemetry.Expert, 3)

	if !m.Transitioning() {
		t.Fatal("transition should be in flight after ComputeNextVector")
	}

	// 60 fps for slightly over two seconds.
	for i := 0; i < 125; i++ {
		m.Tick(1.0 / 60.0)
	}

	if m.Transitioning() {
		t.Error("transition still in flight after 2s of ticks")
	}
	if m.Current() != target {
		t.Errorf("current = %+v, want exact target %+v", m.Current(), target)
	}
}

func TestTickMovesCurrentGradually(t *testing.T) {
	m := NewModulator(nil)
	start := m.Current()
	target := m.ComputeNextVector(telemetry.Expert, 0)

	m.Tick(0.5) // progress 0.25
	mid := m.Current()

	if mid == start || mid == target {
		t.Errorf("after partial tick current should be strictly between start and target, got %+v", mid)
	}
	if mid.EnemySpeedMultiplier <= start.EnemySpeedMultiplier ||
		mid.EnemySpeedMultiplier >= target.EnemySpeedMultiplier {
		t.Errorf("enemy speed %v not between %v and %v",
			mid.EnemySpeedMultiplier, start.EnemySpeedMultiplier, target.EnemySpeedMultiplier)
	}
}

func TestRetargetMidTransitionStartsFromCurrent(t *testing.T) {
	m := NewModulator(nil)
	m.ComputeNextVector(telemetry.Expert, 0)
	m.Tick(0.5)
	partway := m.Current()

	// Retarget before the first transition finished.
	m.ComputeNextVector(telemetry.Novice, 0)
	if m.Current() != partway {
		t.Errorf("retarget moved current: got %+v, want %+v", m.Current(), partway)
	}

	// A tiny step should move only slightly away from the partway point,
	// not restart from the old target.
	m.Tick(0.01)
	moved := math.Abs(m.Current().EnemySpeedMultiplier - partway.EnemySpeedMultiplier)
	if moved > 0.1 {
		t.Errorf("first step after retarget jumped by %v", moved)
	}
}

func TestAccessorsReadSmoothedCurrent(t *testing.T) {
	m := NewModulator(nil)
	m.ComputeNextVector(telemetry.Expert, 0)
	// Transition just started: accessors must still reflect the
	// intermediate starting point, not the expert target.
	if got := m.EnemySpeed(10); got != 10 {
		t.Errorf("EnemySpeed(10) = %v, want 10 before any tick", got)
	}
	if got := m.PlatformGap(100); got != 100 {
		t.Errorf("PlatformGap(100) = %v, want 100 before any tick", got)
	}
}
