package skill

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

func TestFitScalerMeanAndStd(t *testing.T) {
	rows := [][]float64{
		{2, 10},
		{4, 10},
		{6, 10},
	}
	s, err := FitScaler(rows)
	if err != nil {
		t.Fatalf("FitScaler: %v", err)
	}
	if s.Mean[0] != 4 {
		t.Errorf("mean[0] = %v, want 4", s.Mean[0])
	}
	wantStd := math.Sqrt(8.0 / 3.0)
	if math.Abs(s.Std[0]-wantStd) > 1e-12 {
		t.Errorf("std[0] = %v, want %v", s.Std[0], wantStd)
	}
	// Constant column: std substituted with 1 so transform yields 0.
	if s.Std[1] != 1 {
		t.Errorf("std[1] = %v, want 1 for a constant feature", s.Std[1])
	}
	got := s.Transform([]float64{4, 10})
	if got[0] != 0 || got[1] != 0 {
		t.Errorf("Transform(mean row) = %v, want zeros", got)
	}
}

func TestFitScalerEmpty(t *testing.T) {
	if _, err := FitScaler(nil); err == nil {
		t.Fatal("FitScaler(nil) should fail")
	}
}

func TestHeuristicFullTable(t *testing.T) {
	cases := []struct {
		name   string
		sample telemetry.PerformanceSample
		want   telemetry.Label
	}{
		{
			// 3 (time) + 3 (deaths) + 2 (coins) + 2 (enemies) + 2 (speed) = 12
			name: "dominant run",
			sample: telemetry.PerformanceSample{
				CompletionTime: 20, Deaths: 0, CoinsCollected: 12,
				EnemiesDefeated: 5, CompletionSpeed: 150,
			},
			want: telemetry.Expert,
		},
		{
			// 3 + 3 + 2 + 1 + 1 = 10, exactly at the expert threshold
			name: "threshold expert",
			sample: telemetry.PerformanceSample{
				CompletionTime: 25, Deaths: 0, CoinsCollected: 11,
				EnemiesDefeated: 2, CompletionSpeed: 60,
			},
			want: telemetry.Expert,
		},
		{
			// 2 + 2 + 1 + 1 = 6, exactly at the intermediate threshold
			name: "threshold intermediate",
			sample: telemetry.PerformanceSample{
				CompletionTime: 45, Deaths: 2, CoinsCollected: 6,
				EnemiesDefeated: 2,
			},
			want: telemetry.Intermediate,
		},
		{
			// 1 + 1 = 2
			name: "struggling run",
			sample: telemetry.PerformanceSample{
				CompletionTime: 120, Deaths: 6,
			},
			want: telemetry.Novice,
		},
	}
	for _, tc := range cases {
		if got := Heuristic(tc.sample); got != tc.want {
			t.Errorf("%s: Heuristic = %q, want %q", tc.name, got, tc.want)
		}
	}
}
