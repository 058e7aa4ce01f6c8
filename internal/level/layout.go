// Package level builds level layouts: hand-authored tutorial levels
// for the first few indices, chunk-based procedural generation after
// that. All geometry is produced in world units; rendering decides how
// to project it onto the terminal.
package level

import "github.com/vovakirdan/tui-platformer/internal/core"

// Entity dimensions in world units.
const (
	CoinSize    = 20
	EnemySize   = 32
	GoalWidth   = 50
	GoalHeight  = 100
	SpikeWidth  = 32
	SpikeHeight = 16

	// baseEnemySpeed is multiplied by the difficulty vector's
	// enemy speed multiplier at spawn time.
	baseEnemySpeed = 2
)

// CoinSpawn places one coin.
type CoinSpawn struct {
	X, Y float64
}

// EnemySpawn places one walker enemy with its patrol speed already
// scaled by difficulty.
type EnemySpawn struct {
	X, Y  float64
	Speed float64
}

// Checkpoint marks a respawn point standing on a platform.
type Checkpoint struct {
	X, Y float64
}

// Layout is a fully generated level.
type Layout struct {
	Index  int
	Width  float64
	Height float64

	SpawnX, SpawnY float64

	Platforms   []core.Rect
	Coins       []CoinSpawn
	Enemies     []EnemySpawn
	Spikes      []core.Rect
	Checkpoints []Checkpoint
	Goal        core.Rect
}

// PlatformAt returns the topmost platform whose horizontal span
// contains x, or false if none does.
func (l *Layout) PlatformAt(x float64) (core.Rect, bool) {
	var best core.Rect
	found := false
	for _, p := range l.Platforms {
		if x < p.X || x >= p.Right() {
			continue
		}
		if !found || p.Y < best.Y {
			best = p
			found = true
		}
	}
	return best, found
}
