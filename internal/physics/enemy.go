package physics

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// Enemy is a walker that patrols its platform, turning around at the
// edges. Defeated enemies stay in the slice with Active cleared so
// indices remain stable over a level's lifetime.
type Enemy struct {
	X, Y      float64
	VelY      float64
	Speed     float64
	Direction float64
	Active    bool
}

// NewEnemy spawns a walker heading right.
func NewEnemy(spawn level.EnemySpawn) Enemy {
	return Enemy{
		X: spawn.X, Y: spawn.Y,
		Speed:     spawn.Speed,
		Direction: 1,
		Active:    true,
	}
}

// Rect returns the enemy's collision box.
func (e *Enemy) Rect() core.Rect {
	return core.NewRect(e.X, e.Y, level.EnemySize, level.EnemySize)
}

// Update advances one tick of walker physics: gravity, patrol
// movement, landing on platforms and turning at their edges.
func (e *Enemy) Update(gravity, maxFall float64, platforms []core.Rect) {
	if !e.Active {
		return
	}

	e.VelY += gravity
	if e.VelY > maxFall {
		e.VelY = maxFall
	}

	e.X += e.Speed * e.Direction
	e.Y += e.VelY

	for _, platform := range platforms {
		r := e.Rect()
		if !r.Intersects(platform) {
			continue
		}

		if e.VelY > 0 && r.Bottom() > platform.Y {
			e.Y = platform.Y - level.EnemySize
			e.VelY = 0
		}

		// Turn around at the platform edge
		r = e.Rect()
		if e.Direction > 0 && r.Right() > platform.Right() {
			e.Direction = -1
		} else if e.Direction < 0 && r.X < platform.X {
			e.Direction = 1
		}
	}
}
