package physics

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// fallMargin is how far below the level a player may drop before the
// fall counts as a death.
const fallMargin = 100

// Coin is a collectible with a stable slot; collected coins flip
// Active off instead of being removed.
type Coin struct {
	X, Y   float64
	Active bool
}

// StepResult reports what happened during one world tick.
type StepResult struct {
	Died        bool
	ReachedGoal bool
	StompBounce bool
}

// World simulates one level: the player, its enemies and coins, spike
// traps, checkpoints and the goal.
type World struct {
	Layout  level.Layout
	Player  *Player
	Coins   []Coin
	Enemies []Enemy

	CoinsCollected  int
	EnemiesDefeated int

	respawnX, respawnY float64
	nextCheckpoint     int

	phys config.PhysicsConfig
	ctl  config.PlayerConfig
}

// NewWorld builds the simulation for a layout. The player starts at
// the layout's spawn point, which is also the initial respawn point.
func NewWorld(cfg config.GameConfig, layout level.Layout) *World {
	w := &World{
		Layout:   layout,
		Player:   NewPlayer(cfg.Physics, cfg.Player, layout.SpawnX, layout.SpawnY),
		respawnX: layout.SpawnX,
		respawnY: layout.SpawnY,
		phys:     cfg.Physics,
		ctl:      cfg.Player,
	}
	for _, c := range layout.Coins {
		w.Coins = append(w.Coins, Coin{X: c.X, Y: c.Y, Active: true})
	}
	for _, e := range layout.Enemies {
		w.Enemies = append(w.Enemies, NewEnemy(e))
	}
	return w
}

// Step advances the world one tick with the given input.
func (w *World) Step(in core.InputFrame) StepResult {
	var result StepResult

	w.Player.HandleInput(in)
	w.Player.Update(w.Layout.Platforms)

	for i := range w.Enemies {
		w.Enemies[i].Update(w.phys.Gravity, w.phys.MaxFallSpeed, w.Layout.Platforms)
	}

	playerRect := w.Player.Rect()

	// Coin pickups
	for i := range w.Coins {
		if !w.Coins[i].Active {
			continue
		}
		coinRect := core.NewRect(w.Coins[i].X, w.Coins[i].Y, level.CoinSize, level.CoinSize)
		if playerRect.Intersects(coinRect) {
			w.Coins[i].Active = false
			w.CoinsCollected++
		}
	}

	// Enemy contact: landing on top defeats the enemy and bounces the
	// player, anything else is a death.
	for i := range w.Enemies {
		e := &w.Enemies[i]
		if !e.Active {
			continue
		}
		if !playerRect.Intersects(e.Rect()) {
			continue
		}
		if w.Player.VelY > 0 && playerRect.Bottom() < e.Rect().CenterY() {
			e.Active = false
			w.EnemiesDefeated++
			w.Player.VelY = -w.ctl.JumpPower * 0.6
			result.StompBounce = true
		} else {
			result.Died = true
		}
	}

	// Spike traps
	for _, spike := range w.Layout.Spikes {
		if playerRect.Intersects(spike) {
			result.Died = true
			break
		}
	}

	// Falling out of the world
	if w.Player.Y > w.Layout.Height+fallMargin {
		result.Died = true
	}

	// Checkpoint activation moves the respawn point forward. They are
	// ordered by x, so only the next one needs checking.
	for w.nextCheckpoint < len(w.Layout.Checkpoints) &&
		w.Player.X >= w.Layout.Checkpoints[w.nextCheckpoint].X {
		cp := w.Layout.Checkpoints[w.nextCheckpoint]
		w.respawnX = cp.X
		w.respawnY = cp.Y
		w.nextCheckpoint++
	}

	if playerRect.Intersects(w.Layout.Goal) {
		result.ReachedGoal = true
	}

	return result
}

// Respawn returns the player to the last activated checkpoint, or the
// spawn point if none was reached. Collected coins and defeated
// enemies stay gone.
func (w *World) Respawn() {
	w.Player.Reset(w.respawnX, w.respawnY)
}
