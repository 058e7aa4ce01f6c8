package physics

import (
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

func flatLayout() level.Layout {
	return level.Layout{
		Width:  2000,
		Height: 720,
		SpawnX: 100,
		SpawnY: 586,
		Platforms: []core.Rect{
			core.NewRect(0, 650, 2000, 70),
		},
		Goal: core.NewRect(1900, 550, level.GoalWidth, level.GoalHeight),
	}
}

func newTestWorld(layout level.Layout) *World {
	return NewWorld(config.DefaultGameConfig(), layout)
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestPlayerSettlesOnGround(t *testing.T) {
	w := newTestWorld(flatLayout())
	w.Step(frame())

	if !w.Player.OnGround {
		t.Fatal("player should be grounded after settling onto the ground platform")
	}
	if w.Player.VelY != 0 {
		t.Errorf("grounded VelY = %v, want 0", w.Player.VelY)
	}
	if w.Player.Y != 586 {
		t.Errorf("player Y = %v, want flush at 586", w.Player.Y)
	}
}

func TestPlayerAcceleratesAndClampsSpeed(t *testing.T) {
	w := newTestWorld(flatLayout())
	cfg := config.DefaultGameConfig()

	for i := 0; i < 100; i++ {
		w.Step(frame(core.ActionRight))
	}
	if w.Player.VelX != cfg.Player.MaxSpeed {
		t.Errorf("VelX after sustained input = %v, want clamped at %v", w.Player.VelX, cfg.Player.MaxSpeed)
	}

	// Releasing input bleeds speed off through friction.
	for i := 0; i < 60; i++ {
		w.Step(frame())
	}
	if v := core.AbsF(w.Player.VelX); v >= 1 {
		t.Errorf("VelX after 60 coasting ticks = %v, want near zero", v)
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	w := newTestWorld(flatLayout())
	w.Step(frame()) // settle

	w.Step(frame(core.ActionJump))
	if w.Player.OnGround {
		t.Fatal("player should be airborne after jumping")
	}
	if w.Player.VelY >= 0 {
		t.Fatalf("VelY after jump = %v, want negative", w.Player.VelY)
	}

	// Holding jump mid-air must not re-apply the impulse.
	before := w.Player.VelY
	w.Step(frame(core.ActionJump))
	cfg := config.DefaultGameConfig()
	if w.Player.VelY != before+cfg.Physics.Gravity {
		t.Errorf("mid-air jump changed VelY to %v, want gravity-only %v",
			w.Player.VelY, before+cfg.Physics.Gravity)
	}
}

func TestFallSpeedIsCapped(t *testing.T) {
	layout := flatLayout()
	layout.Platforms = nil // free fall
	w := newTestWorld(layout)
	cfg := config.DefaultGameConfig()

	for i := 0; i < 60; i++ {
		w.Step(frame())
	}
	if w.Player.VelY != cfg.Physics.MaxFallSpeed {
		t.Errorf("VelY in free fall = %v, want capped at %v", w.Player.VelY, cfg.Physics.MaxFallSpeed)
	}
}

func TestFallingOutOfWorldDies(t *testing.T) {
	layout := flatLayout()
	layout.Platforms = nil
	w := newTestWorld(layout)

	died := false
	for i := 0; i < 300; i++ {
		if w.Step(frame()).Died {
			died = true
			break
		}
	}
	if !died {
		t.Fatal("free fall past the level bottom should count as a death")
	}
}

func TestCoinCollectedOnce(t *testing.T) {
	layout := flatLayout()
	layout.Coins = []level.CoinSpawn{{X: 110, Y: 600}}
	w := newTestWorld(layout)

	w.Step(frame())
	if w.CoinsCollected != 1 {
		t.Fatalf("CoinsCollected = %d, want 1", w.CoinsCollected)
	}
	if w.Coins[0].Active {
		t.Error("collected coin should be inactive")
	}

	w.Step(frame())
	if w.CoinsCollected != 1 {
		t.Errorf("CoinsCollected after second tick = %d, want still 1", w.CoinsCollected)
	}
}

func TestStompDefeatsEnemy(t *testing.T) {
	layout := flatLayout()
	layout.Enemies = []level.EnemySpawn{{X: 300, Y: 618, Speed: 0}}
	w := newTestWorld(layout)

	// Falling onto the enemy from just above its head.
	w.Player.Reset(300, 553)
	w.Player.VelY = 1

	result := w.Step(frame())
	if result.Died {
		t.Fatal("stomp must not kill the player")
	}
	if !result.StompBounce {
		t.Fatal("expected a stomp bounce")
	}
	if w.EnemiesDefeated != 1 {
		t.Errorf("EnemiesDefeated = %d, want 1", w.EnemiesDefeated)
	}
	if w.Enemies[0].Active {
		t.Error("stomped enemy should be inactive")
	}
	if w.Player.VelY >= 0 {
		t.Errorf("VelY after stomp = %v, want upward bounce", w.Player.VelY)
	}
}

func TestSideContactWithEnemyDies(t *testing.T) {
	layout := flatLayout()
	layout.Enemies = []level.EnemySpawn{{X: 300, Y: 618, Speed: 0}}
	w := newTestWorld(layout)

	// Standing overlapped with the enemy at ground level.
	w.Player.Reset(280, 586)
	result := w.Step(frame())
	if !result.Died {
		t.Fatal("side contact with an enemy should kill the player")
	}
	if w.Enemies[0].Active != true {
		t.Error("enemy must survive side contact")
	}
}

func TestSpikeKills(t *testing.T) {
	layout := flatLayout()
	layout.Spikes = []core.Rect{core.NewRect(110, 634, level.SpikeWidth, level.SpikeHeight)}
	w := newTestWorld(layout)

	if !w.Step(frame()).Died {
		t.Fatal("standing in a spike should kill the player")
	}
}

func TestCheckpointMovesRespawn(t *testing.T) {
	layout := flatLayout()
	layout.Checkpoints = []level.Checkpoint{{X: 500, Y: 586}}
	w := newTestWorld(layout)

	// Before reaching the checkpoint, respawn is the spawn point.
	w.Respawn()
	if w.Player.X != 100 || w.Player.Y != 586 {
		t.Fatalf("initial respawn at (%v,%v), want spawn (100,586)", w.Player.X, w.Player.Y)
	}

	w.Player.Reset(600, 586)
	w.Step(frame())
	w.Respawn()
	if w.Player.X != 500 || w.Player.Y != 586 {
		t.Errorf("respawn at (%v,%v), want checkpoint (500,586)", w.Player.X, w.Player.Y)
	}
	if w.Player.VelX != 0 || w.Player.VelY != 0 {
		t.Error("respawn should zero all momentum")
	}
}

func TestRespawnKeepsCollectedState(t *testing.T) {
	layout := flatLayout()
	layout.Coins = []level.CoinSpawn{{X: 110, Y: 600}}
	w := newTestWorld(layout)

	w.Step(frame())
	if w.CoinsCollected != 1 {
		t.Fatalf("CoinsCollected = %d, want 1", w.CoinsCollected)
	}

	w.Respawn()
	if w.Coins[0].Active {
		t.Error("respawn must not restore collected coins")
	}
	if w.CoinsCollected != 1 {
		t.Errorf("CoinsCollected after respawn = %d, want 1", w.CoinsCollected)
	}
}

func TestGoalDetection(t *testing.T) {
	layout := flatLayout()
	w := newTestWorld(layout)

	w.Player.Reset(1900, 580)
	if !w.Step(frame()).ReachedGoal {
		t.Fatal("overlapping the goal should complete the level")
	}
}

func TestEnemyPatrolsPlatform(t *testing.T) {
	layout := level.Layout{
		Width: 2000, Height: 720,
		SpawnX: 100, SpawnY: 100, // player far away in the air
		Platforms: []core.Rect{core.NewRect(300, 650, 100, 20)},
	}
	layout.Enemies = []level.EnemySpawn{{X: 340, Y: 618, Speed: 2}}
	w := newTestWorld(layout)

	turned := false
	prev := w.Enemies[0].Direction
	for i := 0; i < 200; i++ {
		w.Step(frame())
		e := &w.Enemies[0]
		if e.Direction != prev {
			turned = true
			prev = e.Direction
		}
		if e.X < 290 || e.X+level.EnemySize > 410 {
			t.Fatalf("tick %d: enemy at x=%v left its platform", i, e.X)
		}
	}
	if !turned {
		t.Error("enemy never turned around on its platform")
	}
}
