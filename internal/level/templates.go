package level

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/difficulty"
)

// tutorial builds one of the hand-authored opening levels. The shapes
// are fixed but gaps, enemy speeds and entity counts still respect the
// difficulty vector.
func (g *Generator) tutorial(index int, vec difficulty.Vector) Layout {
	switch index {
	case 0:
		return g.tutorialBasics(vec)
	case 1:
		return g.tutorialGaps(vec)
	default:
		return g.tutorialMixed(vec)
	}
}

// tutorialBasics teaches movement and jumping: a stair climb, a few
// floating platforms, two slow enemies.
func (g *Generator) tutorialBasics(vec difficulty.Vector) Layout {
	l := Layout{
		Index:  0,
		Width:  g.cfg.MinWidth,
		Height: g.cfg.Height,
		SpawnX: 100,
		SpawnY: 650 - g.playerH,
	}

	l.Platforms = append(l.Platforms, core.NewRect(0, 650, 1000, 70))

	// Simple platform stairs
	for i := 0; i < 5; i++ {
		x := float64(200 + i*150)
		y := float64(600 - i*50)
		l.Platforms = append(l.Platforms, core.NewRect(x, y, 120, 20))
		if i > 0 {
			l.Coins = append(l.Coins, CoinSpawn{X: x + 50, Y: y - 40})
		}
	}

	l.Platforms = append(l.Platforms, core.NewRect(1000, 650, 2000, 70))

	// Floating platforms leading up to the goal
	l.Platforms = append(l.Platforms, core.NewRect(1500, 500, 200, 20))
	l.Platforms = append(l.Platforms, core.NewRect(1850, 450, 200, 20))
	l.Platforms = append(l.Platforms, core.NewRect(2200, 400, 200, 20))

	for x := 1550.0; x < 2250; x += 100 {
		l.Coins = append(l.Coins, CoinSpawn{X: x, Y: 350})
	}

	speed := baseEnemySpeed * vec.EnemySpeedMultiplier
	l.Enemies = append(l.Enemies,
		EnemySpawn{X: 1200, Y: 600, Speed: speed},
		EnemySpawn{X: 2000, Y: 600, Speed: speed},
	)

	l.Goal = core.NewRect(2600, 300, GoalWidth, GoalHeight)
	return l
}

// tutorialGaps introduces gap jumps and more enemies.
func (g *Generator) tutorialGaps(vec difficulty.Vector) Layout {
	l := Layout{
		Index:  1,
		Width:  g.cfg.MinWidth,
		Height: g.cfg.Height,
		SpawnX: 100,
		SpawnY: 650 - g.playerH,
	}

	l.Platforms = append(l.Platforms, core.NewRect(0, 650, 400, 70))

	x := 500.0
	speed := baseEnemySpeed * vec.EnemySpeedMultiplier
	for i := 0; i < 6; i++ {
		gap := 150 * vec.PlatformGapMultiplier
		l.Platforms = append(l.Platforms, core.NewRect(x, 650, 120, 20))
		if i < 5 {
			l.Coins = append(l.Coins, CoinSpawn{X: x + 120 + gap/2, Y: 550})
		}
		if i%2 == 0 && i > 0 {
			l.Enemies = append(l.Enemies, EnemySpawn{X: x + 30, Y: 600, Speed: speed})
		}
		x += 120 + gap
	}

	// Final stretch
	l.Platforms = append(l.Platforms, core.NewRect(x, 650, 1500, 70))
	enemies := int(3 * vec.EnemySpawnRate)
	for i := 0; i < enemies; i++ {
		l.Enemies = append(l.Enemies, EnemySpawn{
			X: x + 200 + float64(i)*300, Y: 600, Speed: speed,
		})
	}

	l.Goal = core.NewRect(x+1400, 550, GoalWidth, GoalHeight)
	l.Width = max(l.Width, x+1600)
	return l
}

// tutorialMixed combines everything taught so far: stairs, gaps,
// floating platforms and the first spike traps.
func (g *Generator) tutorialMixed(vec difficulty.Vector) Layout {
	l := Layout{
		Index:  2,
		Width:  g.cfg.MinWidth,
		Height: g.cfg.Height,
		SpawnX: 100,
		SpawnY: 650 - g.playerH,
	}
	speed := baseEnemySpeed * vec.EnemySpeedMultiplier

	l.Platforms = append(l.Platforms, core.NewRect(0, 650, 400, 70))

	// Stairs up
	x := 500.0
	y := 600.0
	for i := 0; i < 4; i++ {
		l.Platforms = append(l.Platforms, core.NewRect(x, y, 120, 20))
		l.Coins = append(l.Coins, CoinSpawn{X: x + 60, Y: y - 40})
		x += 170
		y -= 50
	}

	// Gap jumps at height
	for i := 0; i < 3; i++ {
		gap := 140 * vec.PlatformGapMultiplier
		l.Platforms = append(l.Platforms, core.NewRect(x, y, 110, 20))
		l.Coins = append(l.Coins, CoinSpawn{X: x + 110 + gap/2, Y: y - 60})
		if i == 1 {
			l.Enemies = append(l.Enemies, EnemySpawn{X: x + 30, Y: y - 50, Speed: speed})
		}
		x += 110 + gap
	}

	// Floating descent back to the ground
	for i := 0; i < 3; i++ {
		l.Platforms = append(l.Platforms, core.NewRect(x, y+float64(i+1)*60, 130, 20))
		x += 230
	}

	// Final ground run with enemies and traps
	groundLen := 1200.0
	l.Platforms = append(l.Platforms, core.NewRect(x, 650, groundLen, 70))
	enemies := int(4 * vec.EnemySpawnRate)
	for i := 0; i < enemies; i++ {
		l.Enemies = append(l.Enemies, EnemySpawn{
			X: x + 150 + float64(i)*250, Y: 600, Speed: speed,
		})
	}
	spikes := int(3 * vec.TrapDensity)
	for i := 0; i < spikes; i++ {
		l.Spikes = append(l.Spikes, core.NewRect(
			x+300+float64(i)*280, 650-SpikeHeight, SpikeWidth, SpikeHeight))
	}

	l.Goal = core.NewRect(x+groundLen-150, 550, GoalWidth, GoalHeight)
	l.Width = max(l.Width, x+groundLen+200)
	return l
}
