package level

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/difficulty"
)

// Generator builds level layouts. It owns its random source, so two
// generators seeded identically produce identical levels regardless of
// anything else using package rand.
type Generator struct {
	cfg     config.LevelConfig
	playerH float64
	rng     *rand.Rand
}

// NewGenerator creates a generator. playerHeight positions spawn and
// checkpoint points on top of their platforms.
func NewGenerator(cfg config.LevelConfig, playerHeight float64, rng *rand.Rand) *Generator {
	return &Generator{cfg: cfg, playerH: playerHeight, rng: rng}
}

// Generate builds the layout for a level index under the given
// difficulty vector. Indices below the tutorial threshold use fixed
// templates whose entity counts and gaps are still scaled by the
// vector; later indices are procedural.
func (g *Generator) Generate(index int, vec difficulty.Vector) Layout {
	var layout Layout
	if index < g.cfg.TutorialLevels {
		layout = g.tutorial(index, vec)
	} else {
		layout = g.procedural(index, vec)
	}
	g.placeCheckpoints(&layout, vec)

	log.Debug("generated level",
		"level", index+1,
		"platforms", len(layout.Platforms),
		"coins", len(layout.Coins),
		"enemies", len(layout.Enemies),
		"spikes", len(layout.Spikes),
		"checkpoints", len(layout.Checkpoints),
		"width", layout.Width)
	return layout
}

// procedural assembles a level from randomly chosen chunk archetypes.
// The x cursor only ever moves right, so platforms are laid out in
// strictly advancing order and the goal always sits past everything.
func (g *Generator) procedural(index int, vec difficulty.Vector) Layout {
	l := Layout{
		Index:  index,
		Width:  g.cfg.MinWidth,
		Height: g.cfg.Height,
	}

	// Starting ground and a guaranteed safe platform under the spawn
	// point, so no seed can produce an unwinnable immediate fall.
	l.Platforms = append(l.Platforms, core.NewRect(0, 650, 300, 70))
	l.Platforms = append(l.Platforms, core.NewRect(50, 520, 200, 20))
	l.SpawnX = 100
	l.SpawnY = 520 - g.playerH

	x := 350.0
	y := 650.0

	chunks := g.cfg.BaseChunks + index
	for c := 0; c < chunks; c++ {
		switch g.rng.Intn(4) {
		case 0:
			x, y = g.stairsChunk(&l, x, y, vec)
		case 1:
			x, y = g.gapsChunk(&l, x, y, vec)
		case 2:
			x = g.floatingChunk(&l, x, y, vec)
		default:
			x = g.groundChunk(&l, x, y, vec)
		}
	}

	l.Goal = core.NewRect(x-100, y-100, GoalWidth, GoalHeight)
	l.Width = max(l.Width, x+200)
	return l
}

// stairsChunk lays ascending or descending steps.
func (g *Generator) stairsChunk(l *Layout, x, y float64, vec difficulty.Vector) (float64, float64) {
	direction := float64(1)
	if g.rng.Intn(2) == 0 {
		direction = -1
	}
	steps := g.intn(3, 6)
	for i := 0; i < steps; i++ {
		width := float64(g.intn(100, 150))
		l.Platforms = append(l.Platforms, core.NewRect(x, y, width, 20))

		if g.rng.Float64() < vec.CoinFrequency*0.8 {
			l.Coins = append(l.Coins, CoinSpawn{X: x + width/2, Y: y - 50})
		}
		if g.rng.Float64() < vec.EnemySpawnRate*0.3 {
			l.Enemies = append(l.Enemies, EnemySpawn{
				X: x + 20, Y: y - 50,
				Speed: baseEnemySpeed * vec.EnemySpeedMultiplier,
			})
		}

		x += width + 50
		y += direction * float64(g.intn(40, 70))
		y = core.ClampF(y, 300, 650)
	}
	return x, y
}

// gapsChunk lays platforms separated by jumps, gap width scaled by
// difficulty.
func (g *Generator) gapsChunk(l *Layout, x, y float64, vec difficulty.Vector) (float64, float64) {
	count := g.intn(4, 7)
	for i := 0; i < count; i++ {
		width := float64(g.intn(80, 130))
		gap := float64(g.intn(120, 200)) * vec.PlatformGapMultiplier

		l.Platforms = append(l.Platforms, core.NewRect(x, y, width, 20))

		if g.rng.Float64() < vec.CoinFrequency {
			l.Coins = append(l.Coins, CoinSpawn{X: x + width + gap/2, Y: y - 80})
		}

		x += width + gap
	}
	return x, y
}

// floatingChunk scatters platforms at varying heights around the
// current baseline.
func (g *Generator) floatingChunk(l *Layout, x, y float64, vec difficulty.Vector) float64 {
	count := g.intn(3, 6)
	for i := 0; i < count; i++ {
		yOffset := float64(g.intn(-150, 50))
		width := float64(g.intn(90, 140))

		l.Platforms = append(l.Platforms, core.NewRect(x, y+yOffset, width, 20))

		if g.rng.Float64() < vec.CoinFrequency {
			l.Coins = append(l.Coins, CoinSpawn{X: x + width/2, Y: y + yOffset - 40})
		}

		x += width + float64(g.intn(100, 180))
	}
	return x
}

// groundChunk lays a long ground section with scattered coins, enemies
// and spike traps.
func (g *Generator) groundChunk(l *Layout, x, y float64, vec difficulty.Vector) float64 {
	length := float64(g.intn(400, 800))
	l.Platforms = append(l.Platforms, core.NewRect(x, y, length, 70))

	coins := int(length / 100 * vec.CoinFrequency)
	for i := 0; i < coins; i++ {
		coinX := x + float64(g.intn(50, int(length-50)))
		l.Coins = append(l.Coins, CoinSpawn{X: coinX, Y: y - 50})
	}

	enemies := int(length / 300 * vec.EnemySpawnRate)
	for i := 0; i < enemies; i++ {
		enemyX := x + float64(g.intn(100, int(length-100)))
		l.Enemies = append(l.Enemies, EnemySpawn{
			X: enemyX, Y: y - 50,
			Speed: baseEnemySpeed * vec.EnemySpeedMultiplier,
		})
	}

	spikes := int(length / 400 * vec.TrapDensity)
	for i := 0; i < spikes; i++ {
		spikeX := x + float64(g.intn(100, int(length-100)))
		l.Spikes = append(l.Spikes, core.NewRect(spikeX, y-SpikeHeight, SpikeWidth, SpikeHeight))
	}

	return x + length + 100
}

// placeCheckpoints spreads respawn points along the level at a spacing
// controlled by the difficulty vector. A higher checkpoint frequency
// means closer checkpoints; frequency zero disables them.
func (g *Generator) placeCheckpoints(l *Layout, vec difficulty.Vector) {
	if vec.CheckpointFrequency <= 0 || g.cfg.CheckpointSpacing <= 0 {
		return
	}
	spacing := g.cfg.CheckpointSpacing / vec.CheckpointFrequency
	for x := spacing; x < l.Goal.X-spacing/2; x += spacing {
		platform, ok := l.PlatformAt(x)
		if !ok {
			continue
		}
		l.Checkpoints = append(l.Checkpoints, Checkpoint{
			X: platform.CenterX(),
			Y: platform.Y - g.playerH,
		})
	}
}

// intn returns a uniform int in [lo, hi] inclusive.
func (g *Generator) intn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}
