// Package session coordinates a full game run: the state machine from
// start menu to game complete, per-level worlds, the telemetry to
// skill prediction to difficulty feedback loop, lives and scoring.
package session

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/difficulty"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/skill"
	"github.com/vovakirdan/tui-platformer/internal/storage"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

// State identifies where the session is in its lifecycle.
type State int

const (
	StateStartMenu State = iota
	StatePlaying
	StatePaused
	StateLevelComplete
	StateGameOver
	StateGameComplete
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateStartMenu:
		return "StartMenu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateLevelComplete:
		return "LevelComplete"
	case StateGameOver:
		return "GameOver"
	case StateGameComplete:
		return "GameComplete"
	default:
		return "Unknown"
	}
}

// Score values awarded during play.
const (
	coinScore          = 100
	enemyScore         = 200
	levelCompleteScore = 1000
)

// Orchestrator runs the adaptive difficulty loop. Each completed level
// produces a performance sample; the classifier predicts a skill tier
// from it; the modulator derives the next level's difficulty vector;
// the generator builds the next level from that vector.
type Orchestrator struct {
	cfg        config.GameConfig
	generator  *level.Generator
	classifier *skill.Classifier
	trainer    *skill.Trainer
	modulator  *difficulty.Modulator
	aggregator *telemetry.Aggregator
	store      *storage.Store

	state      State
	levelIndex int
	lives      int
	score      int
	elapsed    float64
	playerName string

	world      *physics.World
	nextVector difficulty.Vector
	prediction telemetry.Label
	probs      map[telemetry.Label]float64

	history   []telemetry.PerformanceSample
	highScore int
}

// Options carries the orchestrator's collaborators. Store and Trainer
// may be nil, which disables persistence and background retraining.
type Options struct {
	Config     config.GameConfig
	Seed       int64
	Classifier *skill.Classifier
	Trainer    *skill.Trainer
	Store      *storage.Store
}

// New creates an orchestrator in the start menu state. When a store is
// present, the sample history and high score are loaded so retraining
// cadence and the score display survive restarts.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		cfg:        opts.Config,
		generator:  level.NewGenerator(opts.Config.Level, opts.Config.Player.Height, rand.New(rand.NewSource(opts.Seed))),
		classifier: opts.Classifier,
		trainer:    opts.Trainer,
		modulator:  difficulty.NewModulator(opts.Config.Tiers),
		aggregator: telemetry.NewAggregator(),
		store:      opts.Store,
		state:      StateStartMenu,
		prediction: telemetry.Intermediate,
	}
	o.nextVector = o.modulator.Current()

	if o.store != nil {
		if samples, err := o.store.LoadSamples(); err != nil {
			log.Warn("cannot load sample history", "err", err)
		} else {
			o.history = samples
		}
		if high, err := o.store.HighScore(); err != nil {
			log.Warn("cannot load high score", "err", err)
		} else {
			o.highScore = high
		}
	}
	return o
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

// World returns the active level simulation, nil outside a run.
func (o *Orchestrator) World() *physics.World { return o.world }

// LevelIndex returns the zero-based index of the current level.
func (o *Orchestrator) LevelIndex() int { return o.levelIndex }

// Lives returns the remaining lives.
func (o *Orchestrator) Lives() int { return o.lives }

// Score returns the current run's score.
func (o *Orchestrator) Score() int { return o.score }

// HighScore returns the best known score, including past runs.
func (o *Orchestrator) HighScore() int { return o.highScore }

// Elapsed returns seconds spent in the current level attempt.
func (o *Orchestrator) Elapsed() float64 { return o.elapsed }

// PlayerName returns the name entered at the start menu.
func (o *Orchestrator) PlayerName() string { return o.playerName }

// Prediction returns the most recent skill prediction and its
// per-class probabilities; before any level completes it reports the
// intermediate default with no probabilities.
func (o *Orchestrator) Prediction() (telemetry.Label, map[telemetry.Label]float64) {
	return o.prediction, o.probs
}

// Difficulty returns the smoothed difficulty vector gameplay currently
// runs under.
func (o *Orchestrator) Difficulty() difficulty.Vector { return o.modulator.Current() }

// SampleCount returns the size of the known sample history.
func (o *Orchestrator) SampleCount() int { return len(o.history) }

// StartGame begins a fresh run from level zero with full lives.
func (o *Orchestrator) StartGame(playerName string) {
	o.playerName = playerName
	o.levelIndex = 0
	o.lives = o.cfg.Session.Lives
	o.score = 0
	o.prediction = telemetry.Intermediate
	o.probs = nil
	o.nextVector = o.modulator.Current()
	o.beginLevel()
	log.Info("run started", "player", playerName, "lives", o.lives)
}

// beginLevel generates the current level from the next vector and
// enters PLAYING with a fresh aggregator and timer.
func (o *Orchestrator) beginLevel() {
	layout := o.generator.Generate(o.levelIndex, o.nextVector)
	o.world = physics.NewWorld(o.cfg, layout)
	o.aggregator.Reset()
	o.elapsed = 0
	o.state = StatePlaying
}

// TogglePause flips between PLAYING and PAUSED.
func (o *Orchestrator) TogglePause() {
	switch o.state {
	case StatePlaying:
		o.state = StatePaused
	case StatePaused:
		o.state = StatePlaying
	}
}

// ReturnToMenu abandons the current run.
func (o *Orchestrator) ReturnToMenu() {
	o.state = StateStartMenu
	o.world = nil
}

// Tick advances the session by dt seconds with the given input. It
// does nothing outside the PLAYING state; menus, pause and the
// level-complete screen are timer-frozen.
func (o *Orchestrator) Tick(dt float64, in core.InputFrame) {
	if o.state != StatePlaying {
		return
	}

	o.elapsed += dt
	o.modulator.Tick(dt)

	coinsBefore := o.world.CoinsCollected
	enemiesBefore := o.world.EnemiesDefeated

	result := o.world.Step(in)

	o.score += (o.world.CoinsCollected - coinsBefore) * coinScore
	o.score += (o.world.EnemiesDefeated - enemiesBefore) * enemyScore

	o.observe()

	if result.Died {
		o.handleDeath()
		return
	}
	if result.ReachedGoal {
		o.completeLevel()
	}
}

// observe feeds the current world state to the telemetry aggregator.
func (o *Orchestrator) observe() {
	p := o.world.Player
	o.aggregator.OnTick(
		telemetry.PlayerObservation{
			X: p.X, Y: p.Y,
			VelX: p.VelX, VelY: p.VelY,
			OnGround: p.OnGround,
			Rect:     p.Rect(),
		},
		telemetry.WorldObservation{
			Platforms:       o.world.Layout.Platforms,
			CoinsCollected:  o.world.CoinsCollected,
			EnemiesDefeated: o.world.EnemiesDefeated,
		},
	)
}

// handleDeath spends a life. With lives left the player respawns at
// the last checkpoint and the attempt continues, counters intact; with
// none the run ends.
func (o *Orchestrator) handleDeath() {
	o.aggregator.RecordDeath()
	o.lives--
	if o.lives <= 0 {
		o.endRun(StateGameOver)
		return
	}
	o.world.Respawn()
	log.Debug("player died", "lives", o.lives, "level", o.levelIndex+1)
}

// completeLevel runs the feedback loop in its required order:
// finalize the sample, persist it, predict skill, derive the next
// difficulty vector, maybe retrain, then reset telemetry.
func (o *Orchestrator) completeLevel() {
	o.state = StateLevelComplete
	o.score += levelCompleteScore

	sample := o.aggregator.Finalize(o.levelIndex, o.elapsed)

	if o.store != nil {
		if _, err := o.store.AppendSample(sample); err != nil {
			log.Warn("cannot persist sample", "err", err)
		}
	}
	o.history = append(o.history, sample)

	o.prediction, o.probs = o.classifier.Predict(sample)
	o.nextVector = o.modulator.ComputeNextVector(o.prediction, o.levelIndex+1)

	if o.trainer != nil && o.classifier.ShouldRetrain(len(o.history)) {
		o.trainer.Request(o.history)
	}

	o.aggregator.Reset()

	log.Info("level complete",
		"level", o.levelIndex+1,
		"time", sample.CompletionTime,
		"deaths", sample.Deaths,
		"coins", sample.CoinsCollected,
		"predicted", o.prediction)

	if o.levelIndex+1 >= o.cfg.Session.MaxLevels {
		o.endRun(StateGameComplete)
	}
}

// AdvanceLevel moves from LEVEL_COMPLETE into the next level.
func (o *Orchestrator) AdvanceLevel() {
	if o.state != StateLevelComplete {
		return
	}
	o.levelIndex++
	o.beginLevel()
}

// endRun finishes the run in either GAME_OVER or GAME_COMPLETE and
// records the final score.
func (o *Orchestrator) endRun(final State) {
	o.state = final
	if o.score > o.highScore {
		o.highScore = o.score
	}
	if o.store != nil {
		if _, err := o.store.SaveScore(o.playerName, o.score, o.levelIndex+1); err != nil {
			log.Warn("cannot save score", "err", err)
		}
	}
	log.Info("run ended", "state", final, "score", o.score, "level", o.levelIndex+1)
}
