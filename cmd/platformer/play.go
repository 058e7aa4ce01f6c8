package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/session"
	"github.com/vovakirdan/tui-platformer/internal/skill"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in your terminal",
	Long: `Start a local game session.

Controls:
  A/D, Left/Right  - Run
  Space/W/Up       - Jump
  P/Esc            - Pause
  Enter            - Confirm / next level
  R                - Back to menu (after game over)
  Q/Ctrl+C         - Quit

The game adapts between levels: finish fast without dying and the next
level gets harder; struggle and it backs off.

Examples:
  platformer play
  platformer play --seed 7
  platformer play --config ./my-platformer.yaml`,
	Run: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = cfg.Game.World.FPS

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	classifier := skill.NewClassifierWith(rt.Seed, skill.Params{
		MinTrainingSamples: cfg.Game.Model.MinTrainingSamples,
		RetrainInterval:    cfg.Game.Model.RetrainInterval,
	})
	if loadErr := classifier.Load(cfg.Storage.ModelDir); loadErr == nil {
		fmt.Fprintln(os.Stderr, "Loaded saved skill model")
	}
	trainer := skill.NewTrainer(classifier, cfg.Storage.ModelDir)

	orch := session.New(session.Options{
		Config:     cfg.Game,
		Seed:       rt.Seed,
		Classifier: classifier,
		Trainer:    trainer,
		Store:      store,
	})

	runErr := tui.Run(orch, cfg.Game, rt)

	trainer.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
