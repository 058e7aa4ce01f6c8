package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/skill"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Retrain the skill model from recorded history",
	Long: `Train the skill prediction model on all recorded level samples
and save it to the model directory.

The game retrains automatically in the background while you play; this
command is for forcing a retrain, for example after importing a
database from another machine.

Examples:
  platformer train
  platformer train --db ./platformer.db
  platformer train --seed 7`,
	Run: runTrain,
}

func runTrain(_ *cobra.Command, _ []string) {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	samples, err := store.LoadSamples()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading samples: %v\n", err)
		os.Exit(1)
	}

	params := skill.Params{
		MinTrainingSamples: cfg.Game.Model.MinTrainingSamples,
		RetrainInterval:    cfg.Game.Model.RetrainInterval,
	}
	minSamples := params.MinTrainingSamples
	if minSamples <= 0 {
		minSamples = skill.MinTrainingSamples
	}

	fmt.Printf("Loaded %d samples\n", len(samples))
	if len(samples) < minSamples {
		fmt.Printf("Need at least %d samples to train. Play more levels!\n", minSamples)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	classifier := skill.NewClassifierWith(seed, params)
	if err := classifier.Train(samples); err != nil {
		fmt.Fprintf(os.Stderr, "Training failed: %v\n", err)
		os.Exit(1)
	}

	if err := classifier.Save(cfg.Storage.ModelDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Model saved to %s\n", cfg.Storage.ModelDir)
}
