package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/storage"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collected gameplay statistics",
	Long: `Display aggregated statistics over the recorded level history:
how many levels were completed, the skill tier distribution, average
completion time and deaths per level.

Examples:
  platformer stats`,
	Run: runStats,
}

func runStats(_ *cobra.Command, _ []string) {
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

	stats, err := store.GetSessionStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Gameplay Statistics")
	fmt.Println()

	if stats.Samples == 0 {
		fmt.Println("No levels recorded yet.")
		fmt.Println()
		fmt.Println("Run 'platformer play' to start collecting history!")
		return
	}

	fmt.Printf("  Levels completed:  %d\n", stats.Samples)
	fmt.Printf("  Avg completion:    %.1fs\n", stats.AvgCompletion)
	fmt.Printf("  Avg deaths/level:  %.2f\n", stats.AvgDeaths)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played:       %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("  Skill tier distribution:")
	for _, tier := range telemetry.Labels {
		fmt.Printf("    %-13s %d\n", tier, stats.ByTier[tier])
	}
}
