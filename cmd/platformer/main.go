// platformer is a terminal platformer that adapts its difficulty to
// how well you play.
//
// Each completed level produces a gameplay sample; a random forest
// trained on those samples predicts your skill tier, and the next
// level is generated harder or easier accordingly.
//
// Usage:
//
//	platformer play              - Play locally
//	platformer serve             - Start SSH server for remote play
//	platformer scores            - Show the high score table
//	platformer stats             - Show collected gameplay statistics
//	platformer train             - Retrain the skill model from history
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible level generation
//	--db <path>      - Set database path (default: ~/.platformer/data/platformer.db)
//	--config <path>  - Path to custom config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Adaptive platformer - a game that learns how you play",
	Long: `Platformer is a terminal platformer with adaptive difficulty.

The game watches how you play: completion time, deaths, coins,
precision of your landings. After each level it predicts your skill
tier and tunes enemy speed, trap density, platform gaps and coin
rewards for the next one.

Available commands:
  play     - Play locally in your terminal
  serve    - Start SSH server for remote play
  scores   - View the high score table
  stats    - View collected gameplay statistics
  train    - Retrain the skill model from recorded history

Examples:
  platformer play
  platformer play --seed 7
  platformer serve --ssh :2222
  platformer scores`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default: ~/.platformer/data/platformer.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(trainCmd)
}

// runtimeConfig bundles the game config with resolved storage paths.
type runtimeConfig struct {
	Game    config.GameConfig
	Storage storage.StorageConfig
}

// loadRuntimeConfig loads the YAML config and applies global flag overrides.
func loadRuntimeConfig() (runtimeConfig, error) {
	game, err := config.Load(flagConfig)
	if err != nil {
		return runtimeConfig{}, err
	}
	if flagFPS > 0 {
		game.World.FPS = flagFPS
	}
	return runtimeConfig{
		Game:    game,
		Storage: storage.DefaultStorageConfig().WithDBPath(flagDBPath),
	}, nil
}
