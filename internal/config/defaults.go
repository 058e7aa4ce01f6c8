package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-platformer/internal/difficulty"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultGameConfig returns the built-in configuration, used when no
// YAML file is found and the embedded default fails to parse.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		World: WorldConfig{
			ViewWidth:  1280,
			ViewHeight: 720,
			FPS:        60,
		},
		Physics: PhysicsConfig{
			Gravity:        0.8,
			MaxFallSpeed:   15,
			GroundFriction: 0.85,
			AirFriction:    0.95,
		},
		Player: PlayerConfig{
			Acceleration: 0.6,
			MaxSpeed:     12,
			JumpPower:    16,
			Width:        48,
			Height:       64,
		},
		Level: LevelConfig{
			MinWidth:          5000,
			Height:            720,
			TutorialLevels:    3,
			BaseChunks:        8,
			CheckpointSpacing: 1500,
		},
		Session: SessionConfig{
			MaxLevels: 5,
			Lives:     3,
		},
		Model: ModelConfig{
			MinTrainingSamples: 10,
			RetrainInterval:    5,
		},
		Tiers: difficulty.DefaultTiers(),
	}
}
