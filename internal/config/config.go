// Package config provides YAML-based configuration loading for the
// platformer: physics tuning, level generation parameters, session
// rules and the per-tier difficulty base table.
package config

import "github.com/vovakirdan/tui-platformer/internal/difficulty"

// GameConfig contains all tunable configuration for the game.
type GameConfig struct {
	World   WorldConfig          `yaml:"world"`
	Physics PhysicsConfig        `yaml:"physics"`
	Player  PlayerConfig         `yaml:"player"`
	Level   LevelConfig          `yaml:"level"`
	Session SessionConfig        `yaml:"session"`
	Model   ModelConfig          `yaml:"model"`
	Tiers   difficulty.TierTable `yaml:"tiers"`
}

// WorldConfig defines the world-space viewport and simulation rate.
type WorldConfig struct {
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`
	FPS        int     `yaml:"fps"`
}

// PhysicsConfig defines global physics parameters.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
	GroundFriction float64 `yaml:"ground_friction"`
	AirFriction    float64 `yaml:"air_friction"`
}

// PlayerConfig defines player movement and size parameters.
type PlayerConfig struct {
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	JumpPower    float64 `yaml:"jump_power"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
}

// LevelConfig defines level generation parameters.
type LevelConfig struct {
	MinWidth          float64 `yaml:"min_width"`
	Height            float64 `yaml:"height"`
	TutorialLevels    int     `yaml:"tutorial_levels"`
	BaseChunks        int     `yaml:"base_chunks"`
	CheckpointSpacing float64 `yaml:"checkpoint_spacing"`
}

// SessionConfig defines session rules.
type SessionConfig struct {
	MaxLevels int `yaml:"max_levels"`
	Lives     int `yaml:"lives"`
}

// ModelConfig defines skill model training parameters.
type ModelConfig struct {
	MinTrainingSamples int `yaml:"min_training_samples"`
	RetrainInterval    int `yaml:"retrain_interval"`
}
