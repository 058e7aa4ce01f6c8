package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	// Loading with no files present falls through to the embedded YAML,
	// which must agree with the hardcoded fallback.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := DefaultGameConfig()

	if cfg.Physics != want.Physics {
		t.Errorf("physics = %+v, want %+v", cfg.Physics, want.Physics)
	}
	if cfg.Player != want.Player {
		t.Errorf("player = %+v, want %+v", cfg.Player, want.Player)
	}
	if cfg.Session != want.Session {
		t.Errorf("session = %+v, want %+v", cfg.Session, want.Session)
	}
	for _, tier := range telemetry.Labels {
		if cfg.Tiers[tier] != want.Tiers[tier] {
			t.Errorf("tier %q = %+v, want %+v", tier, cfg.Tiers[tier], want.Tiers[tier])
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := []byte("physics:\n  gravity: 1.2\nsession:\n  max_levels: 3\n  lives: 1\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Physics.Gravity != 1.2 {
		t.Errorf("gravity = %v, want 1.2", cfg.Physics.Gravity)
	}
	if cfg.Session.MaxLevels != 3 || cfg.Session.Lives != 1 {
		t.Errorf("session = %+v, want max_levels 3, lives 1", cfg.Session)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load should fail for a missing explicit path")
	}
}

func TestLoadMalformedCustomPathFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load should fail for malformed YAML")
	}
}
