package skill

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	forestFile = "forest.json"
	scalerFile = "scaler.json"
)

// Save writes the current model to dir as forest.json and scaler.json.
// An untrained classifier has nothing to save and returns an error.
func (c *Classifier) Save(dir string) error {
	m := c.current.Load()
	if m == nil {
		return fmt.Errorf("skill: cannot save: model is not trained")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("skill: cannot save model: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, forestFile), m.forest); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, scalerFile), m.scaler)
}

// Load reads a previously saved model from dir. Both files must exist
// and parse; otherwise the classifier is left untouched so a partial
// or corrupt model directory never produces a half-loaded predictor.
func (c *Classifier) Load(dir string) error {
	var forest Forest
	if err := readJSON(filepath.Join(dir, forestFile), &forest); err != nil {
		return err
	}
	var scaler Scaler
	if err := readJSON(filepath.Join(dir, scalerFile), &scaler); err != nil {
		return err
	}
	if !forest.valid() || !scaler.valid() {
		return fmt.Errorf("skill: cannot load model from %s: incomplete model data", dir)
	}
	c.current.Store(&model{forest: &forest, scaler: &scaler})
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("skill: cannot encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("skill: cannot write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("skill: cannot read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("skill: cannot decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
