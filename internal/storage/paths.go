package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// StorageConfig names the on-disk locations for persistent state. It
// is passed explicitly to whoever needs it; nothing in this package
// mutates process-wide state to communicate paths.
type StorageConfig struct {
	// DBPath is the SQLite database holding samples and high scores.
	DBPath string
	// ModelDir holds the serialized skill model.
	ModelDir string
}

// DefaultStorageConfig resolves the default data locations under the
// user's home directory, falling back to a local data/ directory when
// home cannot be determined.
func DefaultStorageConfig() StorageConfig {
	base := "data"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".platformer", "data")
	}
	return StorageConfig{
		DBPath:   filepath.Join(base, "platformer.db"),
		ModelDir: filepath.Join(base, "models"),
	}
}

// WithDBPath returns a copy with the database path replaced. The model
// directory moves alongside it unless it was set explicitly.
func (c StorageConfig) WithDBPath(dbPath string) StorageConfig {
	if dbPath == "" {
		return c
	}
	c.DBPath = dbPath
	c.ModelDir = filepath.Join(filepath.Dir(dbPath), "models")
	return c
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
