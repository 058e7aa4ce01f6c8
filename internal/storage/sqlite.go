// Package storage provides SQLite-based persistence for performance
// samples and high scores. Uses the pure-Go modernc.org/sqlite driver
// to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Player    string
	Score     int
	Level     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			completion_time REAL NOT NULL,
			jumps INTEGER NOT NULL,
			deaths INTEGER NOT NULL,
			coins_collected INTEGER NOT NULL,
			enemies_defeated INTEGER NOT NULL,
			total_distance REAL NOT NULL,
			precise_landings INTEGER NOT NULL,
			max_speed REAL NOT NULL,
			air_time_ratio REAL NOT NULL,
			completion_speed REAL NOT NULL,
			skill_level TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_samples_created ON samples(created_at);

		CREATE TABLE IF NOT EXISTS highscores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_highscores_top ON highscores(score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AppendSample records one completed level attempt.
// Returns the ID of the inserted record.
func (s *Store) AppendSample(sample telemetry.PerformanceSample) (int64, error) {
	ts := sample.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO samples
		 (level, completion_time, jumps, deaths, coins_collected, enemies_defeated,
		  total_distance, precise_landings, max_speed, air_time_ratio, completion_speed,
		  skill_level, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sample.Level,
		sample.CompletionTime,
		sample.Jumps,
		sample.Deaths,
		sample.CoinsCollected,
		sample.EnemiesDefeated,
		sample.TotalDistance,
		sample.PreciseLandings,
		sample.MaxSpeed,
		sample.AirTimeRatio,
		sample.CompletionSpeed,
		string(sample.Skill),
		ts.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save sample: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// LoadSamples retrieves the full sample history in insertion order.
// Malformed rows (unknown skill label, non-numeric feature columns)
// are skipped with a warning rather than failing the whole load.
func (s *Store) LoadSamples() ([]telemetry.PerformanceSample, error) {
	rows, err := s.db.Query(
		`SELECT id, level, completion_time, jumps, deaths, coins_collected, enemies_defeated,
		        total_distance, precise_landings, max_speed, air_time_ratio, completion_speed,
		        skill_level, created_at
		 FROM samples
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var samples []telemetry.PerformanceSample
	for rows.Next() {
		var (
			id        int64
			raw       [11]any
			skill     string
			createdAt any
		)
		if err := rows.Scan(
			&id,
			&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5],
			&raw[6], &raw[7], &raw[8], &raw[9], &raw[10],
			&skill,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan sample row: %w", err)
		}

		sample, ok := decodeSample(raw, skill)
		if !ok {
			log.Warn("skipping malformed sample row", "id", id, "skill", skill)
			continue
		}

		sample.Timestamp = parseTimestamp(createdAt)
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return samples, nil
}

// decodeSample converts one row's raw column values, in SELECT order,
// into a sample. Reports false when any column holds a non-numeric
// value or the skill label is unknown.
func decodeSample(raw [11]any, skill string) (telemetry.PerformanceSample, bool) {
	var sample telemetry.PerformanceSample

	sample.Skill = telemetry.Label(skill)
	if !sample.Skill.Valid() {
		return sample, false
	}

	ints := []struct {
		dst *int
		v   any
	}{
		{&sample.Level, raw[0]},
		{&sample.Jumps, raw[2]},
		{&sample.Deaths, raw[3]},
		{&sample.CoinsCollected, raw[4]},
		{&sample.EnemiesDefeated, raw[5]},
		{&sample.PreciseLandings, raw[7]},
	}
	for _, c := range ints {
		n, ok := asInt(c.v)
		if !ok {
			return sample, false
		}
		*c.dst = n
	}

	floats := []struct {
		dst *float64
		v   any
	}{
		{&sample.CompletionTime, raw[1]},
		{&sample.TotalDistance, raw[6]},
		{&sample.MaxSpeed, raw[8]},
		{&sample.AirTimeRatio, raw[9]},
		{&sample.CompletionSpeed, raw[10]},
	}
	for _, c := range floats {
		f, ok := asFloat(c.v)
		if !ok {
			return sample, false
		}
		*c.dst = f
	}

	return sample, true
}

// asInt accepts the numeric types the driver produces for INTEGER
// columns under SQLite's flexible typing.
func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}

// asFloat accepts the numeric types the driver produces for REAL
// columns under SQLite's flexible typing.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	}
	return 0, false
}

// SampleCount returns the number of stored samples, including rows a
// LoadSamples call would skip.
func (s *Store) SampleCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM samples").Scan(&count); err != nil {
		return 0, fmt.Errorf("storage: cannot count samples: %w", err)
	}
	return count, nil
}

// SaveScore records a finished run's score for the named player.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(player string, score, level int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO highscores (player, score, level) VALUES (?, ?, ?)",
		player, score, level,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores, ordered by score descending.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, level, created_at
		 FROM highscores
		 ORDER BY score DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Level, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded score, 0 if none exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM highscores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// SessionStats contains aggregated statistics over the sample history.
type SessionStats struct {
	Samples       int
	ByTier        map[telemetry.Label]int
	AvgCompletion float64
	AvgDeaths     float64
	LastPlayed    time.Time
}

// GetSessionStats aggregates the stored sample history.
func (s *Store) GetSessionStats() (*SessionStats, error) {
	stats := &SessionStats{ByTier: make(map[telemetry.Label]int)}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(completion_time), 0), COALESCE(AVG(deaths), 0)
		 FROM samples`,
	).Scan(&stats.Samples, &stats.AvgCompletion, &stats.AvgDeaths)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get sample stats: %w", err)
	}

	rows, err := s.db.Query("SELECT skill_level, COUNT(*) FROM samples GROUP BY skill_level")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get tier counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tier row: %w", err)
		}
		stats.ByTier[telemetry.Label(tier)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		"SELECT created_at FROM samples ORDER BY created_at DESC LIMIT 1",
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// parseTimestamp handles the driver returning either time.Time or the
// SQLite text representation.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
