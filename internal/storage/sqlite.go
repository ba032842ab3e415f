// Package storage keeps the history of autoplay benchmark runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is the outcome of one headless autoplay game.
type Run struct {
	ID          int64
	Seed        int64
	Preset      string
	Pieces      int
	Lines       int
	Score       int
	Ticks       int64
	StackHeight int // highest stack reached before the game ended
	GameOver    bool
	CreatedAt   time.Time
}

// RunStats aggregates every stored run.
type RunStats struct {
	Runs       int
	BestLines  int
	BestScore  int
	AvgLines   float64
	AvgPieces  float64
	TotalLines int64
	LastRun    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS autoplay_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			preset TEXT NOT NULL DEFAULT 'normal',
			pieces INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			stack_height INTEGER NOT NULL DEFAULT 0,
			game_over INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_autoplay_runs_top ON autoplay_runs(lines DESC, score DESC);
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

// SaveRun records a benchmark run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Preset == "" {
		r.Preset = "normal"
	}
	result, err := s.db.Exec(
		`INSERT INTO autoplay_runs (seed, preset, pieces, lines, score, ticks, stack_height, game_over)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Preset, r.Pieces, r.Lines, r.Score, r.Ticks, r.StackHeight, r.GameOver,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, seed, preset, pieces, lines, score, ticks, stack_height, game_over, created_at`

// TopRuns returns the best runs by cleared lines, then score.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM autoplay_runs
		 ORDER BY lines DESC, score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentRuns returns the most recently saved runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM autoplay_runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunBySeed returns the latest run recorded for a seed, or nil if none.
func (s *Store) RunBySeed(seed int64) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM autoplay_runs
		 WHERE seed = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		seed,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.Seed,
		&r.Preset,
		&r.Pieces,
		&r.Lines,
		&r.Score,
		&r.Ticks,
		&r.StackHeight,
		&r.GameOver,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both driver-parsed times and raw strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Stats aggregates all stored runs. A zero RunStats is returned when the
// table is empty.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(lines), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(lines), 0), COALESCE(AVG(pieces), 0), COALESCE(SUM(lines), 0),
		        MAX(created_at)
		 FROM autoplay_runs`,
	).Scan(&stats.Runs, &stats.BestLines, &stats.BestScore,
		&stats.AvgLines, &stats.AvgPieces, &stats.TotalLines, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// ClearRuns deletes every stored run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM autoplay_runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
