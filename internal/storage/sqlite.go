// Package storage provides SQLite-based persistence for solver runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run sources.
const (
	SourceSolve = "solve" // headless CLI run
	SourcePlay  = "play"  // run triggered from the interactive UI
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is a single recorded solver run.
type Run struct {
	ID        int64
	RunID     string // UUID, assigned by SaveRun when empty
	LayoutID  string
	Strategy  string
	Source    string
	Found     bool
	Cost      int
	Expanded  int
	Truncated bool
	Duration  time.Duration
	Actions   []string
	CreatedAt time.Time
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

	// Create parent directories
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			layout_id TEXT NOT NULL,
			strategy TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT 'solve',
			found INTEGER NOT NULL DEFAULT 0,
			cost INTEGER NOT NULL DEFAULT 0,
			expanded INTEGER NOT NULL DEFAULT 0,
			truncated INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			actions TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_layout_id ON runs(layout_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(layout_id, found, cost);
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

// SaveRun records a run and returns it with ID and RunID filled in.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if run.Source == "" {
		run.Source = SourceSolve
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, layout_id, strategy, source, found, cost, expanded, truncated, duration_ms, actions)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.LayoutID,
		run.Strategy,
		run.Source,
		run.Found,
		run.Cost,
		run.Expanded,
		run.Truncated,
		run.Duration.Milliseconds(),
		strings.Join(run.Actions, "\n"),
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return run, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	run.ID = id

	return run, nil
}

const runColumns = `id, run_id, layout_id, strategy, source, found, cost, expanded, truncated, duration_ms, actions, created_at`

// RecentRuns retrieves the most recent runs across all layouts.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunsForLayout retrieves the most recent runs of one layout.
func (s *Store) RunsForLayout(layoutID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE layout_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		layoutID, limit,
	)
}

// BestRun returns the cheapest successful run for a layout, or nil if the
// layout was never solved.
func (s *Store) BestRun(layoutID string) (*Run, error) {
	runs, err := s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE layout_id = ? AND found = 1
		 ORDER BY cost ASC, expanded ASC, id ASC
		 LIMIT 1`,
		layoutID,
	)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// RunByID retrieves a run by its UUID.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// ClearRuns deletes all runs for the given layout. An empty ID clears
// everything.
func (s *Store) ClearRuns(layoutID string) error {
	var err error
	if layoutID == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE layout_id = ?", layoutID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LayoutStats contains aggregated statistics for a layout.
type LayoutStats struct {
	LayoutID    string
	Runs        int
	Solved      int
	BestCost    int // 0 when never solved
	AvgExpanded float64
	LastRun     time.Time
}

// GetLayoutStats retrieves aggregated statistics for a specific layout.
func (s *Store) GetLayoutStats(layoutID string) (*LayoutStats, error) {
	stats := &LayoutStats{LayoutID: layoutID}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(found), 0),
		        COALESCE(MIN(CASE WHEN found = 1 THEN cost END), 0),
		        COALESCE(AVG(expanded), 0), MAX(created_at)
		 FROM runs WHERE layout_id = ?`,
		layoutID,
	).Scan(&stats.Runs, &stats.Solved, &stats.BestCost, &stats.AvgExpanded, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get layout stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// GetAllLayoutStats retrieves statistics for every layout that has runs.
func (s *Store) GetAllLayoutStats() (map[string]*LayoutStats, error) {
	rows, err := s.db.Query(
		`SELECT layout_id, COUNT(*), SUM(found),
		        COALESCE(MIN(CASE WHEN found = 1 THEN cost END), 0),
		        AVG(expanded), MAX(created_at)
		 FROM runs
		 GROUP BY layout_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all layout stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LayoutStats)
	for rows.Next() {
		var st LayoutStats
		var lastRun any
		if err := rows.Scan(&st.LayoutID, &st.Runs, &st.Solved, &st.BestCost, &st.AvgExpanded, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.LayoutID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
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
	var (
		run        Run
		durationMS int64
		actions    string
		createdAt  any
	)
	err := sc.Scan(
		&run.ID,
		&run.RunID,
		&run.LayoutID,
		&run.Strategy,
		&run.Source,
		&run.Found,
		&run.Cost,
		&run.Expanded,
		&run.Truncated,
		&durationMS,
		&actions,
		&createdAt,
	)
	if err != nil {
		return run, err
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	if actions != "" {
		run.Actions = strings.Split(actions, "\n")
	}
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
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
