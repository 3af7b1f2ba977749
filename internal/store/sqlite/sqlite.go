// Package sqlite persists named simulation runs: the scenario that was
// run, its window and the resulting summary. Use ":memory:" as the path
// for an in-memory database in tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Olliwn/truth-engine-sub001/internal/domain"
)

// SavedRun is one persisted simulation run.
type SavedRun struct {
	ID        int64                 `json:"id"`
	Name      string                `json:"name"`
	Scenario  domain.ScenarioConfig `json:"scenario"`
	StartYear int                   `json:"startYear"`
	EndYear   int                   `json:"endYear"`
	Summary   domain.Summary        `json:"summary"`
	CreatedAt time.Time             `json:"createdAt"`
}

// Store is a SQLite-backed run store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the run database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		scenario_json TEXT NOT NULL,
		start_year INTEGER NOT NULL,
		end_year INTEGER NOT NULL,
		summary_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_name ON runs(name);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun persists one run and returns its id.
func (s *Store) SaveRun(ctx context.Context, name string, scenario domain.ScenarioConfig, result *domain.SimulationResult) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("run name is required")
	}

	scenarioJSON, err := json.Marshal(scenario)
	if err != nil {
		return 0, fmt.Errorf("failed to encode scenario: %w", err)
	}
	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return 0, fmt.Errorf("failed to encode summary: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (name, scenario_json, start_year, end_year, summary_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		name, string(scenarioJSON), result.StartYear, result.EndYear,
		string(summaryJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// GetRun loads one run by id.
func (s *Store) GetRun(ctx context.Context, id int64) (*SavedRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, scenario_json, start_year, end_year, summary_json, created_at
		 FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	return run, err
}

// ListRuns returns all saved runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]SavedRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, scenario_json, start_year, end_year, summary_json, created_at
		 FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []SavedRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// DeleteRun removes one run by id.
func (s *Store) DeleteRun(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("run %d not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*SavedRun, error) {
	var run SavedRun
	var scenarioJSON, summaryJSON, createdAt string

	err := row.Scan(&run.ID, &run.Name, &scenarioJSON, &run.StartYear, &run.EndYear, &summaryJSON, &createdAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(scenarioJSON), &run.Scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &run.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &run, nil
}
