package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"mediashelf/internal/config"
)

// Kind labels the two run types recorded in history.
type Kind string

const (
	KindApply    Kind = "apply"
	KindRollback Kind = "rollback"
)

// Run is one recorded apply or rollback run.
type Run struct {
	ID          int64     `json:"id"`
	Kind        Kind      `json:"kind"`
	JournalPath string    `json:"journal"`
	Total       int       `json:"total"`
	Committed   int       `json:"committed"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
	Quarantined int       `json:"quarantined"`
	Status      string    `json:"status"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Store persists run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
	keep int
}

// Open initializes or connects to the history database under the configured
// log directory.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := cfg.HistoryDBPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, keep: cfg.History.Keep}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordRun inserts one run and prunes old rows past the configured keep
// limit. The inserted row id is returned.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO runs (kind, journal_path, total, committed, failed, skipped, quarantined, status, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(run.Kind), run.JournalPath,
		run.Total, run.Committed, run.Failed, run.Skipped, run.Quarantined,
		run.Status,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted run id: %w", err)
	}

	if err := s.prune(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// List returns the most recent runs, newest first. A limit <= 0 returns all
// rows.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
        SELECT id, kind, journal_path, total, committed, failed, skipped, quarantined, status, started_at, finished_at
        FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (s *Store) prune(ctx context.Context) error {
	if s.keep <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
        DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY id DESC LIMIT ?
        )`, s.keep)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run      Run
		kind     string
		started  string
		finished string
	)
	if err := rows.Scan(
		&run.ID, &kind, &run.JournalPath,
		&run.Total, &run.Committed, &run.Failed, &run.Skipped, &run.Quarantined,
		&run.Status, &started, &finished,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Kind = Kind(kind)

	var err error
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return run, nil
}
