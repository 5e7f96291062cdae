package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens a run history database. ":memory:" gives a private
// in-memory database.
func Open(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, ErrDatabaseOpenFailed.WithContext("path", dbPath).WithContext("cause", err.Error())
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, ErrInitializeSchemaFailed.WithContext("path", dbPath).WithContext("cause", err.Error())
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		mode TEXT NOT NULL,
		files INTEGER NOT NULL,
		unanchored INTEGER NOT NULL,
		output TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		revision TEXT NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_build_id ON runs(build_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record adds a run to the store.
func (s *SQLiteStore) Record(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (build_id, started_at, duration_ms, mode, files, unanchored, output, fingerprint, revision, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.BuildID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.Mode, run.Files, run.Unanchored,
		run.Output, run.Fingerprint, run.Revision, run.Outcome, run.Error,
	)
	if err != nil {
		return ErrRecordFailed.WithContext("build_id", run.BuildID).WithContext("cause", err.Error())
	}
	return nil
}

// Recent returns the latest runs, newest first. limit <= 0 returns all.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, build_id, started_at, duration_ms, mode, files, unanchored, output, fingerprint, revision, outcome, error
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, ErrQueryFailed.WithContext("cause", err.Error())
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedMS, durationMS int64
		if err := rows.Scan(&r.ID, &r.BuildID, &startedMS, &durationMS, &r.Mode, &r.Files, &r.Unanchored,
			&r.Output, &r.Fingerprint, &r.Revision, &r.Outcome, &r.Error); err != nil {
			return nil, ErrQueryFailed.WithContext("cause", fmt.Sprintf("scan run: %v", err))
		}
		r.StartedAt = time.UnixMilli(startedMS)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrQueryFailed.WithContext("cause", err.Error())
	}
	return runs, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
