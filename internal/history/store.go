// Package history keeps a SQLite log of merge runs.
package history

import (
	"context"
	"time"
)

// Run is one finished merge.
type Run struct {
	ID          int64
	BuildID     string
	StartedAt   time.Time
	Duration    time.Duration
	Mode        string
	Files       int
	Unanchored  int
	Output      string
	Fingerprint string
	Revision    string
	Outcome     string
	Error       string
}

// Store persists runs.
type Store interface {
	// Record appends a run.
	Record(ctx context.Context, run Run) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Close releases the database.
	Close() error
}
