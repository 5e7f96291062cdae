package history

// Sentinel errors for run history operations.

import (
	"git.home.luguber.info/inful/docmerge/internal/foundation/errors"
)

var (
	// ErrDatabaseOpenFailed indicates the SQLite database could not be opened.
	ErrDatabaseOpenFailed = errors.HistoryError("could not open run history database").Build()

	// ErrInitializeSchemaFailed indicates the database schema could not be initialized.
	ErrInitializeSchemaFailed = errors.HistoryError("failed to initialize run history schema").Build()

	// ErrRecordFailed indicates inserting a run failed.
	ErrRecordFailed = errors.HistoryError("failed to record run").Build()

	// ErrQueryFailed indicates reading runs failed.
	ErrQueryFailed = errors.HistoryError("failed to query run history").Build()
)
