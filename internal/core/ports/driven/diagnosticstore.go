package driven

import (
	"context"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
)

// DiagnosticStore persists diagnostics and the tables derived from them.
// Backed by SQLite; one store per database file.
type DiagnosticStore interface {
	// ApplySchema creates the tables and views. Safe to call repeatedly.
	ApplySchema(ctx context.Context) error

	// InsertBatch stores diagnostics in a single transaction.
	// A key collision rolls back the whole batch and wraps domain.ErrDuplicateKey.
	InsertBatch(ctx context.Context, diagnostics []domain.Diagnostic) error

	// PopulateSourceLocations decomposes every path not yet located.
	// Returns the number of rows added.
	PopulateSourceLocations(ctx context.Context) (int, error)

	// PopulateClassifiedMessages classifies every text not yet classified.
	// Returns the number of rows added.
	PopulateClassifiedMessages(ctx context.Context) (int, error)

	// MergeFrom copies the diagnostics and locations of another database
	// file into this one, atomically.
	MergeFrom(ctx context.Context, path string) error

	// CountMessages returns the number of stored diagnostics.
	CountMessages(ctx context.Context) (int, error)

	// CountSources returns the number of located paths.
	CountSources(ctx context.Context) (int, error)

	// Slices returns the distinct slice labels of the located paths, sorted.
	Slices(ctx context.Context) ([]string, error)

	// CountClassified returns the number of classified texts.
	CountClassified(ctx context.Context) (int, error)

	// Path returns the database file path.
	Path() string

	// Close releases the database.
	Close() error
}

// StoreFactory opens the DiagnosticStore for a database file, creating the
// file if needed.
type StoreFactory func(path string) (DiagnosticStore, error)
