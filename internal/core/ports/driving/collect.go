package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
)

// Collector builds the database for one slice.
type Collector interface {
	// Collect extracts every diagnostic of the slice into its database.
	Collect(ctx context.Context, slice domain.Slice) (*SliceResult, error)
}

// FleetCollector builds the databases for every slice of a corpus.
type FleetCollector interface {
	// CollectAll collects all slices concurrently.
	// The result is returned even when some slices fail.
	CollectAll(ctx context.Context) (*FleetResult, error)
}

// SliceResult summarises one slice collection.
type SliceResult struct {
	// Slice is the label of the collected slice.
	Slice string

	// Database is the path of the slice database.
	Database string

	// Projects is the number of projects visited.
	Projects int

	// Files is the number of source files read.
	Files int

	// Diagnostics is the number of diagnostics stored.
	Diagnostics int

	// Sources is the number of source locations stored.
	Sources int

	// Duration is how long the collection took.
	Duration time.Duration
}

// FleetResult summarises a collection over many slices.
type FleetResult struct {
	// RunID identifies the run in logs.
	RunID string

	// Slices holds the result of every slice that succeeded.
	Slices []SliceResult

	// Failed maps slice labels to their errors.
	Failed map[string]error
}

// Diagnostics returns the total number of diagnostics collected.
func (r *FleetResult) Diagnostics() int {
	total := 0
	for _, s := range r.Slices {
		total += s.Diagnostics
	}
	return total
}
