package driving

import "context"

// Merger combines slice databases into one.
type Merger interface {
	// Merge merges inputs into target, in order.
	Merge(ctx context.Context, target string, inputs []string) (*MergeResult, error)
}

// MergeResult summarises a merge.
type MergeResult struct {
	Target      string
	Inputs      int
	Diagnostics int
	Sources     int
	Slices      []string
}

// EnrichmentService populates the derived tables of a database.
type EnrichmentService interface {
	// Enrich locates sources and classifies messages in the database at path.
	Enrich(ctx context.Context, path string) (*EnrichResult, error)
}

// EnrichResult summarises an enrichment.
type EnrichResult struct {
	Sources    int
	Classified int
}
