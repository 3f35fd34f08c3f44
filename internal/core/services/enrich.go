package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/errcorpus/internal/logger"
)

// Ensure Enricher implements the interface.
var _ driving.EnrichmentService = (*Enricher)(nil)

// Enricher fills the derived tables of a corpus database.
type Enricher struct {
	openStore driven.StoreFactory
}

// NewEnricher creates an enricher.
func NewEnricher(openStore driven.StoreFactory) *Enricher {
	return &Enricher{openStore: openStore}
}

// Enrich locates every source and classifies every message of the database
// at path. Rows already present are kept, so enriching twice is harmless.
func (e *Enricher) Enrich(ctx context.Context, path string) (*driving.EnrichResult, error) {
	store, err := e.openStore(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.ApplySchema(ctx); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Section("Locating sources")
	sources, err := store.PopulateSourceLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("populate source locations: %w", err)
	}
	logger.Debug("located %d sources", sources)

	logger.Section("Classifying messages")
	classified, err := store.PopulateClassifiedMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("populate classified messages: %w", err)
	}
	logger.Debug("classified %d messages", classified)

	return &driving.EnrichResult{
		Sources:    sources,
		Classified: classified,
	}, nil
}
