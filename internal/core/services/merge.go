package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/errcorpus/internal/logger"
)

// Ensure DatabaseMerger implements the interface.
var _ driving.Merger = (*DatabaseMerger)(nil)

// DatabaseMerger combines slice databases into one, sequentially.
type DatabaseMerger struct {
	openStore driven.StoreFactory
}

// NewDatabaseMerger creates a merger.
func NewDatabaseMerger(openStore driven.StoreFactory) *DatabaseMerger {
	return &DatabaseMerger{openStore: openStore}
}

// Merge merges every input into target in order. Each input is merged
// atomically; on failure, inputs merged before it stay in target.
func (m *DatabaseMerger) Merge(ctx context.Context, target string, inputs []string) (*driving.MergeResult, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrNoDatabases
	}

	store, err := m.openStore(target)
	if err != nil {
		return nil, fmt.Errorf("open target: %w", err)
	}
	defer store.Close()

	if err := store.ApplySchema(ctx); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Debug("merging %s into %s", input, target)
		if err := store.MergeFrom(ctx, input); err != nil {
			return nil, fmt.Errorf("merge %s: %w", input, err)
		}
	}

	messages, err := store.CountMessages(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := store.CountSources(ctx)
	if err != nil {
		return nil, err
	}
	slices, err := store.Slices(ctx)
	if err != nil {
		return nil, err
	}

	return &driving.MergeResult{
		Target:      target,
		Inputs:      len(inputs),
		Diagnostics: messages,
		Sources:     sources,
		Slices:      slices,
	}, nil
}

// DiscoverInputs returns the slice databases in dir, sorted, excluding
// target. Returns domain.ErrNoDatabases if there are none.
func DiscoverInputs(dir, target string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, domain.DatabasePrefix+"*"+domain.DatabaseSuffix))
	if err != nil {
		return nil, fmt.Errorf("glob slice databases: %w", err)
	}

	targetAbs, _ := filepath.Abs(target)
	var inputs []string
	for _, match := range matches {
		if abs, _ := filepath.Abs(match); abs == targetAbs {
			continue
		}
		inputs = append(inputs, match)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoDatabases, dir)
	}

	sort.Strings(inputs)
	return inputs, nil
}
