package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/errcorpus/internal/logger"
)

// Ensure SliceCollector implements the interface.
var _ driving.Collector = (*SliceCollector)(nil)

// SliceCollector builds the database of one slice.
type SliceCollector struct {
	navigator driven.CorpusNavigator
	extractor driven.DiagnosticExtractor
	openStore driven.StoreFactory
	outputDir string
}

// NewSliceCollector creates a collector writing slice databases to outputDir.
func NewSliceCollector(
	navigator driven.CorpusNavigator,
	extractor driven.DiagnosticExtractor,
	openStore driven.StoreFactory,
	outputDir string,
) *SliceCollector {
	return &SliceCollector{
		navigator: navigator,
		extractor: extractor,
		openStore: openStore,
		outputDir: outputDir,
	}
}

// DatabasePath returns the database file for slice.
func (c *SliceCollector) DatabasePath(slice domain.Slice) string {
	return filepath.Join(c.outputDir, slice.DatabaseName())
}

// Collect regenerates the slice database from scratch.
//
// Each project is inserted as one batch. A failed batch fails the slice;
// batches of earlier projects have already been committed, and the next run
// deletes the database and starts over.
func (c *SliceCollector) Collect(ctx context.Context, slice domain.Slice) (*driving.SliceResult, error) {
	start := time.Now()
	dbPath := c.DatabasePath(slice)

	if err := os.Remove(dbPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove stale database: %w", err)
	}

	store, err := c.openStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.ApplySchema(ctx); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	projects, err := c.navigator.Projects(slice)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	result := &driving.SliceResult{
		Slice:    slice.Label,
		Database: dbPath,
	}

	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		files, err := c.navigator.SourceFiles(project)
		if err != nil {
			return nil, fmt.Errorf("list source files: %w", err)
		}

		var batch []domain.Diagnostic
		for _, file := range files {
			batch = append(batch, c.extractor.ExtractFile(file)...)
		}

		if err := store.InsertBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("insert project %s: %w", project.ID, err)
		}

		logger.Debug("slice %s project %s: %d files, %d diagnostics", slice.Label, project.ID, len(files), len(batch))
		result.Projects++
		result.Files += len(files)
		result.Diagnostics += len(batch)
	}

	located, err := store.PopulateSourceLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("populate source locations: %w", err)
	}
	result.Sources = located
	result.Duration = time.Since(start)

	return result, nil
}
