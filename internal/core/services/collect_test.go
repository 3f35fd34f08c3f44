package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/errcorpus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/errcorpus/internal/connectors/corpus"
	"github.com/custodia-labs/errcorpus/internal/core/domain"
)

func sliceCorpus(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeCorpus(t, root, map[string]string{
		"slice-a/project-1/source-1.xml": "",
		"slice-a/project-1/source-2.xml": "",
		"slice-a/project-2/source-1.xml": "",
		"slice-a/project-3/":             "",
		"slice-a/project-4":              "not a directory",
	})
	return root
}

func TestSliceCollector_Collect(t *testing.T) {
	ctx := context.Background()
	root := sliceCorpus(t)
	out := t.TempDir()
	registry := memory.NewRegistry(stubClassifier{})
	nav := corpus.New(root)

	collector := NewSliceCollector(nav, stubExtractor{}, registry.Factory(), out)

	slice, err := nav.SliceByLabel("a")
	require.NoError(t, err)

	result, err := collector.Collect(ctx, slice)
	require.NoError(t, err)

	assert.Equal(t, "a", result.Slice)
	assert.Equal(t, filepath.Join(out, "errors-a.sqlite3"), result.Database)
	assert.Equal(t, 3, result.Projects)
	assert.Equal(t, 3, result.Files)
	assert.Equal(t, 3, result.Diagnostics)
	assert.Equal(t, 3, result.Sources)

	store := registry.Open(result.Database)
	n, err := store.CountMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSliceCollector_Collect_ClosesStore(t *testing.T) {
	registry := memory.NewRegistry(nil)
	nav := corpus.New(sliceCorpus(t))
	collector := NewSliceCollector(nav, stubExtractor{}, registry.Factory(), t.TempDir())

	slice, err := nav.SliceByLabel("a")
	require.NoError(t, err)
	result, err := collector.Collect(context.Background(), slice)
	require.NoError(t, err)

	store, ok := registry.Lookup(result.Database)
	require.True(t, ok)
	assert.True(t, store.Closed())
}

func TestSliceCollector_Collect_BatchFailureFailsSlice(t *testing.T) {
	nav := corpus.New(sliceCorpus(t))
	collector := NewSliceCollector(nav, stubExtractor{sameKey: true}, memory.NewRegistry(nil).Factory(), t.TempDir())

	slice, err := nav.SliceByLabel("a")
	require.NoError(t, err)

	_, err = collector.Collect(context.Background(), slice)
	require.ErrorIs(t, err, domain.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "project 1")
}

func TestSliceCollector_Collect_NotASlice(t *testing.T) {
	root := sliceCorpus(t)
	collector := NewSliceCollector(corpus.New(root), stubExtractor{}, memory.NewRegistry(nil).Factory(), t.TempDir())

	_, err := collector.Collect(context.Background(), domain.Slice{Label: "x", Path: root})
	assert.ErrorIs(t, err, domain.ErrConventionViolation)
}

func TestSliceCollector_Collect_Cancelled(t *testing.T) {
	nav := corpus.New(sliceCorpus(t))
	collector := NewSliceCollector(nav, stubExtractor{}, memory.NewRegistry(nil).Factory(), t.TempDir())

	slice, err := nav.SliceByLabel("a")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = collector.Collect(ctx, slice)
	assert.ErrorIs(t, err, context.Canceled)
}
