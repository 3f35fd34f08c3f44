package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
)

// stubClassifier matches exactly one message.
type stubClassifier struct{}

func (stubClassifier) Classify(text string) domain.Classification {
	if text == "not a statement" {
		return domain.Classification{Kind: domain.MatchExact, CanonicalID: "compiler.err.not.stmt", SanitizedText: text}
	}
	return domain.Classification{Kind: domain.MatchNone, SanitizedText: text}
}

const (
	pathA = "c/slice-a/project-1/source-1.xml"
	pathB = "c/slice-b/project-2/source-3.xml"
)

func newStore(t *testing.T, r *Registry, path string) *DiagnosticStore {
	t.Helper()
	s := r.Open(path)
	require.NoError(t, s.ApplySchema(context.Background()))
	return s
}

func TestDiagnosticStore_RequiresSchema(t *testing.T) {
	s := NewDiagnosticStore("x", nil)
	err := s.InsertBatch(context.Background(), []domain.Diagnostic{{Path: pathA, Version: 1, Rank: 1}})
	assert.Error(t, err)
}

func TestDiagnosticStore_InsertBatch(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, NewRegistry(stubClassifier{}), "db")

	require.NoError(t, s.InsertBatch(ctx, []domain.Diagnostic{
		{Path: pathA, Version: 1, Rank: 1, Text: "not a statement"},
		{Path: pathA, Version: 1, Rank: 2, Text: "x"},
	}))

	t.Run("duplicate in batch rolls back", func(t *testing.T) {
		err := s.InsertBatch(ctx, []domain.Diagnostic{
			{Path: pathB, Version: 1, Rank: 1},
			{Path: pathB, Version: 1, Rank: 1},
		})
		require.ErrorIs(t, err, domain.ErrDuplicateKey)

		n, err := s.CountMessages(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("diagnostics are ordered by key", func(t *testing.T) {
		got := s.Diagnostics()
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Rank)
		assert.Equal(t, 2, got[1].Rank)
	})
}

func TestDiagnosticStore_Populate(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, NewRegistry(stubClassifier{}), "db")

	require.NoError(t, s.InsertBatch(ctx, []domain.Diagnostic{
		{Path: pathA, Version: 1, Rank: 1, Text: "not a statement"},
		{Path: pathA, Version: 1, Rank: 2, Text: "x"},
	}))

	located, err := s.PopulateSourceLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, located)

	slices, err := s.Slices(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, slices)

	classified, err := s.PopulateClassifiedMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, classified)

	m, ok := s.Classified("not a statement")
	require.True(t, ok)
	assert.Equal(t, "compiler.err.not.stmt", m.JavacName)

	m, ok = s.Classified("x")
	require.True(t, ok)
	assert.Empty(t, m.JavacName)

	classified, err = s.PopulateClassifiedMessages(ctx)
	require.NoError(t, err)
	assert.Zero(t, classified)
}

func TestDiagnosticStore_PopulateSourceLocations_Malformed(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, NewRegistry(nil), "db")

	require.NoError(t, s.InsertBatch(ctx, []domain.Diagnostic{
		{Path: pathA, Version: 1, Rank: 1},
		{Path: "bad/path.xml", Version: 1, Rank: 1},
	}))

	_, err := s.PopulateSourceLocations(ctx)
	require.ErrorIs(t, err, domain.ErrConventionViolation)

	n, err := s.CountSources(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDiagnosticStore_MergeFrom(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(nil)

	a := newStore(t, r, "a")
	require.NoError(t, a.InsertBatch(ctx, []domain.Diagnostic{{Path: pathA, Version: 1, Rank: 1}}))
	b := newStore(t, r, "b")
	require.NoError(t, b.InsertBatch(ctx, []domain.Diagnostic{{Path: pathB, Version: 1, Rank: 1}}))
	target := newStore(t, r, "target")

	require.NoError(t, target.MergeFrom(ctx, "a"))
	require.NoError(t, target.MergeFrom(ctx, "b"))

	n, err := target.CountMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	t.Run("overlap leaves target unchanged", func(t *testing.T) {
		err := target.MergeFrom(ctx, "a")
		require.ErrorIs(t, err, domain.ErrDuplicateKey)

		n, err := target.CountMessages(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, target.MergeFrom(ctx, "missing"), domain.ErrNotFound)
	})

	t.Run("self", func(t *testing.T) {
		assert.ErrorIs(t, target.MergeFrom(ctx, "target"), domain.ErrInvalidInput)
	})

	assert.Equal(t, []string{"a", "b", "target"}, r.Paths())
}

func TestRegistry_FactoryReopens(t *testing.T) {
	r := NewRegistry(nil)
	open := r.Factory()

	first, err := open("db")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := open("db")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.False(t, second.(*DiagnosticStore).Closed())
}
