package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/errcorpus/internal/classify"
	"github.com/custodia-labs/errcorpus/internal/core/domain"
)

// setupTestStore creates a store with the schema applied in a temp dir.
func setupTestStore(t *testing.T, name string) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), name), WithClassifier(classify.NewDefault()))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	require.NoError(t, store.ApplySchema(context.Background()))
	return store
}

func diagnostic(path string, version, rank int, text string) domain.Diagnostic {
	return domain.Diagnostic{
		Path:    path,
		Version: version,
		Rank:    rank,
		Start:   "1:1",
		End:     "1:2",
		Text:    text,
	}
}

const (
	pathA = "corpus/slice-2013-06/project-1/source-2.xml"
	pathB = "corpus/slice-2013-06/project-1/source-3.xml"
	pathC = "corpus/slice-2013-07/project-4/source-9.xml"
)

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "errors.sqlite3")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, path, store.Path())
	assert.FileExists(t, path)
}

func TestStore_ApplySchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, "errors.sqlite3")

	require.NoError(t, store.ApplySchema(ctx))
	require.NoError(t, store.ApplySchema(ctx))

	var versions int
	require.NoError(t, store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)

	n, err := store.CountMessages(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_InsertBatch(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, "errors.sqlite3")

	err := store.InsertBatch(ctx, []domain.Diagnostic{
		diagnostic(pathA, 1, 1, "not a statement"),
		diagnostic(pathA, 1, 2, "';' expected"),
		diagnostic(pathA, 2, 1, "not a statement"),
	})
	require.NoError(t, err)

	n, err := store.CountMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_InsertBatch_Empty(t *testing.T) {
	store := setupTestStore(t, "errors.sqlite3")
	assert.NoError(t, store.InsertBatch(context.Background(), nil))
}

func TestStore_InsertBatch_DuplicateRollsBack(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, "errors.sqlite3")

	require.NoError(t, store.InsertBatch(ctx, []domain.Diagnostic{
		diagnostic(pathA, 1, 1, "not a statement"),
	}))

	err := store.InsertBatch(ctx, []domain.Diagnostic{
		diagnostic(pathB, 1, 1, "not a statement"),
		diagnostic(pathA, 1, 1, "different text, same key"),
	})
	require.ErrorIs(t, err, domain.ErrDuplicateKey)

	// The earlier batch survives and the failed batch left nothing behind.
	n, err := store.CountMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_FirstMessages(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, "errors.sqlite3")

	require.NoError(t, store.InsertBatch(ctx, []domain.Diagnostic{
		diagnostic(pathA, 1, 1, "first"),
		diagnostic(pathA, 1, 2, "second"),
		diagnostic(pathA, 2, 1, "first of v2"),
		diagnostic(pathB, 1, 3, "no rank 1"),
	}))

	first, err := store.FirstMessages(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "first", first[0].Text)
	assert.Equal(t, "first of v2", first[1].Text)
	for _, d := range first {
		assert.True(t, d.IsFirst())
	}
}

func TestStore_PopulateSourceLocations(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, "errors.sqlite3")

	require.NoError(t, store.InsertBatch(ctx, []domain.Diagnostic{
		diagnostic(pathA, 1, 1, "a"),
		diagnostic(pathA, 1, 2, "b"),
		diagnostic(pathC, 1, 1, "c"),
	}))

	added, err := store.PopulateSourceLocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	t.Run("re-running adds nothing", func(t *testing.T) {
		added, err := store.PopulateSourceLocations(ctx)
		require.NoError(t, err)
		assert.Zero(t, added)
	})

	t.Run("locations are decomposed", func(t *testing.T) {
		var slice string
		var project, source int
		row := store.db.QueryRowContext(ctx, "SELECT slice, project_id, source_file_id FROM source WHERE srcml_path = ?", pathC)
		require.NoError(t, row.Scan(&slice, &project, &source))
		assert.Equal(t, "2013-07", slice)
		assert.Equal(t, 4, project)
		assert.Equal(t, 9, source)
	})

	t.Run("slices", func(t *testing.T) {
		slices, err := store.Slices(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"2013-06", "2013-07"}, slices)
	})
}

func TestStore_PopulateSourceLocations_MalformedPathIsFatal(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, "errors.sqlite3")

	require.NoError(t, store.InsertBatch(ctx, []domain.Diagnostic{
		diagnostic(pathA, 1, 1, "a"),
		diagnostic("corpus/slice-2013-06/project-x/source-1.xml", 1, 1, "b"),
	}))

	_, err := store.PopulateSourceLocations(ctx)
	require.ErrorIs(t, err, domain.ErrConventionViolation)

	n, err := store.CountSources(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "no location is written when any path is malformed")
}

func TestStore_PopulateClassifiedMessages(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t, "errors.sqlite3")

	require.NoError(t, store.InsertBatch(ctx, []domain.Diagnostic{
		diagnostic(pathA, 1, 1, "not a statement"),
		diagnostic(pathA, 1, 2, "cannot find symbol -   variable x"),
		diagnostic(pathB, 1, 1, "not a statement"),
		diagnostic(pathB, 1, 2, "';' expected"),
	}))

	added, err := store.PopulateClassifiedMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	messages, err := store.ClassifiedMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ClassifiedMessage{
		{Text: "';' expected", JavacName: "", SanitizedText: "';' expected"},
		{Text: "cannot find symbol -   variable x", JavacName: "compiler.err.cant.resolve", SanitizedText: "cannot find symbol -   variable scroogeMcduck"},
		{Text: "not a statement", JavacName: "compiler.err.not.stmt", SanitizedText: "not a statement"},
	}, messages)

	t.Run("unmatched javac_name is NULL", func(t *testing.T) {
		var name sql.NullString
		row := store.db.QueryRowContext(ctx, "SELECT javac_name FROM sanitized_messages WHERE text = ?", "';' expected")
		require.NoError(t, row.Scan(&name))
		assert.False(t, name.Valid)
	})

	t.Run("re-running adds nothing", func(t *testing.T) {
		require.NoError(t, store.InsertBatch(ctx, []domain.Diagnostic{
			diagnostic(pathC, 1, 1, "not a statement"),
			diagnostic(pathC, 1, 2, "missing return statement"),
		}))

		added, err := store.PopulateClassifiedMessages(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, added)

		n, err := store.CountClassified(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})
}

func TestStore_PopulateClassifiedMessages_NoClassifier(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "errors.sqlite3"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.ApplySchema(ctx))

	_, err = store.PopulateClassifiedMessages(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
