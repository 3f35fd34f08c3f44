package srcml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
)

const failedUnit = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<unit xmlns="http://www.srcML.org/srcML/src" revision="1.0.0" language="Java" filename="Duck.java">
<unit compile-success="false" version="3">
<compile-error start="1:1" end="1:5">class, interface, or enum expected</compile-error>
<compile-error start="4:2" end="4:9">cannot find symbol -   variable x</compile-error>
<compile-error start="7:1" end="7:1">constructor Duck in class Duck cannot be applied to given types;\n  required: no arguments</compile-error>
<class>class <name>Duck</name> <block>{}</block></class>
</unit>
<unit compile-success="true" version="4">
<class>class <name>Duck</name> <block>{}</block></class>
</unit>
</unit>
`

func TestParse_FailedUnit(t *testing.T) {
	got, err := Parse(strings.NewReader(failedUnit), "slice-a/project-1/source-2.xml")
	require.NoError(t, err)

	want := []domain.Diagnostic{
		{Path: "slice-a/project-1/source-2.xml", Version: 3, Rank: 1, Start: "1:1", End: "1:5", Text: "class, interface, or enum expected"},
		{Path: "slice-a/project-1/source-2.xml", Version: 3, Rank: 2, Start: "4:2", End: "4:9", Text: "cannot find symbol -   variable x"},
		{Path: "slice-a/project-1/source-2.xml", Version: 3, Rank: 3, Start: "7:1", End: "7:1", Text: "constructor Duck in class Duck cannot be applied to given types;\n  required: no arguments"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, got[0].IsFirst())
}

func TestParse_RanksRestartPerUnit(t *testing.T) {
	doc := `<unit>
<unit compile-success="false" version="1"><compile-error start="1:1" end="1:2">a</compile-error><compile-error start="2:1" end="2:2">b</compile-error></unit>
<unit compile-success="false" version="2"><compile-error start="3:1" end="3:2">c</compile-error></unit>
</unit>`

	got, err := Parse(strings.NewReader(doc), "p")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, domain.Key{Path: "p", Version: 1, Rank: 1}, got[0].Key())
	assert.Equal(t, domain.Key{Path: "p", Version: 1, Rank: 2}, got[1].Key())
	assert.Equal(t, domain.Key{Path: "p", Version: 2, Rank: 1}, got[2].Key())
}

func TestParse_SuccessfulUnitsYieldNothing(t *testing.T) {
	doc := `<unit>
<unit compile-success="true" version="1"><compile-error start="1:1" end="1:2">stale</compile-error></unit>
<unit version="2"><compile-error start="1:1" end="1:2">no flag</compile-error></unit>
</unit>`

	got, err := Parse(strings.NewReader(doc), "p")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParse_OnlyDirectChildren(t *testing.T) {
	doc := `<unit compile-success="false" version="5">
<block><compile-error start="9:9" end="9:9">nested</compile-error></block>
<compile-error start="1:1" end="1:1">direct</compile-error>
</unit>`

	got, err := Parse(strings.NewReader(doc), "p")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "direct", got[0].Text)
	assert.Equal(t, 1, got[0].Rank)
}

func TestParse_MissingPositions(t *testing.T) {
	doc := `<unit compile-success="false" version="1"><compile-error>missing return statement</compile-error></unit>`

	got, err := Parse(strings.NewReader(doc), "p")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Start)
	assert.Empty(t, got[0].End)
	assert.Equal(t, "missing return statement", got[0].Text)
}

func TestParse_EntitiesAndEscapes(t *testing.T) {
	doc := `<unit compile-success="false" version="1"><compile-error start="1:1" end="1:1">bad operand types for binary operator '&amp;&amp;'\n  first type:  int</compile-error></unit>`

	got, err := Parse(strings.NewReader(doc), "p")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bad operand types for binary operator '&&'\n  first type:  int", got[0].Text)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "truncated", doc: `<unit compile-success="false" version="1"><compile-error>not a statement</compile-error>`},
		{name: "mismatched tags", doc: `<unit><compile-error></unit></compile-error>`},
		{name: "not xml", doc: `this is not xml <<<`},
		{name: "missing version", doc: `<unit compile-success="false"><compile-error>x</compile-error></unit>`},
		{name: "bad version", doc: `<unit compile-success="false" version="three"><compile-error>x</compile-error></unit>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.doc), "p")
			require.ErrorIs(t, err, domain.ErrMalformedRecord)
			assert.Nil(t, got)
		})
	}
}

func TestParse_FailedUnitWithoutErrorsNeedsNoVersion(t *testing.T) {
	got, err := Parse(strings.NewReader(`<unit compile-success="false"/>`), "p")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractor_ExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source-1.xml")
	require.NoError(t, os.WriteFile(path, []byte(failedUnit), 0o600))

	got := New().ExtractFile(path)
	require.Len(t, got, 3)
	for _, d := range got {
		assert.Equal(t, path, d.Path)
	}
}

func TestExtractor_ExtractFile_Unreadable(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "source-1.xml")
	require.NoError(t, os.WriteFile(bad, []byte(`<unit compile-success="false" version="1">`), 0o600))

	e := New()
	assert.Nil(t, e.ExtractFile(bad))
	assert.Nil(t, e.ExtractFile(filepath.Join(dir, "missing.xml")))
}
