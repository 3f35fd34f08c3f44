package cli

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const sliceA = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<unit xmlns="http://www.srcML.org/srcML/src" revision="1.0.0" language="Java">
<unit compile-success="false" version="1">
<compile-error start="1:1" end="1:5">class, interface, or enum expected</compile-error>
<compile-error start="3:9" end="3:14">cannot find symbol -   variable scroogeMcduck</compile-error>
</unit>
<unit compile-success="true" version="2"></unit>
</unit>
`

const sliceB = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<unit xmlns="http://www.srcML.org/srcML/src" revision="1.0.0" language="Java">
<unit compile-success="false" version="7">
<compile-error start="2:1" end="2:9">not a statement</compile-error>
</unit>
</unit>
`

// setupCLI wires real adapters over a config file in a temp directory and
// returns a corpus root with two slices and an empty output directory.
func setupCLI(t *testing.T) (root, out string) {
	t.Helper()
	dir := t.TempDir()

	d, err := NewDependencies(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	old := deps
	SetDependencies(d)
	t.Cleanup(func() { SetDependencies(old) })

	root = filepath.Join(dir, "corpus")
	out = filepath.Join(dir, "out")
	writeFile(t, filepath.Join(root, "slice-a", "project-1", "source-1.xml"), sliceA)
	writeFile(t, filepath.Join(root, "slice-b", "project-2", "source-3.xml"), sliceB)
	require.NoError(t, os.MkdirAll(out, 0o755))
	return root, out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// execute runs the root command with args and returns everything printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default, since commands are
// package-level and keep parsed state between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.SilenceUsage = false
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func bufioReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
