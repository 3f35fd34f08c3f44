package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/errcorpus/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

var (
	verbose    bool
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "errcorpus",
	Short: "Build a database of compiler diagnostics from a srcML corpus",
	Long: `errcorpus walks a corpus of srcML-annotated student submissions,
extracts the compiler errors recorded on every failed compilation and stores
them in SQLite databases: one per slice, later combined into one.

The corpus is laid out as slice-<label>/project-<id>/source-<id>.xml.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.errcorpus/config.toml)")
}

// Execute runs the command selected by the process arguments.
func Execute() error {
	return rootCmd.Execute()
}
