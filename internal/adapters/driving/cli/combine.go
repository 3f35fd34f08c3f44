package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/errcorpus/internal/core/services"
)

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Merge the slice databases into one",
	Long: `Merges every errors-*.sqlite3 slice database found in the input directory
into a single database. The target is rebuilt from scratch.

Slices are merged one after the other. A slice whose diagnostics are already
in the target fails the merge and leaves that slice out entirely.`,
	Args: cobra.NoArgs,
	RunE: runCombine,
}

func init() {
	combineCmd.Flags().StringP("out", "o", "", "combined database file")
	combineCmd.Flags().String("dir", "", "directory holding the slice databases")
	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	d, settings, err := loadSettings()
	if err != nil {
		return err
	}

	target := stringFlag(cmd, "out", settings.Combine.Output)
	dir := stringFlag(cmd, "dir", settings.Collect.OutputDir)

	inputs, err := services.DiscoverInputs(dir, target)
	if err != nil {
		return fmt.Errorf("combine failed: %w", err)
	}

	for _, suffix := range []string{"", "-journal", "-wal", "-shm"} {
		if err := os.Remove(target + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale database: %w", err)
		}
	}

	cmd.Printf("Combining %d slice databases into %s...\n", len(inputs), target)
	result, err := services.NewDatabaseMerger(d.OpenStore).Merge(cmd.Context(), target, inputs)
	if err != nil {
		return fmt.Errorf("combine failed: %w", err)
	}

	cmd.Printf("Combined %d databases: %d diagnostics from %d sources\n",
		result.Inputs, result.Diagnostics, result.Sources)
	if len(result.Slices) > 0 {
		cmd.Printf("Slices: %s\n", strings.Join(result.Slices, ", "))
	}
	return nil
}
