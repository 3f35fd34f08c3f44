package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/errcorpus/internal/core/services"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect diagnostics into per-slice databases",
	Long: `Extracts every compiler diagnostic of the corpus into one database per
slice, named errors-<label>.sqlite3. Slices are collected in parallel.

A slice database is rebuilt from scratch on every run. A failing slice does
not stop the others; the command exits non-zero if any slice failed.`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().String("slice", "", "collect only the slice with this label")
	collectCmd.Flags().IntP("jobs", "j", 0, "number of slices collected at once (default one per CPU)")
	collectCmd.Flags().String("out", "", "directory receiving the slice databases")
	collectCmd.Flags().String("root", "", "corpus root holding the slice-* directories")
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	d, settings, err := loadSettings()
	if err != nil {
		return err
	}

	root := stringFlag(cmd, "root", settings.Corpus.Root)
	outDir := stringFlag(cmd, "out", settings.Collect.OutputDir)
	jobs := settings.Collect.Jobs
	if cmd.Flags().Changed("jobs") {
		jobs, _ = cmd.Flags().GetInt("jobs")
		if jobs < 0 {
			return errors.New("--jobs must not be negative")
		}
	}

	navigator := d.Navigator(root)
	collector := services.NewSliceCollector(navigator, d.Extractor, d.OpenStore, outDir)

	if label, _ := cmd.Flags().GetString("slice"); label != "" {
		slice, err := navigator.SliceByLabel(label)
		if err != nil {
			return fmt.Errorf("collect failed: %w", err)
		}
		result, err := collector.Collect(cmd.Context(), slice)
		if err != nil {
			return fmt.Errorf("collect failed: slice %s: %w", label, err)
		}
		printSliceResult(cmd, result)
		return nil
	}

	slices, err := navigator.Slices()
	if err != nil {
		return fmt.Errorf("collect failed: %w", err)
	}
	if len(slices) == 0 {
		cmd.Printf("No slices found under %s\n", root)
		return nil
	}

	fleet := services.NewFleetOrchestrator(navigator, collector,
		services.WithJobs(jobs),
		services.WithReporter(progressReporter(cmd.OutOrStdout(), len(slices))),
	)

	cmd.Printf("Collecting %d slices with %d jobs...\n", len(slices), fleet.Jobs())
	result, err := fleet.Collect(cmd.Context(), slices)
	if result != nil {
		for i := range result.Slices {
			printSliceResult(cmd, &result.Slices[i])
		}
		cmd.Printf("Collected %d slices, %d diagnostics (run %s)\n",
			len(result.Slices), result.Diagnostics(), result.RunID)
		printFailures(cmd, result)
	}
	if err != nil {
		return fmt.Errorf("collect failed: %w", err)
	}
	return nil
}

func printSliceResult(cmd *cobra.Command, r *driving.SliceResult) {
	cmd.Printf("  %s: %d projects, %d files, %d diagnostics -> %s\n",
		r.Slice, r.Projects, r.Files, r.Diagnostics, r.Database)
}

func printFailures(cmd *cobra.Command, r *driving.FleetResult) {
	if len(r.Failed) == 0 {
		return
	}
	labels := make([]string, 0, len(r.Failed))
	for label := range r.Failed {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	cmd.Printf("%d slices failed:\n", len(labels))
	for _, label := range labels {
		cmd.Printf("  %s: %v\n", label, r.Failed[label])
	}
}

// stringFlag returns the flag value if it was given, fallback otherwise.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}
