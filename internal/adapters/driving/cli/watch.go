package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/errcorpus/internal/core/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Collect new slices as they appear",
	Long: `Watches the corpus root and collects every slice-* directory created
while watching, once it has been quiet for the settle delay
(watch.settle_ms). Slices present at startup are not collected.

Stops on interrupt.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("root", "", "corpus root holding the slice-* directories")
	watchCmd.Flags().String("out", "", "directory receiving the slice databases")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	d, settings, err := loadSettings()
	if err != nil {
		return err
	}

	root := stringFlag(cmd, "root", settings.Corpus.Root)
	outDir := stringFlag(cmd, "out", settings.Collect.OutputDir)

	navigator := d.Navigator(root)
	collector := services.NewSliceCollector(navigator, d.Extractor, d.OpenStore, outDir)

	report := func(label string, result *driving.SliceResult, err error) {
		if err != nil {
			cmd.PrintErrf("slice %s failed: %v\n", label, err)
			return
		}
		printSliceResult(cmd, result)
	}
	watcher := services.NewSliceWatcher(navigator, collector, settings.Watch.Settle, report)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for new slices (Ctrl+C to stop)...\n", root)
	if err := watcher.Watch(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
