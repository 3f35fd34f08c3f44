package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/services"
	"github.com/custodia-labs/errcorpus/internal/logger"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich DATABASE",
	Short: "Locate sources and classify the messages of a database",
	Long: `Fills the source and sanitized_messages tables of an existing database:
every diagnostic path is split into its slice, project and source file, and
every distinct message is matched against the javac catalog.

Rows already present are kept, so a database can be enriched repeatedly.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnrich,
}

// cacheStatser is implemented by classifiers that keep a lookup cache.
type cacheStatser interface {
	CacheStats() (hits, misses int64)
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	path := args[0]

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("enrich failed: %w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("enrich failed: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("enrich failed: %w: %s is a directory", domain.ErrInvalidInput, path)
	}

	d, err := dependencies()
	if err != nil {
		return err
	}

	result, err := services.NewEnricher(d.OpenStore).Enrich(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("enrich failed: %w", err)
	}

	cmd.Printf("Located %d sources, classified %d messages\n", result.Sources, result.Classified)
	if stats, ok := d.Classifier.(cacheStatser); ok && logger.IsVerbose() {
		hits, misses := stats.CacheStats()
		cmd.Printf("Classifier cache: %d hits, %d misses\n", hits, misses)
	}
	return nil
}
