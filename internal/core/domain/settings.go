package domain

import (
	"fmt"
	"time"
)

// AppSettings holds the resolved application configuration.
type AppSettings struct {
	// Corpus locates the corpus on disk.
	Corpus CorpusSettings

	// Collect holds slice collection settings.
	Collect CollectSettings

	// Combine holds merge settings.
	Combine CombineSettings

	// Classify holds classifier settings.
	Classify ClassifySettings

	// Watch holds slice watcher settings.
	Watch WatchSettings
}

// CorpusSettings locates the corpus.
type CorpusSettings struct {
	// Root is the directory holding the slice-* directories.
	Root string
}

// CollectSettings configures slice collection.
type CollectSettings struct {
	// Jobs bounds parallel slice collection. 0 means one per CPU.
	Jobs int

	// OutputDir receives the slice databases.
	OutputDir string
}

// CombineSettings configures merging.
type CombineSettings struct {
	// Output is the combined database file.
	Output string
}

// ClassifySettings configures the message classifier.
type ClassifySettings struct {
	// CacheSize bounds the classification cache.
	CacheSize int
}

// WatchSettings configures the slice watcher.
type WatchSettings struct {
	// Settle is how long a new slice must be quiet before it is collected.
	Settle time.Duration
}

// DefaultAppSettings returns settings with sensible defaults.
// Paths are relative to the working directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Corpus:   CorpusSettings{Root: "."},
		Collect:  CollectSettings{Jobs: 0, OutputDir: "."},
		Combine:  CombineSettings{Output: "errors" + DatabaseSuffix},
		Classify: ClassifySettings{CacheSize: 1024},
		Watch:    WatchSettings{Settle: 2 * time.Second},
	}
}

// Validate checks the settings for values no component accepts.
func (s AppSettings) Validate() error {
	switch {
	case s.Corpus.Root == "":
		return fmt.Errorf("%w: corpus root is empty", ErrInvalidInput)
	case s.Collect.Jobs < 0:
		return fmt.Errorf("%w: collect jobs must not be negative, got %d", ErrInvalidInput, s.Collect.Jobs)
	case s.Collect.OutputDir == "":
		return fmt.Errorf("%w: collect output directory is empty", ErrInvalidInput)
	case s.Combine.Output == "":
		return fmt.Errorf("%w: combine output is empty", ErrInvalidInput)
	case s.Classify.CacheSize < 0:
		return fmt.Errorf("%w: classify cache size must not be negative, got %d", ErrInvalidInput, s.Classify.CacheSize)
	case s.Watch.Settle < 0:
		return fmt.Errorf("%w: watch settle delay must not be negative", ErrInvalidInput)
	}
	return nil
}
