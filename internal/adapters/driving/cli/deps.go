package cli

import (
	"fmt"

	"github.com/custodia-labs/errcorpus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/errcorpus/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/errcorpus/internal/classify"
	"github.com/custodia-labs/errcorpus/internal/connectors/corpus"
	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
	"github.com/custodia-labs/errcorpus/internal/core/services"
	"github.com/custodia-labs/errcorpus/internal/extractors/srcml"
	"github.com/custodia-labs/errcorpus/internal/logger"
)

// Dependencies are the adapters the commands run on.
type Dependencies struct {
	Settings   driving.SettingsService
	Classifier driven.MessageClassifier
	Extractor  driven.DiagnosticExtractor
	OpenStore  driven.StoreFactory
	Navigator  func(root string) driven.CorpusNavigator
}

// deps holds the current dependencies; nil until first needed.
var deps *Dependencies

// SetDependencies replaces the dependencies the commands run on.
func SetDependencies(d *Dependencies) {
	deps = d
}

// NewDependencies wires the SQLite store, the srcML extractor and the javac
// catalog. An empty configPath uses the default config file.
func NewDependencies(configPath string) (*Dependencies, error) {
	var (
		store *file.ConfigStore
		err   error
	)
	if configPath != "" {
		store, err = file.NewConfigStoreFile(configPath)
	} else {
		store, err = file.NewConfigStore("")
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	settingsService := services.NewSettingsService(store)

	// Invalid settings must not stop `settings set` from repairing them;
	// commands that need the settings report the error themselves.
	cacheSize := classify.DefaultCacheSize
	if settings, err := settingsService.Get(); err == nil {
		cacheSize = settings.Classify.CacheSize
	} else {
		logger.Debug("using default classifier cache: %v", err)
	}

	classifier, err := classify.New(classify.DefaultCatalog(), cacheSize)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	return &Dependencies{
		Settings:   settingsService,
		Classifier: classifier,
		Extractor:  srcml.New(),
		OpenStore: func(path string) (driven.DiagnosticStore, error) {
			s, err := sqlite.Open(path, sqlite.WithClassifier(classifier))
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		Navigator: func(root string) driven.CorpusNavigator {
			return corpus.New(root)
		},
	}, nil
}

// dependencies returns the current dependencies, wiring them on first use.
func dependencies() (*Dependencies, error) {
	if deps == nil {
		d, err := NewDependencies(configFile)
		if err != nil {
			return nil, err
		}
		deps = d
	}
	return deps, nil
}

// loadSettings returns the dependencies together with the resolved settings.
func loadSettings() (*Dependencies, *domain.AppSettings, error) {
	d, err := dependencies()
	if err != nil {
		return nil, nil, err
	}
	settings, err := d.Settings.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return d, settings, nil
}
