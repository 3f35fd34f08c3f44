package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCorpusRoot       = "corpus.root"
	keyCollectJobs      = "collect.jobs"
	keyCollectOutputDir = "collect.output_dir"
	keyCombineOutput    = "combine.output"
	keyClassifyCache    = "classify.cache_size"
	keyWatchSettleMS    = "watch.settle_ms"
)

// EnvPrefix prefixes the environment variable of every setting:
// collect.jobs is read from ERRCORPUS_COLLECT_JOBS.
const EnvPrefix = "ERRCORPUS_"

// intKeys are the settings holding integers.
var intKeys = map[string]bool{
	keyCollectJobs:   true,
	keyClassifyCache: true,
	keyWatchSettleMS: true,
}

// SettingsService resolves settings from the environment, the config file
// and defaults, in that order.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service reading the process
// environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Keys returns the recognised setting keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := []string{
		keyCorpusRoot,
		keyCollectJobs,
		keyCollectOutputDir,
		keyCombineOutput,
		keyClassifyCache,
		keyWatchSettleMS,
	}
	sort.Strings(keys)
	return keys
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	jobs, err := s.getInt(keyCollectJobs, defaults.Collect.Jobs)
	if err != nil {
		return nil, err
	}
	cacheSize, err := s.getInt(keyClassifyCache, defaults.Classify.CacheSize)
	if err != nil {
		return nil, err
	}
	settleMS, err := s.getInt(keyWatchSettleMS, int(defaults.Watch.Settle/time.Millisecond))
	if err != nil {
		return nil, err
	}

	settings := &domain.AppSettings{
		Corpus: domain.CorpusSettings{
			Root: s.getString(keyCorpusRoot, defaults.Corpus.Root),
		},
		Collect: domain.CollectSettings{
			Jobs:      jobs,
			OutputDir: s.getString(keyCollectOutputDir, defaults.Collect.OutputDir),
		},
		Combine: domain.CombineSettings{
			Output: s.getString(keyCombineOutput, defaults.Combine.Output),
		},
		Classify: domain.ClassifySettings{
			CacheSize: cacheSize,
		},
		Watch: domain.WatchSettings{
			Settle: time.Duration(settleMS) * time.Millisecond,
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Set stores a setting in the config file. Integer settings must parse
// as non-negative integers.
func (s *SettingsService) Set(key, value string) error {
	if !s.known(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if intKeys[key] {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer, got %q", domain.ErrInvalidInput, key, value)
		}
		if err := s.configStore.Set(key, n); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	}

	if value == "" {
		return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) known(key string) bool {
	for _, k := range s.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	if val, ok := s.lookupEnv(EnvVar(key)); ok && val != "" {
		return val
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) (int, error) {
	if val, ok := s.lookupEnv(EnvVar(key)); ok && val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not an integer: %q", domain.ErrInvalidInput, EnvVar(key), val)
		}
		return n, nil
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal, nil
	}
	return s.configStore.GetInt(key), nil
}
