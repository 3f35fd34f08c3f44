package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driven"
)

// Ensure DiagnosticStore implements the interface.
var _ driven.DiagnosticStore = (*DiagnosticStore)(nil)

// DiagnosticStore is an in-memory implementation of driven.DiagnosticStore.
// Stores opened through the same Registry can be merged into each other.
type DiagnosticStore struct {
	mu          sync.RWMutex
	path        string
	registry    *Registry
	classifier  driven.MessageClassifier
	schema      bool
	closed      bool
	diagnostics map[domain.Key]domain.Diagnostic
	sources     map[string]domain.SourceLocation
	classified  map[string]domain.ClassifiedMessage
}

// NewDiagnosticStore creates a standalone in-memory diagnostic store.
func NewDiagnosticStore(path string, classifier driven.MessageClassifier) *DiagnosticStore {
	return &DiagnosticStore{
		path:        path,
		classifier:  classifier,
		diagnostics: make(map[domain.Key]domain.Diagnostic),
		sources:     make(map[string]domain.SourceLocation),
		classified:  make(map[string]domain.ClassifiedMessage),
	}
}

// Path returns the path the store was opened for.
func (s *DiagnosticStore) Path() string {
	return s.path
}

// ApplySchema marks the store ready. Safe to call repeatedly.
func (s *DiagnosticStore) ApplySchema(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schema = true
	return nil
}

func (s *DiagnosticStore) ready() error {
	if s.closed {
		return fmt.Errorf("store %s is closed", s.path)
	}
	if !s.schema {
		return fmt.Errorf("store %s: schema not applied", s.path)
	}
	return nil
}

// InsertBatch stores diagnostics atomically.
func (s *DiagnosticStore) InsertBatch(_ context.Context, diagnostics []domain.Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	seen := make(map[domain.Key]bool, len(diagnostics))
	for _, d := range diagnostics {
		key := d.Key()
		if _, ok := s.diagnostics[key]; ok || seen[key] {
			return fmt.Errorf("inserting diagnostic %s v%d #%d: %w", d.Path, d.Version, d.Rank, domain.ErrDuplicateKey)
		}
		seen[key] = true
	}
	for _, d := range diagnostics {
		s.diagnostics[d.Key()] = d
	}
	return nil
}

// PopulateSourceLocations locates every path not yet located.
func (s *DiagnosticStore) PopulateSourceLocations(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return 0, err
	}

	pending := make(map[string]domain.SourceLocation)
	for key := range s.diagnostics {
		if _, ok := s.sources[key.Path]; ok {
			continue
		}
		if _, ok := pending[key.Path]; ok {
			continue
		}
		loc, err := domain.ParseSourcePath(key.Path)
		if err != nil {
			return 0, fmt.Errorf("locating source: %w", err)
		}
		pending[key.Path] = loc
	}

	for p, loc := range pending {
		s.sources[p] = loc
	}
	return len(pending), nil
}

// PopulateClassifiedMessages classifies every text not yet classified.
func (s *DiagnosticStore) PopulateClassifiedMessages(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return 0, err
	}
	if s.classifier == nil {
		return 0, fmt.Errorf("%w: store has no classifier", domain.ErrInvalidInput)
	}

	added := 0
	for _, d := range s.diagnostics {
		if _, ok := s.classified[d.Text]; ok {
			continue
		}
		c := s.classifier.Classify(d.Text)
		s.classified[d.Text] = domain.ClassifiedMessage{
			Text:          d.Text,
			JavacName:     c.JavacName(),
			SanitizedText: c.SanitizedText,
		}
		added++
	}
	return added, nil
}

// MergeFrom copies diagnostics and locations from the store registered
// under path. Nothing is copied if any key collides.
func (s *DiagnosticStore) MergeFrom(_ context.Context, path string) error {
	if s.registry == nil {
		return fmt.Errorf("merging %s: %w", path, domain.ErrNotFound)
	}
	other, ok := s.registry.Lookup(path)
	if !ok {
		return fmt.Errorf("merging %s: %w", path, domain.ErrNotFound)
	}
	if other == s {
		return fmt.Errorf("%w: cannot merge %s into itself", domain.ErrInvalidInput, path)
	}

	other.mu.RLock()
	defer other.mu.RUnlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	for key := range other.diagnostics {
		if _, ok := s.diagnostics[key]; ok {
			return fmt.Errorf("merging all_messages from %s: %w", path, domain.ErrDuplicateKey)
		}
	}
	for p := range other.sources {
		if _, ok := s.sources[p]; ok {
			return fmt.Errorf("merging source from %s: %w", path, domain.ErrDuplicateKey)
		}
	}

	for key, d := range other.diagnostics {
		s.diagnostics[key] = d
	}
	for p, loc := range other.sources {
		s.sources[p] = loc
	}
	return nil
}

// CountMessages returns the number of stored diagnostics.
func (s *DiagnosticStore) CountMessages(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.diagnostics), nil
}

// CountSources returns the number of located paths.
func (s *DiagnosticStore) CountSources(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources), nil
}

// Slices returns the distinct slice labels of the located paths, sorted.
func (s *DiagnosticStore) Slices(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var slices []string
	for _, loc := range s.sources {
		if !seen[loc.Slice] {
			seen[loc.Slice] = true
			slices = append(slices, loc.Slice)
		}
	}
	sort.Strings(slices)
	return slices, nil
}

// CountClassified returns the number of classified texts.
func (s *DiagnosticStore) CountClassified(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.classified), nil
}

// Diagnostics returns every stored diagnostic ordered by key.
func (s *DiagnosticStore) Diagnostics() []domain.Diagnostic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Diagnostic, 0, len(s.diagnostics))
	for _, d := range s.diagnostics {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Version != b.Version {
			return a.Version < b.Version
		}
		return a.Rank < b.Rank
	})
	return result
}

// Classified returns the classification stored for text.
func (s *DiagnosticStore) Classified(text string) (domain.ClassifiedMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.classified[text]
	return m, ok
}

// Close marks the store closed. The data stays available to merges.
func (s *DiagnosticStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *DiagnosticStore) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Registry hands out in-memory stores by path, standing in for database
// files on disk.
type Registry struct {
	mu         sync.Mutex
	classifier driven.MessageClassifier
	stores     map[string]*DiagnosticStore
}

// NewRegistry creates an empty registry whose stores use classifier.
func NewRegistry(classifier driven.MessageClassifier) *Registry {
	return &Registry{
		classifier: classifier,
		stores:     make(map[string]*DiagnosticStore),
	}
}

// Factory returns a StoreFactory backed by the registry.
// Opening a path that was opened before returns the existing data.
func (r *Registry) Factory() driven.StoreFactory {
	return func(path string) (driven.DiagnosticStore, error) {
		return r.Open(path), nil
	}
}

// Open returns the store for path, creating it if needed.
func (r *Registry) Open(path string) *DiagnosticStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[path]; ok {
		s.mu.Lock()
		s.closed = false
		s.mu.Unlock()
		return s
	}
	s := NewDiagnosticStore(path, r.classifier)
	s.registry = r
	r.stores[path] = s
	return s
}

// Paths returns the registered paths, sorted.
func (r *Registry) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	paths := make([]string, 0, len(r.stores))
	for p := range r.stores {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Lookup returns the store for path without reopening it.
func (r *Registry) Lookup(path string) (*DiagnosticStore, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[path]
	return s, ok
}
