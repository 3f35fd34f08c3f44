package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
	"github.com/custodia-labs/errcorpus/internal/core/ports/driving"
)

// writeCorpus creates files under root; a key ending in "/" is a directory.
func writeCorpus(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

// stubExtractor returns one diagnostic per file. With sameKey set, every
// file yields the same key so a project batch collides with itself.
type stubExtractor struct {
	sameKey bool
}

func (e stubExtractor) ExtractFile(path string) []domain.Diagnostic {
	d := domain.Diagnostic{Path: path, Version: 1, Rank: 1, Text: "not a statement"}
	if e.sameKey {
		d.Path = "same"
	}
	return []domain.Diagnostic{d}
}

// stubClassifier matches exactly one message.
type stubClassifier struct{}

func (stubClassifier) Classify(text string) domain.Classification {
	if text == "not a statement" {
		return domain.Classification{Kind: domain.MatchExact, CanonicalID: "compiler.err.not.stmt", SanitizedText: text}
	}
	return domain.Classification{Kind: domain.MatchNone, SanitizedText: text}
}

// stubCollector records which slices it was asked to collect.
type stubCollector struct {
	mu        sync.Mutex
	collected []string
	fail      map[string]error
	collect   func(ctx context.Context, slice domain.Slice)
}

func (c *stubCollector) Collect(ctx context.Context, slice domain.Slice) (*driving.SliceResult, error) {
	if c.collect != nil {
		c.collect(ctx, slice)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.collected = append(c.collected, slice.Label)
	if err, ok := c.fail[slice.Label]; ok {
		return nil, err
	}
	return &driving.SliceResult{Slice: slice.Label, Diagnostics: 2}, nil
}

func (c *stubCollector) labels() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.collected...)
}
