package classify

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/errcorpus/internal/core/domain"
)

// DefaultCacheSize is the number of distinct messages a Classifier remembers.
const DefaultCacheSize = 1024

// Classifier classifies diagnostic messages against a Catalog.
// Results are memoised per message text in a bounded LRU cache owned by the
// Classifier, so its lifetime is the lifetime of the cache. A Classifier is
// safe for concurrent use.
type Classifier struct {
	catalog *Catalog
	cache   *lru.Cache[string, domain.Classification]

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a classifier over catalog. cacheSize <= 0 uses DefaultCacheSize.
// The catalog is validated first.
func New(catalog *Catalog, cacheSize int) (*Classifier, error) {
	if catalog == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, domain.Classification](cacheSize)
	if err != nil {
		return nil, err
	}

	return &Classifier{catalog: catalog, cache: cache}, nil
}

// MustNew is like New but panics on error.
func MustNew(catalog *Catalog, cacheSize int) *Classifier {
	c, err := New(catalog, cacheSize)
	if err != nil {
		panic(err)
	}
	return c
}

// NewDefault creates a classifier over DefaultCatalog.
func NewDefault() *Classifier {
	return MustNew(DefaultCatalog(), DefaultCacheSize)
}

// Classify returns the classification of text.
func (c *Classifier) Classify(text string) domain.Classification {
	if result, ok := c.cache.Get(text); ok {
		c.hits.Add(1)
		return result
	}
	c.misses.Add(1)

	result := c.catalog.classify(text)
	c.cache.Add(text, result)
	return result
}

// CacheStats returns the number of cache hits and misses so far.
func (c *Classifier) CacheStats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// classify is the uncached classification.
func (c *Catalog) classify(text string) domain.Classification {
	// Hash lookup first, it is cheaper than running the patterns.
	if name, ok := c.Exact[text]; ok {
		return domain.Classification{
			Kind:          domain.MatchExact,
			CanonicalID:   name,
			SanitizedText: text,
		}
	}

	if p, ok := c.Match(text); ok {
		return domain.Classification{
			Kind:          domain.MatchPattern,
			CanonicalID:   p.ID,
			SanitizedText: p.Signature,
		}
	}

	return domain.Classification{
		Kind:          domain.MatchNone,
		SanitizedText: text,
	}
}
