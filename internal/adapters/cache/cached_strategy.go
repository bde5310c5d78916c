package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/baditaflorin/go_palindrome/internal/core/strategy"
	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// CachedStrategy memoizes the verdicts of another strategy in an LRU cache
// keyed by normalized text.
type CachedStrategy struct {
	inner ports.Strategy
	cache *lru.Cache[string, bool]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCachedStrategy wraps inner with a cache holding up to size verdicts.
func NewCachedStrategy(inner ports.Strategy, size int) (*CachedStrategy, error) {
	if strategy.IsNil(inner) {
		return nil, fmt.Errorf("cached strategy: inner strategy must not be nil")
	}
	if size <= 0 {
		return nil, fmt.Errorf("cached strategy %q: cache size must be greater than zero", inner.Name())
	}
	c, err := lru.New[string, bool](size)
	if err != nil {
		return nil, fmt.Errorf("cached strategy %q: init cache: %w", inner.Name(), err)
	}
	return &CachedStrategy{inner: inner, cache: c}, nil
}

// Name returns the wrapped strategy's name so results stay comparable.
func (c *CachedStrategy) Name() string {
	return c.inner.Name()
}

// Description marks the wrapped description as cached.
func (c *CachedStrategy) Description() string {
	return "cached(" + c.inner.Description() + ")"
}

// Check returns the cached verdict or computes and stores it.
func (c *CachedStrategy) Check(normalized string) bool {
	if v, ok := c.cache.Get(normalized); ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)
	v := c.inner.Check(normalized)
	c.cache.Add(normalized, v)
	return v
}

// Unwrap returns the decorated strategy.
func (c *CachedStrategy) Unwrap() ports.Strategy {
	return c.inner
}

// Stats returns the hit and miss counters.
func (c *CachedStrategy) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached verdicts.
func (c *CachedStrategy) Len() int {
	return c.cache.Len()
}
