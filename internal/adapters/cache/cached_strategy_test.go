package cache

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_palindrome/internal/core/strategy"
	"github.com/baditaflorin/go_palindrome/internal/ports"
)

type countingStrategy struct {
	ports.Strategy
	calls atomic.Int64
}

func (c *countingStrategy) Check(normalized string) bool {
	c.calls.Add(1)
	return c.Strategy.Check(normalized)
}

func TestCachedStrategyMemoizes(t *testing.T) {
	inner := &countingStrategy{Strategy: strategy.NewTwoPointer()}
	cached, err := NewCachedStrategy(inner, 2)
	require.NoError(t, err)

	assert.True(t, cached.Check("madam"))
	assert.True(t, cached.Check("madam"))
	assert.False(t, cached.Check("ab"))

	assert.Equal(t, int64(2), inner.calls.Load())
	hits, misses := cached.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)
	assert.Equal(t, 2, cached.Len())
}

func TestCachedStrategyEvicts(t *testing.T) {
	inner := &countingStrategy{Strategy: strategy.NewStack()}
	cached, err := NewCachedStrategy(inner, 1)
	require.NoError(t, err)

	cached.Check("aa")
	cached.Check("ab")
	cached.Check("aa")

	assert.Equal(t, int64(3), inner.calls.Load())
	assert.Equal(t, 1, cached.Len())
}

func TestCachedStrategyKeepsIdentity(t *testing.T) {
	cached, err := NewCachedStrategy(strategy.NewDeque(), 8)
	require.NoError(t, err)

	assert.Equal(t, strategy.DequeName, cached.Name())
	assert.Contains(t, cached.Description(), "cached(")
	assert.Equal(t, strategy.DequeName, cached.Unwrap().Name())
}

func TestCachedStrategyAgreesWithInner(t *testing.T) {
	for _, s := range strategy.All() {
		cached, err := NewCachedStrategy(s, 4)
		require.NoError(t, err)
		for _, in := range []string{"", "a", "ab", "aba", "racecar", "helloworld"} {
			assert.Equal(t, s.Check(in), cached.Check(in), "%s %q", s.Name(), in)
			assert.Equal(t, s.Check(in), cached.Check(in), "%s %q (cached)", s.Name(), in)
		}
	}
}

func TestNewCachedStrategyValidation(t *testing.T) {
	_, err := NewCachedStrategy(nil, 4)
	assert.Error(t, err)

	var typedNil *CachedStrategy
	_, err = NewCachedStrategy(typedNil, 4)
	assert.Error(t, err)

	_, err = NewCachedStrategy(strategy.NewStack(), 0)
	assert.Error(t, err)
}
