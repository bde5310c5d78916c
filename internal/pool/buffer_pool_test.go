package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPoolGetReturnsEmptyBuffer(t *testing.T) {
	bp := NewBufferPool(64)

	buf := bp.Get()
	assert.Equal(t, 0, len(*buf))
	assert.GreaterOrEqual(t, cap(*buf), 64)

	*buf = append(*buf, "racecar"...)
	bp.Put(buf)

	again := bp.Get()
	assert.Equal(t, 0, len(*again), "buffers must come back reset")
}

func TestBufferPoolGetSized(t *testing.T) {
	bp := NewBufferPool(8)

	buf := bp.GetSized(1024)
	assert.Equal(t, 0, len(*buf))
	assert.GreaterOrEqual(t, cap(*buf), 1024)
	assert.Equal(t, 8, bp.Size())
}
