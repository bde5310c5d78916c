package pool

import (
	"sync"
)

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified capacity
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a zero-length buffer with at least the pool's capacity
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// GetSized retrieves a zero-length buffer with capacity for at least n bytes
func (bp *BufferPool) GetSized(n int) *[]byte {
	buffer := bp.Get()
	if cap(*buffer) < n {
		*buffer = make([]byte, 0, n)
	}
	return buffer
}

// Put returns a buffer to the pool for reuse
func (bp *BufferPool) Put(buffer *[]byte) {
	// Oversized buffers are dropped so one huge input does not pin memory
	if cap(*buffer) > bp.size*16 {
		return
	}
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// Size returns the initial capacity of buffers created by the pool
func (bp *BufferPool) Size() int {
	return bp.size
}
