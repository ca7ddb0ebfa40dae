package pool

import (
	"strings"
	"sync"
)

// maxRetainFactor bounds how far past its initial capacity a pooled buffer
// may grow and still be returned to the pool.
const maxRetainFactor = 64

// RuneBufferPool implements a pool of rune slices
type RuneBufferPool struct {
	pool sync.Pool
	size int
}

// NewRuneBufferPool creates a new pool of rune slices with the specified initial capacity
func NewRuneBufferPool(size int) *RuneBufferPool {
	return &RuneBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]rune, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a rune buffer from the pool
func (rbp *RuneBufferPool) Get() *[]rune {
	return rbp.pool.Get().(*[]rune)
}

// MaxRetained is the largest capacity Put keeps in the pool.
func (rbp *RuneBufferPool) MaxRetained() int {
	return rbp.size * maxRetainFactor
}

// Put returns a rune buffer to the pool. Buffers grown past MaxRetained are
// dropped so one long input does not pin memory.
func (rbp *RuneBufferPool) Put(buffer *[]rune) {
	if cap(*buffer) > rbp.MaxRetained() {
		return
	}
	*buffer = (*buffer)[:0]
	rbp.pool.Put(buffer)
}

// IntBufferPool implements a pool of int slices, used for dynamic-programming rows
type IntBufferPool struct {
	pool sync.Pool
}

// NewIntBufferPool creates a new pool of int slices with the specified initial capacity
func NewIntBufferPool(size int) *IntBufferPool {
	return &IntBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]int, 0, size)
				return &buffer
			},
		},
	}
}

// Get retrieves an int buffer of length n with every element zeroed
func (ibp *IntBufferPool) Get(n int) *[]int {
	buffer := ibp.pool.Get().(*[]int)
	if cap(*buffer) < n {
		*buffer = make([]int, n)
		return buffer
	}
	*buffer = (*buffer)[:n]
	clear(*buffer)
	return buffer
}

// Put returns an int buffer to the pool
func (ibp *IntBufferPool) Put(buffer *[]int) {
	*buffer = (*buffer)[:0]
	ibp.pool.Put(buffer)
}

// StringBuilderPool implements a pool of strings.Builder for efficient string building
type StringBuilderPool struct {
	pool sync.Pool
}

// NewStringBuilderPool creates a new strings.Builder pool
func NewStringBuilderPool() *StringBuilderPool {
	return &StringBuilderPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(strings.Builder)
			},
		},
	}
}

// Get retrieves a builder from the pool or creates a new one if none are available
func (sbp *StringBuilderPool) Get() *strings.Builder {
	return sbp.pool.Get().(*strings.Builder)
}

// Put returns a builder to the pool for reuse
func (sbp *StringBuilderPool) Put(sb *strings.Builder) {
	sb.Reset()
	sbp.pool.Put(sb)
}
