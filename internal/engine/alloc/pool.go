package alloc

import (
	"math/bits"
	"sync"
)

// Pool size classes are powers of two from 1 to 1<<maxClass elements.
// Larger arrays bypass the pool.
const (
	maxClass = 16

	// MaxPooledLen is the largest array length kept for reuse.
	MaxPooledLen = 1 << maxClass
)

// Pool provides recycling of arrays and single values.
// It uses one sync.Pool per power-of-two size class, so it is safe for
// concurrent use and cheap for the sizes the sequence capacity policy
// produces (capacity+1 is always a power of two).
//
// Usage note: pooling is primarily beneficial for:
// - High-frequency append/replace on short-lived sequences
// - Reducing GC pressure when many mid-size buffers churn
type Pool[T any] struct {
	single  sync.Pool
	classes [maxClass + 1]sync.Pool
}

// NewPool creates a new pool.
func NewPool[T any]() *Pool[T] {
	p := &Pool[T]{}
	p.single.New = func() any {
		return new(T)
	}
	for c := range p.classes {
		size := 1 << c
		p.classes[c].New = func() any {
			s := make([]T, size)
			return &s
		}
	}
	return p
}

// classOf returns the smallest class that holds count elements.
func classOf(count int) int {
	if count <= 1 {
		return 0
	}
	return bits.Len(uint(count - 1))
}

// AllocateSingle retrieves a zeroed value from the pool.
func (p *Pool[T]) AllocateSingle() *T {
	return p.single.Get().(*T)
}

// DeallocateSingle returns a value to the pool for reuse.
// The value should not be used after calling this method.
func (p *Pool[T]) DeallocateSingle(v *T) {
	if v == nil {
		return
	}
	var zero T
	*v = zero
	p.single.Put(v)
}

// AllocateArray retrieves a zeroed slice of exactly count elements.
// The backing array may be larger, rounded up to the size class.
func (p *Pool[T]) AllocateArray(count int) []T {
	if count <= 0 {
		return nil
	}
	if count > MaxPooledLen {
		return make([]T, count)
	}
	s := p.classes[classOf(count)].Get().(*[]T)
	return (*s)[:count]
}

// DeallocateArray returns a slice to the pool for reuse.
// Only slices whose capacity is exactly a size class are kept.
// The slice should not be used after calling this method.
func (p *Pool[T]) DeallocateArray(s []T) {
	c := cap(s)
	if c == 0 || c > MaxPooledLen || c&(c-1) != 0 {
		return
	}
	s = s[:c]
	// Clear contents so the next owner starts from zero and references can be collected
	clear(s)
	p.classes[classOf(c)].Put(&s)
}
