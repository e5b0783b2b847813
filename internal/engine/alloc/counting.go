package alloc

import "sync/atomic"

// Stats is a snapshot of allocator activity.
type Stats struct {
	Singles         int64 // AllocateSingle calls
	Arrays          int64 // AllocateArray calls
	SingleReleases  int64 // DeallocateSingle calls
	ArrayReleases   int64 // DeallocateArray calls
	BytesAllocated  int64 // Total elements handed out by AllocateArray
	LargestArrayLen int64
}

// Live returns the number of arrays allocated but not yet released.
func (s Stats) Live() int64 {
	return s.Arrays - s.ArrayReleases
}

// Counting wraps an allocator and records every call.
// It is safe for concurrent use if the wrapped allocator is.
type Counting[T any] struct {
	inner Allocator[T]

	singles        atomic.Int64
	arrays         atomic.Int64
	singleReleases atomic.Int64
	arrayReleases  atomic.Int64
	elements       atomic.Int64
	largest        atomic.Int64
}

// NewCounting wraps inner. A nil inner means Heap.
func NewCounting[T any](inner Allocator[T]) *Counting[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	return &Counting[T]{inner: inner}
}

// AllocateSingle implements Allocator.
func (c *Counting[T]) AllocateSingle() *T {
	c.singles.Add(1)
	return c.inner.AllocateSingle()
}

// AllocateArray implements Allocator.
func (c *Counting[T]) AllocateArray(count int) []T {
	c.arrays.Add(1)
	c.elements.Add(int64(count))
	for {
		cur := c.largest.Load()
		if int64(count) <= cur || c.largest.CompareAndSwap(cur, int64(count)) {
			break
		}
	}
	return c.inner.AllocateArray(count)
}

// DeallocateSingle implements Allocator.
func (c *Counting[T]) DeallocateSingle(p *T) {
	c.singleReleases.Add(1)
	c.inner.DeallocateSingle(p)
}

// DeallocateArray implements Allocator.
func (c *Counting[T]) DeallocateArray(s []T) {
	c.arrayReleases.Add(1)
	c.inner.DeallocateArray(s)
}

// Stats returns a snapshot of the counters.
func (c *Counting[T]) Stats() Stats {
	return Stats{
		Singles:         c.singles.Load(),
		Arrays:          c.arrays.Load(),
		SingleReleases:  c.singleReleases.Load(),
		ArrayReleases:   c.arrayReleases.Load(),
		BytesAllocated:  c.elements.Load(),
		LargestArrayLen: c.largest.Load(),
	}
}

// Reset zeroes all counters.
func (c *Counting[T]) Reset() {
	c.singles.Store(0)
	c.arrays.Store(0)
	c.singleReleases.Store(0)
	c.arrayReleases.Store(0)
	c.elements.Store(0)
	c.largest.Store(0)
}
