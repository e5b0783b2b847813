package alloc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAllocator is returned by ByName for an unrecognized strategy.
var ErrUnknownAllocator = errors.New("unknown allocator")

// Allocator obtains and releases memory for the engine.
// Every heap array a sequence owns is created by AllocateArray and handed
// back, exactly once, to DeallocateArray of the same allocator.
type Allocator[T any] interface {
	// AllocateSingle returns a zeroed value.
	AllocateSingle() *T

	// AllocateArray returns a zeroed slice with len(s) == count.
	AllocateArray(count int) []T

	// DeallocateSingle releases a value. p must not be used afterwards.
	DeallocateSingle(p *T)

	// DeallocateArray releases a slice. s must not be used afterwards.
	DeallocateArray(s []T)
}

// Heap allocates with new/make and leaves reclamation to the garbage collector.
type Heap[T any] struct{}

// AllocateSingle implements Allocator.
func (Heap[T]) AllocateSingle() *T {
	return new(T)
}

// AllocateArray implements Allocator.
func (Heap[T]) AllocateArray(count int) []T {
	return make([]T, count)
}

// DeallocateSingle implements Allocator.
func (Heap[T]) DeallocateSingle(*T) {}

// DeallocateArray implements Allocator.
func (Heap[T]) DeallocateArray([]T) {}

// Default is the byte allocator used by sequences that were not given one.
// It can be replaced with a custom allocator during program startup.
var Default Allocator[byte] = DefaultPool

// DefaultPool is the shared pooled byte allocator.
var DefaultPool = NewPool[byte]()

// ByName resolves a strategy name ("heap" or "pool") to a byte allocator.
func ByName(name string) (Allocator[byte], error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "heap":
		return Heap[byte]{}, nil
	case "pool", "":
		return DefaultPool, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAllocator, name)
	}
}
