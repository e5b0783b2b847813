// Package alloc is the allocation capability of the text engine.
//
// Sequences never call make for their heap buffers directly; they go through
// an Allocator so that pooling or arena strategies can be substituted
// without touching the engine:
//
//	counter := alloc.NewCounting[byte](alloc.Heap[byte]{})
//	s := sequence.FromString("a string longer than fifteen bytes", sequence.WithAllocator(counter))
//	defer s.Release()
//	counter.Stats().Arrays // 1
//
// Heap delegates to the garbage collector, Pool recycles power-of-two arrays
// through sync.Pool, and Counting records calls for tests and diagnostics.
package alloc
