package sequence

import "github.com/dshills/opentext/internal/engine/alloc"

// Option configures a Sequence during creation.
type Option func(*Sequence)

// WithAllocator routes the sequence's heap buffers through a.
// A nil allocator selects alloc.Default.
func WithAllocator(a alloc.Allocator[byte]) Option {
	return func(s *Sequence) {
		s.alloc = a
	}
}
