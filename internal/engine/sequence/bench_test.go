package sequence

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/opentext/internal/engine/alloc"
	"github.com/dshills/opentext/internal/engine/interval"
)

func BenchmarkAppend(b *testing.B) {
	allocators := map[string]alloc.Allocator[byte]{
		"heap": alloc.Heap[byte]{},
		"pool": alloc.NewPool[byte](),
	}
	for name, a := range allocators {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				s := New(WithAllocator(a))
				for j := 0; j < 64; j++ {
					s.AppendString("chunk of text ")
				}
				s.Release()
			}
		})
	}
}

func BenchmarkReplace(b *testing.B) {
	for _, size := range []int{64, 4096} {
		base := strings.Repeat("a-b-", size/4)
		cases := []struct {
			name, pattern, replacement string
			spare                      int
		}{
			{"shrink", "-", "", 0},
			{"same", "-", "+", 0},
			{"grow-realloc", "-", "<->", 0},
			{"grow-inplace", "-", "<->", size * 2},
		}
		for _, c := range cases {
			b.Run(fmt.Sprintf("%s/%d", c.name, size), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					s := NewWithCapacity(len(base) + c.spare)
					s.AppendString(base)
					s.Replace(ViewString(c.pattern), ViewString(c.replacement), interval.All())
					s.Release()
				}
			})
		}
	}
}

func BenchmarkSmallString(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := FromString("short and sweet")
		s.Trim(ViewString(" "))
		s.Release()
	}
}
