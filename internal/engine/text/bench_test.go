package text

import (
	"strings"
	"testing"

	"github.com/dshills/opentext/internal/engine/interval"
)

// generateText returns mixed-script text of at least size bytes.
func generateText(size int) string {
	const sample = "The quick brown fox ジャンプ over the lazy 犬. "
	// Whole samples only, so no codepoint is cut.
	return strings.Repeat(sample, size/len(sample)+1)
}

func BenchmarkLen(b *testing.B) {
	v := ViewString(generateText(4096))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Len()
	}
}

func BenchmarkReverse(b *testing.B) {
	src := FromString(generateText(4096))
	defer src.Release()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		src.Reverse(interval.All())
	}
}

func BenchmarkFromScalars(b *testing.B) {
	scalars := []rune(generateText(1024))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		t := FromScalars(scalars)
		t.Release()
	}
}
