package sequence

import (
	"strings"
	"testing"

	"github.com/dshills/opentext/internal/engine/alloc"
	"github.com/dshills/opentext/internal/engine/interval"
)

func counted() (*alloc.Counting[byte], Option) {
	c := alloc.NewCounting[byte](alloc.Heap[byte]{})
	return c, WithAllocator(c)
}

func TestZeroValue(t *testing.T) {
	var s Sequence
	if s.Len() != 0 || !s.IsEmpty() || !s.IsInline() {
		t.Error("zero value should be an empty inline sequence")
	}
	if s.Capacity() != InlineCapacity {
		t.Errorf("Capacity() = %d, want %d", s.Capacity(), InlineCapacity)
	}
	if got := s.CString(); len(got) != 1 || got[0] != 0 {
		t.Errorf("CString() = %v, want terminator only", got)
	}
	s.AppendString("ok")
	if s.String() != "ok" {
		t.Errorf("append to zero value = %q", s.String())
	}
}

func TestCapacityFor(t *testing.T) {
	tests := []struct {
		size, want int
	}{
		{0, 15},
		{15, 15},
		{16, 31},
		{30, 31},
		{31, 31}, // 31+1 is already a power of two
		{32, 63},
		{63, 63},
		{64, 127},
		{1000, 1023},
		{1023, 1023},
		{1024, 2047},
	}
	for _, tt := range tests {
		if got := CapacityFor(tt.size); got != tt.want {
			t.Errorf("CapacityFor(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestCapacityFor_Bounds(t *testing.T) {
	for _, size := range []int{1 << 30, MaxLen - 1, MaxLen} {
		if got := CapacityFor(size); got != MaxLen {
			t.Errorf("CapacityFor(%d) = %d, want MaxLen", size, got)
		}
	}
	if got := CapacityFor(1<<30 - 1); got != 1<<30-1 {
		t.Errorf("CapacityFor(2^30-1) = %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("CapacityFor(MaxLen+1) should panic")
		}
	}()
	CapacityFor(MaxLen + 1)
}

func TestInlineNeverAllocates(t *testing.T) {
	for n := 0; n <= InlineCapacity; n++ {
		c, opt := counted()
		s := FromString(strings.Repeat("x", n), opt)
		if !s.IsInline() {
			t.Errorf("size %d should be inline", n)
		}
		if st := c.Stats(); st.Arrays != 0 {
			t.Errorf("size %d allocated %d arrays", n, st.Arrays)
		}
		s.Release()
	}
}

func TestSixteenBytesAllocatesOnce(t *testing.T) {
	c, opt := counted()
	s := FromString(strings.Repeat("y", 16), opt)
	st := c.Stats()
	if st.Arrays != 1 {
		t.Fatalf("allocations = %d, want 1", st.Arrays)
	}
	if st.LargestArrayLen < 17 {
		t.Errorf("buffer = %d bytes, want >= 17", st.LargestArrayLen)
	}
	if s.IsInline() || s.Capacity() != 31 {
		t.Errorf("Capacity() = %d, want 31 on heap", s.Capacity())
	}
	if s.CString()[16] != 0 {
		t.Error("heap buffer must be null-terminated")
	}

	s.Release()
	s.Release()
	if st := c.Stats(); st.ArrayReleases != 1 || st.Live() != 0 {
		t.Errorf("releases = %d, live = %d; want exactly one release", st.ArrayReleases, st.Live())
	}
	if !s.IsEmpty() || !s.IsInline() {
		t.Error("released sequence should be empty inline")
	}
}

func TestConstructors(t *testing.T) {
	buf := []byte("abc\x00def")
	tests := []struct {
		name string
		s    Sequence
		want string
	}{
		{"string", FromString("hello"), "hello"},
		{"bytes", FromBytes([]byte("bytes")), "bytes"},
		{"cstring", FromCString(buf), "abc"},
		{"between", FromBetween(buf, 4, 7), "def"},
		{"long", FromString(strings.Repeat("ab", 40)), strings.Repeat("ab", 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.s
			defer s.Release()
			if s.String() != tt.want {
				t.Errorf("got %q, want %q", s.String(), tt.want)
			}
			if s.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(tt.want))
			}
		})
	}
}

func TestNewWithCapacity(t *testing.T) {
	c, opt := counted()
	s := NewWithCapacity(100, opt)
	if s.Len() != 0 || s.Capacity() != 127 {
		t.Errorf("Len/Capacity = %d/%d, want 0/127", s.Len(), s.Capacity())
	}
	s.AppendString(strings.Repeat("z", 127))
	if c.Stats().Arrays != 1 {
		t.Errorf("filling reserved capacity reallocated: %d arrays", c.Stats().Arrays)
	}
	s.Release()

	small := NewWithCapacity(10, opt)
	if !small.IsInline() {
		t.Error("small capacity should stay inline")
	}
}

func TestRoundTripThroughView(t *testing.T) {
	for _, in := range []string{"", "short", "exactly 15 byte", strings.Repeat("長い", 20)} {
		x := FromString(in)
		y := FromView(x.View())
		if !y.Equal(x.View()) || y.String() != in {
			t.Errorf("round trip of %q produced %q", in, y.String())
		}
		if x.Hash() != y.Hash() {
			t.Errorf("equal content hashed differently for %q", in)
		}
		if !x.View().Equal(y.View()) || !x.EqualString(in) {
			t.Errorf("view of %q should equal its sequence", in)
		}
		x.Release()
		y.Release()
	}
}

func TestCloneAndTake(t *testing.T) {
	c, opt := counted()
	src := FromString(strings.Repeat("q", 40), opt)

	cp := src.Clone()
	if cp.String() != src.String() {
		t.Fatal("clone content differs")
	}
	cp.WriteAt(0, 'Q')
	if src.At(0) != 'q' {
		t.Error("clone must not share the buffer")
	}

	moved := src.Take()
	if !src.IsEmpty() || !src.IsInline() || src.Capacity() != InlineCapacity {
		t.Error("moved-from sequence should be inline-empty")
	}
	if moved.Len() != 40 {
		t.Errorf("moved Len() = %d", moved.Len())
	}

	src.Release() // nothing left to free
	moved.Release()
	cp.Release()
	if st := c.Stats(); st.Live() != 0 || st.ArrayReleases != 2 {
		t.Errorf("live = %d, releases = %d; want 0, 2", st.Live(), st.ArrayReleases)
	}
}

func TestReserve(t *testing.T) {
	c, opt := counted()
	s := FromString("abc", opt)

	s.Reserve(10)
	if !s.IsInline() || c.Stats().Arrays != 0 {
		t.Error("Reserve within inline capacity is a no-op")
	}

	s.Reserve(40)
	if s.Capacity() != 63 || s.String() != "abc" {
		t.Errorf("after Reserve(40): cap %d, %q", s.Capacity(), s.String())
	}
	s.Reserve(50)
	if c.Stats().Arrays != 1 {
		t.Error("Reserve within capacity must not reallocate")
	}

	s.Reserve(100)
	st := c.Stats()
	if st.Arrays != 2 || st.ArrayReleases != 1 {
		t.Errorf("growth should swap buffers: %+v", st)
	}
	if s.String() != "abc" {
		t.Errorf("content lost on growth: %q", s.String())
	}
	s.Release()
}

func TestAppend(t *testing.T) {
	var s Sequence
	s.AppendString("hello")
	s.AppendByte(' ')
	s.AppendCodepoint('世')
	s.AppendRepeat(3, '!')
	s.AppendRepeat(0, '?')
	if s.String() != "hello 世!!!" {
		t.Errorf("got %q", s.String())
	}

	// Cross the inline boundary
	s.AppendString(" and more text")
	if s.IsInline() {
		t.Error("should have moved to heap")
	}
	if s.String() != "hello 世!!! and more text" {
		t.Errorf("got %q", s.String())
	}
	s.Release()
}

func TestAppendSelf(t *testing.T) {
	s := FromString("abcdefgh")
	s.Append(s.View()) // grows past inline while reading itself
	if s.String() != "abcdefghabcdefgh" {
		t.Errorf("inline self-append = %q", s.String())
	}
	s.Append(s.View())
	if s.String() != strings.Repeat("abcdefgh", 4) {
		t.Errorf("heap self-append = %q", s.String())
	}
	s.Release()
}

func TestConcat(t *testing.T) {
	a := FromString("left ")
	b := a.Concat(ViewString("right"))
	if b.String() != "left right" || a.String() != "left " {
		t.Errorf("Concat = %q, receiver = %q", b.String(), a.String())
	}
	b.Release()
}

func TestClear(t *testing.T) {
	s := FromString(strings.Repeat("c", 50))
	capBefore := s.Capacity()
	s.Clear()
	if !s.IsEmpty() || s.Capacity() != capBefore {
		t.Error("Clear keeps capacity")
	}
	s.ClearWithCapacity(10)
	if s.Capacity() != capBefore {
		t.Error("ClearWithCapacity within capacity keeps the buffer")
	}
	s.ClearWithCapacity(500)
	if s.Capacity() != 511 || !s.IsEmpty() {
		t.Errorf("ClearWithCapacity(500): cap %d len %d", s.Capacity(), s.Len())
	}
	s.Release()
}

func TestSubsequence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		iv   interval.Interval
		want string
	}{
		{"middle", "hello world", interval.RightOpen(2, 7), "llo w"},
		{"prefix", "hello world", interval.Until(5), "hello"},
		{"suffix", "hello world", interval.From(-5), "world"},
		{"full", "hello world", interval.All(), "hello world"},
		{"empty", "hello world", interval.Closed(20, 30), ""},
		{"inverted", "hello", interval.RightOpen(3, 1), ""},
		{"long", strings.Repeat("0123456789", 5), interval.RightOpen(10, 20), "0123456789"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromString(tt.in)
			defer s.Release()
			s.Subsequence(tt.iv)
			if s.String() != tt.want {
				t.Errorf("got %q, want %q", s.String(), tt.want)
			}
			if s.CString()[s.Len()] != 0 {
				t.Error("terminator not rewritten")
			}
		})
	}
}

func TestSubsequenceNeverReallocates(t *testing.T) {
	c, opt := counted()
	s := FromString(strings.Repeat("s", 64), opt)
	before := &s.Bytes()[0]
	s.Subsequence(interval.All())
	s.Subsequence(interval.RightOpen(8, 40))
	s.Subsequence(interval.Until(4))
	if c.Stats().Arrays != 1 {
		t.Errorf("Subsequence allocated: %+v", c.Stats())
	}
	if &s.Bytes()[0] != before {
		t.Error("buffer moved")
	}
	s.Release()
}

func TestPrefixSuffixRemoval(t *testing.T) {
	s := FromString("--name--")
	s.RemovePrefix(ViewString("--")).RemoveSuffix(ViewString("--"))
	if s.String() != "name" {
		t.Errorf("got %q", s.String())
	}
	s.RemovePrefix(ViewString("x"))
	if s.String() != "name" {
		t.Errorf("non-matching prefix changed content: %q", s.String())
	}
	if got := s.ViewRemoveSuffix(ViewString("me")).String(); got != "na" {
		t.Errorf("ViewRemoveSuffix = %q", got)
	}
	if got := s.ViewRemovePrefix(ViewString("na")).String(); got != "me" {
		t.Errorf("ViewRemovePrefix = %q", got)
	}
}

func TestSelfTrim(t *testing.T) {
	ws := ViewString(" \t")
	tests := []struct {
		in   string
		fn   func(*Sequence) *Sequence
		want string
	}{
		{" \tHi \t", func(s *Sequence) *Sequence { return s.Trim(ws) }, "Hi"},
		{" \tHi \t", func(s *Sequence) *Sequence { return s.TrimStart(ws) }, "Hi \t"},
		{" \tHi \t", func(s *Sequence) *Sequence { return s.TrimEnd(ws) }, " \tHi"},
		{"   ", func(s *Sequence) *Sequence { return s.Trim(ws) }, ""},
		{"", func(s *Sequence) *Sequence { return s.TrimStart(ws) }, ""},
		{"exact", func(s *Sequence) *Sequence { return s.Trim(ws) }, "exact"},
	}
	for _, tt := range tests {
		s := FromString(tt.in)
		if got := tt.fn(&s).String(); got != tt.want {
			t.Errorf("trim(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	s := FromString("  padded  ")
	if got := s.ViewTrim(ViewString(" ")).String(); got != "padded" {
		t.Errorf("ViewTrim = %q", got)
	}
	if got := s.ViewTrimStart(ViewString(" ")).String(); got != "padded  " {
		t.Errorf("ViewTrimStart = %q", got)
	}
	if got := s.ViewTrimEnd(ViewString(" ")).String(); got != "  padded" {
		t.Errorf("ViewTrimEnd = %q", got)
	}
	if s.String() != "  padded  " {
		t.Error("view trims must not mutate")
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		in   string
		iv   interval.Interval
		want string
	}{
		{"abcdef", interval.All(), "fedcba"},
		{"abcdef", interval.RightOpen(1, 4), "adcbef"},
		{"abcdef", interval.From(-2), "abcdfe"},
		{"a", interval.All(), "a"},
		{"", interval.All(), ""},
		{"abcdefghijklmnopqrstuvwxyz", interval.All(), "zyxwvutsrqponmlkjihgfedcba"},
	}
	for _, tt := range tests {
		s := FromString(tt.in)
		if got := s.Reverse(tt.iv).String(); got != tt.want {
			t.Errorf("Reverse(%q, %s) = %q, want %q", tt.in, tt.iv, got, tt.want)
		}
		s.Release()
	}
}

func TestReadWriteAt(t *testing.T) {
	s := FromString("abc")
	s.WriteAt(0, 'A')
	s.WriteAt(-1, 'C')
	if s.String() != "AbC" {
		t.Errorf("got %q", s.String())
	}
	if s.At(-2) != 'b' || s.At(0) != 'A' {
		t.Error("At")
	}
}

func TestSearchDelegation(t *testing.T) {
	s := FromString("one two one two")
	if s.IndexOf(ViewString("two"), interval.All()) != 4 {
		t.Error("IndexOf")
	}
	if s.LastIndexOf(ViewString("one"), interval.All()) != 8 {
		t.Error("LastIndexOf")
	}
	if s.IndexOf(ViewString("three"), interval.All()) != interval.Invalid {
		t.Error("miss should be Invalid")
	}
	if s.Count(ViewString("o")) != 4 {
		t.Errorf("Count = %d", s.Count(ViewString("o")))
	}
	if !s.StartsWith(ViewString("one")) || !s.EndsWith(ViewString("two")) {
		t.Error("StartsWith/EndsWith")
	}
	if got := s.Subview(interval.RightOpen(4, 7)).String(); got != "two" {
		t.Errorf("Subview = %q", got)
	}
}
