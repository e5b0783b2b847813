package sequence

import (
	"math"
	"math/bits"

	"github.com/dshills/opentext/internal/engine/alloc"
	"github.com/dshills/opentext/internal/engine/codepoint"
	"github.com/dshills/opentext/internal/engine/interval"
)

// InlineCapacity is the largest length stored without a heap buffer.
const InlineCapacity = 15

// MaxLen is the largest supported length. Lengths and capacities are
// stored as int32.
const MaxLen = math.MaxInt32 - 1

// tag discriminates the two storage representations.
type tag uint8

const (
	tagInline tag = iota
	tagHeap
)

// inlineStore keeps short content inside the value, plus the terminator slot.
type inlineStore struct {
	len   uint8
	bytes [InlineCapacity + 1]byte
}

// heapStore owns an allocator-provided buffer of cap+1 bytes.
type heapStore struct {
	len  int32
	cap  int32
	data []byte
}

// Sequence is an owning, null-terminated UTF-8 byte buffer.
// The zero value is an empty inline sequence ready to use.
type Sequence struct {
	tag   tag
	small inlineStore
	large heapStore
	alloc alloc.Allocator[byte]
}

// CapacityFor returns the capacity allocated for a requested size:
// InlineCapacity when the size fits inline, otherwise
// nextPowerOfTwo(size+1)-1 where a power of two maps to itself.
// Sizes past MaxLen panic; capacities are capped at MaxLen.
func CapacityFor(size int) int {
	if size <= InlineCapacity {
		return InlineCapacity
	}
	if size > MaxLen {
		panic("sequence: size exceeds MaxLen")
	}
	return min(int(nextPowerOfTwo(uint32(size+1)))-1, MaxLen)
}

func nextPowerOfTwo(v uint32) uint32 {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len32(v-1)
}

// New creates an empty sequence.
func New(opts ...Option) Sequence {
	var s Sequence
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewWithCapacity creates an empty sequence able to hold size bytes without
// reallocating.
func NewWithCapacity(size int, opts ...Option) Sequence {
	s := New(opts...)
	if size > InlineCapacity {
		s.adopt(s.allocate(CapacityFor(size)), 0)
	}
	return s
}

// FromView creates a sequence holding a copy of v.
func FromView(v View, opts ...Option) Sequence {
	s := NewWithCapacity(v.Len(), opts...)
	d := s.buffer()
	n := copy(d, v.data)
	s.setLen(n)
	return s
}

// FromString creates a sequence holding a copy of str.
func FromString(str string, opts ...Option) Sequence {
	return FromView(ViewString(str), opts...)
}

// FromBytes creates a sequence holding a copy of b.
func FromBytes(b []byte, opts ...Option) Sequence {
	return FromView(ViewOf(b), opts...)
}

// FromCString creates a sequence from b up to the first zero byte.
func FromCString(b []byte, opts ...Option) Sequence {
	return FromView(ViewCString(b), opts...)
}

// FromBetween creates a sequence from buf[begin:end].
func FromBetween(buf []byte, begin, end int, opts ...Option) Sequence {
	return FromView(ViewBetween(buf, begin, end), opts...)
}

// Clone returns a deep copy using the same allocator.
func (s *Sequence) Clone() Sequence {
	return FromView(s.View(), WithAllocator(s.alloc))
}

// Take moves the content out of s. The returned sequence owns the buffer;
// s is reset to an empty inline sequence.
func (s *Sequence) Take() Sequence {
	out := *s
	*s = Sequence{alloc: s.alloc}
	return out
}

// Release frees the heap buffer, if any, and leaves s empty.
// Calling Release more than once is safe.
func (s *Sequence) Release() {
	if s.tag == tagHeap {
		s.allocator().DeallocateArray(s.large.data)
	}
	*s = Sequence{alloc: s.alloc}
}

// Len returns the number of bytes.
func (s *Sequence) Len() int {
	if s.tag == tagInline {
		return int(s.small.len)
	}
	return int(s.large.len)
}

// Capacity returns how many bytes fit without reallocating.
func (s *Sequence) Capacity() int {
	if s.tag == tagInline {
		return InlineCapacity
	}
	return int(s.large.cap)
}

// IsEmpty returns true if the sequence holds no bytes.
func (s *Sequence) IsEmpty() bool {
	return s.Len() == 0
}

// IsInline reports whether the content is stored without a heap buffer.
func (s *Sequence) IsInline() bool {
	return s.tag == tagInline
}

// View returns a view of the content. It is invalidated by any operation
// that may reallocate.
func (s *Sequence) View() View {
	n := s.Len()
	return View{data: s.buffer()[:n:n]}
}

// Bytes returns the content. The slice aliases the sequence.
func (s *Sequence) Bytes() []byte {
	return s.View().data
}

// CString returns the content followed by its zero terminator.
func (s *Sequence) CString() []byte {
	return s.buffer()[:s.Len()+1]
}

// String returns a copy of the content.
func (s *Sequence) String() string {
	return string(s.Bytes())
}

// Equal reports whether the content equals v.
func (s *Sequence) Equal(v View) bool {
	return s.View().Equal(v)
}

// EqualString reports whether the content equals str.
func (s *Sequence) EqualString(str string) bool {
	return s.View().EqualString(str)
}

// Hash returns the hash of the content. See View.Hash.
func (s *Sequence) Hash() uint32 {
	return s.View().Hash()
}

// Reserve makes room for at least size bytes.
// It does nothing if the capacity is already sufficient.
func (s *Sequence) Reserve(size int) {
	s.release(s.grow(size))
}

// grow reallocates to fit size bytes and returns the previous heap buffer
// (nil if none) so callers may still read from it before releasing it.
func (s *Sequence) grow(size int) []byte {
	if size <= s.Capacity() {
		return nil
	}
	n := s.Len()
	buf := s.allocate(CapacityFor(size))
	copy(buf, s.buffer()[:n])
	var old []byte
	if s.tag == tagHeap {
		old = s.large.data
	}
	s.install(buf, n)
	return old
}

// Append adds v after the current content. v may view s itself.
func (s *Sequence) Append(v View) *Sequence {
	n := s.Len()
	total := n + v.Len()
	old := s.grow(total)
	copy(s.buffer()[n:], v.data)
	s.setLen(total)
	s.release(old)
	return s
}

// AppendString adds str after the current content.
func (s *Sequence) AppendString(str string) *Sequence {
	return s.Append(ViewString(str))
}

// AppendByte adds a single byte.
func (s *Sequence) AppendByte(b byte) *Sequence {
	n := s.Len()
	s.Reserve(n + 1)
	s.buffer()[n] = b
	s.setLen(n + 1)
	return s
}

// AppendCodepoint adds the UTF-8 encoding of cp.
func (s *Sequence) AppendCodepoint(cp codepoint.Codepoint) *Sequence {
	buf, n := cp.Bytes()
	return s.Append(View{data: buf[:n]})
}

// AppendRepeat adds count copies of b.
func (s *Sequence) AppendRepeat(count int, b byte) *Sequence {
	if count <= 0 {
		return s
	}
	n := s.Len()
	total := n + count
	s.Reserve(total)
	d := s.buffer()[n:total]
	for i := range d {
		d[i] = b
	}
	s.setLen(total)
	return s
}

// Concat returns a new sequence holding the content followed by v.
func (s *Sequence) Concat(v View) Sequence {
	out := NewWithCapacity(s.Len()+v.Len(), WithAllocator(s.alloc))
	out.Append(s.View())
	out.Append(v)
	return out
}

// Clear empties the sequence, keeping its capacity.
func (s *Sequence) Clear() {
	s.setLen(0)
}

// ClearWithCapacity empties the sequence and ensures room for size bytes.
// Existing content is discarded rather than copied when reallocating.
func (s *Sequence) ClearWithCapacity(size int) {
	if size <= s.Capacity() {
		s.Clear()
		return
	}
	s.adopt(s.allocate(CapacityFor(size)), 0)
}

// Subview returns a view of the bytes selected by iv.
func (s *Sequence) Subview(iv interval.Interval) View {
	return s.View().Subview(iv)
}

// Subsequence keeps only the bytes selected by iv, in place.
// It never reallocates; the full range is a no-op.
func (s *Sequence) Subsequence(iv interval.Interval) *Sequence {
	n := s.Len()
	r := iv.Select(n)
	if r.IsEmpty() {
		s.Clear()
		return s
	}
	if r.Min == 0 && r.Max == n {
		return s
	}
	if r.Min != 0 {
		d := s.buffer()
		copy(d, d[r.Min:r.Max])
	}
	s.setLen(r.Len())
	return s
}

// RemovePrefix drops prefix from the start if present.
func (s *Sequence) RemovePrefix(prefix View) *Sequence {
	if !s.StartsWith(prefix) {
		return s
	}
	return s.Subsequence(interval.From(prefix.Len()))
}

// RemoveSuffix drops suffix from the end if present.
func (s *Sequence) RemoveSuffix(suffix View) *Sequence {
	if !s.EndsWith(suffix) {
		return s
	}
	return s.Subsequence(interval.Until(s.Len() - suffix.Len()))
}

// ViewRemovePrefix returns a view without prefix. See View.RemovePrefix.
func (s *Sequence) ViewRemovePrefix(prefix View) View {
	return s.View().RemovePrefix(prefix)
}

// ViewRemoveSuffix returns a view without suffix. See View.RemoveSuffix.
func (s *Sequence) ViewRemoveSuffix(suffix View) View {
	return s.View().RemoveSuffix(suffix)
}

// IndexOf returns the first index of pattern within iv, or interval.Invalid.
func (s *Sequence) IndexOf(pattern View, iv interval.Interval) int {
	return s.View().IndexOf(pattern, iv)
}

// LastIndexOf returns the last index of pattern within iv, or interval.Invalid.
func (s *Sequence) LastIndexOf(pattern View, iv interval.Interval) int {
	return s.View().LastIndexOf(pattern, iv)
}

// Count returns the number of non-overlapping occurrences of pattern.
func (s *Sequence) Count(pattern View) int {
	return s.View().Count(pattern)
}

// StartsWith reports whether the content begins with prefix.
func (s *Sequence) StartsWith(prefix View) bool {
	return s.View().StartsWith(prefix)
}

// EndsWith reports whether the content ends with suffix.
func (s *Sequence) EndsWith(suffix View) bool {
	return s.View().EndsWith(suffix)
}

// TrimStart removes leading bytes contained in set. It shifts the remaining
// bytes down.
func (s *Sequence) TrimStart(set View) *Sequence {
	d := s.Bytes()
	for i, b := range d {
		if !set.Contains(b) {
			return s.Subsequence(interval.From(i))
		}
	}
	s.Clear()
	return s
}

// TrimEnd removes trailing bytes contained in set. It never copies.
func (s *Sequence) TrimEnd(set View) *Sequence {
	d := s.Bytes()
	for i := len(d) - 1; i >= 0; i-- {
		if !set.Contains(d[i]) {
			return s.Subsequence(interval.Through(i))
		}
	}
	s.Clear()
	return s
}

// Trim removes leading and trailing bytes contained in set.
func (s *Sequence) Trim(set View) *Sequence {
	// Trimming the end is a truncation; doing it first shrinks the later shift
	return s.TrimEnd(set).TrimStart(set)
}

// ViewTrimStart returns a view without leading bytes from set.
func (s *Sequence) ViewTrimStart(set View) View {
	return s.View().TrimStart(set)
}

// ViewTrimEnd returns a view without trailing bytes from set.
func (s *Sequence) ViewTrimEnd(set View) View {
	return s.View().TrimEnd(set)
}

// ViewTrim returns a view without leading and trailing bytes from set.
func (s *Sequence) ViewTrim(set View) View {
	return s.View().Trim(set)
}

// Reverse reverses the bytes selected by iv in place.
func (s *Sequence) Reverse(iv interval.Interval) *Sequence {
	r := iv.Select(s.Len())
	d := s.buffer()
	for i, j := r.Min, r.Max-1; i < j; i, j = i+1, j-1 {
		d[i], d[j] = d[j], d[i]
	}
	return s
}

// At returns the byte at index. A negative index addresses from the end.
func (s *Sequence) At(index int) byte {
	return s.View().At(index)
}

// WriteAt overwrites the byte at index. A negative index addresses from the end.
// Indexing outside the content is a precondition violation and panics.
func (s *Sequence) WriteAt(index int, b byte) {
	if index < 0 {
		index += s.Len()
	}
	s.Bytes()[index] = b
}

// allocator returns the configured allocator or alloc.Default.
func (s *Sequence) allocator() alloc.Allocator[byte] {
	if s.alloc == nil {
		return alloc.Default
	}
	return s.alloc
}

// allocate obtains a buffer for capacity bytes plus the terminator.
func (s *Sequence) allocate(capacity int) []byte {
	return s.allocator().AllocateArray(capacity + 1)
}

// release hands a former heap buffer back to the allocator.
func (s *Sequence) release(buf []byte) {
	if buf != nil {
		s.allocator().DeallocateArray(buf)
	}
}

// buffer returns the whole storage including the terminator slot.
func (s *Sequence) buffer() []byte {
	if s.tag == tagInline {
		return s.small.bytes[:]
	}
	return s.large.data
}

// install switches to heap storage over buf without releasing anything.
// The inline bytes are left as they were so a view of them stays readable
// until the caller is done copying.
func (s *Sequence) install(buf []byte, length int) {
	s.tag = tagHeap
	s.large = heapStore{
		len:  int32(length),
		cap:  int32(len(buf) - 1),
		data: buf,
	}
	buf[length] = 0
}

// adopt installs buf and releases the previous heap buffer.
func (s *Sequence) adopt(buf []byte, length int) {
	var old []byte
	if s.tag == tagHeap {
		old = s.large.data
	}
	s.install(buf, length)
	s.release(old)
}

// setLen updates the length and rewrites the terminator.
func (s *Sequence) setLen(n int) {
	if s.tag == tagInline {
		s.small.len = uint8(n)
		s.small.bytes[n] = 0
		return
	}
	s.large.len = int32(n)
	s.large.data[n] = 0
}
