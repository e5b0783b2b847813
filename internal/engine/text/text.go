package text

import (
	"iter"

	"golang.org/x/text/runes"

	"github.com/dshills/opentext/internal/engine/codepoint"
	"github.com/dshills/opentext/internal/engine/interval"
	"github.com/dshills/opentext/internal/engine/sequence"
)

// Text is an owning UTF-8 string indexed by codepoint.
// It wraps a sequence.Sequence and follows the same ownership rules:
// use Clone to copy, Take to move and Release to free.
type Text struct {
	seq sequence.Sequence
}

// New creates an empty text.
func New(opts ...sequence.Option) Text {
	return Text{seq: sequence.New(opts...)}
}

// FromString creates a text holding a copy of s.
func FromString(s string, opts ...sequence.Option) Text {
	return Text{seq: sequence.FromString(s, opts...)}
}

// FromView creates a text holding a copy of v.
func FromView(v View, opts ...sequence.Option) Text {
	return Text{seq: sequence.FromView(v.data, opts...)}
}

// FromSequence adopts the content of s, leaving s empty.
func FromSequence(s *sequence.Sequence) Text {
	return Text{seq: s.Take()}
}

// FromScalars encodes scalars as UTF-8. Encoding stops at the first zero
// scalar. The buffer is sized up front so at most one allocation happens.
func FromScalars(scalars []rune, opts ...sequence.Option) Text {
	size := 0
	n := 0
	for _, r := range scalars {
		if r == 0 {
			break
		}
		size += codepoint.Len(codepoint.Codepoint(r))
		n++
	}
	t := Text{seq: sequence.NewWithCapacity(size, opts...)}
	for _, r := range scalars[:n] {
		t.seq.AppendCodepoint(codepoint.Codepoint(r))
	}
	return t
}

// Clone returns a deep copy.
func (t *Text) Clone() Text {
	return Text{seq: t.seq.Clone()}
}

// Take moves the content out of t, leaving it empty.
func (t *Text) Take() Text {
	return Text{seq: t.seq.Take()}
}

// Release frees the underlying buffer. Calling it more than once is safe.
func (t *Text) Release() {
	t.seq.Release()
}

// View returns a codepoint view of the whole text.
func (t *Text) View() View {
	return View{data: t.seq.View()}
}

// Sequence exposes the underlying byte sequence.
func (t *Text) Sequence() *sequence.Sequence {
	return &t.seq
}

// Len returns the number of codepoints. It walks the bytes.
func (t *Text) Len() int {
	return t.View().Len()
}

// ByteLen returns the number of bytes.
func (t *Text) ByteLen() int {
	return t.seq.Len()
}

// IsEmpty returns true if the text holds no codepoints.
func (t *Text) IsEmpty() bool {
	return t.seq.IsEmpty()
}

// Equal reports whether the text holds the same bytes as v.
func (t *Text) Equal(v View) bool {
	return t.seq.Equal(v.data)
}

// EqualString reports whether the text holds exactly s.
func (t *Text) EqualString(s string) bool {
	return t.seq.EqualString(s)
}

// Hash returns the hash of the bytes. See sequence.View.Hash.
func (t *Text) Hash() uint32 {
	return t.seq.Hash()
}

// String returns a copy of the text.
func (t *Text) String() string {
	return t.seq.String()
}

// CString returns the content followed by its terminating zero byte.
func (t *Text) CString() []byte {
	return t.seq.CString()
}

// Append copies v onto the end of the text.
func (t *Text) Append(v View) *Text {
	t.seq.Append(v.data)
	return t
}

// AppendString copies s onto the end of the text.
func (t *Text) AppendString(s string) *Text {
	t.seq.AppendString(s)
	return t
}

// AppendCodepoint encodes cp onto the end of the text.
func (t *Text) AppendCodepoint(cp codepoint.Codepoint) *Text {
	t.seq.AppendCodepoint(cp)
	return t
}

// Subview returns a view of the codepoints selected by iv.
func (t *Text) Subview(iv interval.Interval) View {
	return t.View().Subview(iv)
}

// Subtext keeps only the codepoints selected by iv, in place.
func (t *Text) Subtext(iv interval.Interval) *Text {
	t.seq.Subsequence(t.View().CodeunitRange(iv).Interval())
	return t
}

// IndexOf returns the codepoint index of the first occurrence of pattern
// within iv, or interval.Invalid.
func (t *Text) IndexOf(pattern View, iv interval.Interval) int {
	return t.View().IndexOf(pattern, iv)
}

// LastIndexOf returns the codepoint index of the last occurrence of pattern
// within iv, or interval.Invalid.
func (t *Text) LastIndexOf(pattern View, iv interval.Interval) int {
	return t.View().LastIndexOf(pattern, iv)
}

// Count returns the number of non-overlapping occurrences of pattern.
func (t *Text) Count(pattern View) int {
	return t.View().Count(pattern)
}

// StartsWith reports whether the text begins with prefix.
func (t *Text) StartsWith(prefix View) bool {
	return t.View().StartsWith(prefix)
}

// EndsWith reports whether the text ends with suffix.
func (t *Text) EndsWith(suffix View) bool {
	return t.View().EndsWith(suffix)
}

// Clear empties the text, keeping its capacity.
func (t *Text) Clear() {
	t.seq.Clear()
}

// At returns the codepoint at index. A negative index addresses from the end.
func (t *Text) At(index int) codepoint.Codepoint {
	return t.View().At(index)
}

// WriteAt replaces the codepoint at index with cp. The encoded lengths may
// differ. A negative index addresses from the end.
func (t *Text) WriteAt(index int, cp codepoint.Codepoint) {
	t.ReplaceRange(interval.Closed(index, index), ViewCodepoint(cp))
}

// Reverse reverses the order of the codepoints selected by iv, in place.
// Each codepoint keeps its own byte order.
func (t *Text) Reverse(iv interval.Interval) *Text {
	r := t.View().CodeunitRange(iv)
	t.seq.Reverse(r.Interval())

	// Byte reversal leaves every multi-byte codepoint with its lead byte
	// last; flip each such run back.
	lower := r.Min
	for i := r.Min; i < r.Max; i++ {
		if codepoint.SequenceLen(t.seq.At(i)) != 0 {
			t.seq.Reverse(interval.Closed(lower, i))
			lower = i + 1
		}
	}
	return t
}

// Split cuts the text at every occurrence of splitter and returns the pieces
// as views into the text.
func (t *Text) Split(splitter View, cullEmpty bool) []View {
	var pieces []View
	t.SplitInto(splitter, &pieces, cullEmpty)
	return pieces
}

// SplitInto appends the pieces to *pieces and returns how many pieces the
// splitter produced, culled ones included.
func (t *Text) SplitInto(splitter View, pieces *[]View, cullEmpty bool) int {
	return t.View().SplitInto(splitter, pieces, cullEmpty)
}

// Pieces yields the pieces lazily.
func (t *Text) Pieces(splitter View, cullEmpty bool) iter.Seq[View] {
	return t.View().Pieces(splitter, cullEmpty)
}

// Replace substitutes every non-overlapping occurrence of pattern within
// the codepoints selected by iv.
func (t *Text) Replace(pattern, replacement View, iv interval.Interval) *Text {
	r := t.View().CodeunitRange(iv)
	t.seq.Replace(pattern.data, replacement.data, r.Interval())
	return t
}

// ReplaceRange splices dest over the codepoints selected by iv.
// An empty selection is a no-op.
func (t *Text) ReplaceRange(iv interval.Interval, dest View) *Text {
	r := t.View().CodeunitRange(iv)
	t.seq.ReplaceRange(r.Interval(), dest.data)
	return t
}

// RemovePrefix drops prefix from the start if present.
func (t *Text) RemovePrefix(prefix View) *Text {
	t.seq.RemovePrefix(prefix.data)
	return t
}

// RemoveSuffix drops suffix from the end if present.
func (t *Text) RemoveSuffix(suffix View) *Text {
	t.seq.RemoveSuffix(suffix.data)
	return t
}

// TrimStart removes leading codepoints contained in set.
func (t *Text) TrimStart(set View) *Text {
	return t.trimStart(set.Contains)
}

// TrimEnd removes trailing codepoints contained in set.
func (t *Text) TrimEnd(set View) *Text {
	return t.trimEnd(set.Contains)
}

// Trim removes leading and trailing codepoints contained in set.
func (t *Text) Trim(set View) *Text {
	return t.TrimEnd(set).TrimStart(set)
}

// TrimStartSet removes leading codepoints in set.
func (t *Text) TrimStartSet(set runes.Set) *Text {
	return t.trimStart(inSet(set))
}

// TrimEndSet removes trailing codepoints in set.
func (t *Text) TrimEndSet(set runes.Set) *Text {
	return t.trimEnd(inSet(set))
}

// TrimSet removes leading and trailing codepoints in set.
func (t *Text) TrimSet(set runes.Set) *Text {
	return t.TrimEndSet(set).TrimStartSet(set)
}

// ViewTrimStart returns a view without the leading codepoints in set.
// The text is not modified.
func (t *Text) ViewTrimStart(set View) View {
	return t.View().TrimStart(set)
}

// ViewTrimEnd returns a view without the trailing codepoints in set.
func (t *Text) ViewTrimEnd(set View) View {
	return t.View().TrimEnd(set)
}

// ViewTrim returns a view without leading and trailing codepoints in set.
func (t *Text) ViewTrim(set View) View {
	return t.View().Trim(set)
}

func (t *Text) trimStart(keep func(codepoint.Codepoint) bool) *Text {
	if n := leadingLen(t.seq.Bytes(), keep); n > 0 {
		t.seq.Subsequence(interval.From(n))
	}
	return t
}

func (t *Text) trimEnd(keep func(codepoint.Codepoint) bool) *Text {
	b := t.seq.Bytes()
	if n := trailingLen(b, keep); n > 0 {
		t.seq.Subsequence(interval.Until(len(b) - n))
	}
	return t
}
