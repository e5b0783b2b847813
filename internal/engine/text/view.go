package text

import (
	"iter"

	"golang.org/x/text/runes"

	"github.com/dshills/opentext/internal/engine/codepoint"
	"github.com/dshills/opentext/internal/engine/interval"
	"github.com/dshills/opentext/internal/engine/sequence"
)

// View is a borrowed sequence of codepoints over UTF-8 bytes.
// Positions and ranges are counted in codepoints.
type View struct {
	data sequence.View
}

// ViewOf returns a codepoint view over a byte view.
func ViewOf(v sequence.View) View {
	return View{data: v}
}

// ViewString returns a view of s without copying.
func ViewString(s string) View {
	return View{data: sequence.ViewString(s)}
}

// ViewCodepoint returns a view holding the single codepoint cp.
func ViewCodepoint(cp codepoint.Codepoint) View {
	return View{data: sequence.ViewCodepoint(cp)}
}

// Data returns the underlying byte view.
func (v View) Data() sequence.View {
	return v.data
}

// Len returns the number of codepoints. It walks the bytes.
func (v View) Len() int {
	return codepoint.Count(v.data.Bytes())
}

// ByteLen returns the number of bytes.
func (v View) ByteLen() int {
	return v.data.Len()
}

// IsEmpty returns true if the view holds no codepoints.
func (v View) IsEmpty() bool {
	return v.data.IsEmpty()
}

// String returns a copy of the text.
func (v View) String() string {
	return v.data.String()
}

// At returns the codepoint at index. A negative index addresses from the end.
// Indexing past the codepoint count is a precondition violation.
func (v View) At(index int) codepoint.Codepoint {
	b := v.data.Bytes()
	if index < 0 {
		end := len(b)
		for ; index < 0; index++ {
			_, size := codepoint.DecodeLast(b[:end])
			end -= size
		}
		cp, _ := codepoint.Decode(b[end:])
		return cp
	}
	cp, _ := codepoint.Decode(b[v.CodeunitIndex(index):])
	return cp
}

// CodeunitIndex returns the byte offset of the codepoint at index, walking
// forward from the start. An index at or past the end yields ByteLen.
func (v View) CodeunitIndex(index int) int {
	b := v.data.Bytes()
	offset := 0
	for i := 0; i < index && offset < len(b); i++ {
		offset += step(b[offset])
	}
	return offset
}

// codeunitIndexFromEnd returns the byte offset that lies back codepoints
// before the end.
func (v View) codeunitIndexFromEnd(back int) int {
	b := v.data.Bytes()
	end := len(b)
	for ; back > 0 && end > 0; back-- {
		_, size := codepoint.DecodeLast(b[:end])
		end -= size
	}
	return end
}

// CodeunitRange converts a codepoint interval into the corresponding byte
// range. The lower bound is found by walking from the start and the upper
// bound by walking back from the end.
func (v View) CodeunitRange(iv interval.Interval) interval.Range {
	count := v.Len()
	r := iv.Select(count)
	if r.IsEmpty() {
		at := v.CodeunitIndex(r.Min)
		return interval.Range{Min: at, Max: at}
	}
	return interval.Range{
		Min: v.CodeunitIndex(r.Min),
		Max: v.codeunitIndexFromEnd(count - r.Max),
	}
}

// codepointIndex converts a byte offset on a codepoint boundary into a
// codepoint index.
func (v View) codepointIndex(offset int) int {
	return codepoint.Count(v.data.Bytes()[:offset])
}

// Subview returns the codepoints selected by iv.
func (v View) Subview(iv interval.Interval) View {
	return View{data: v.data.Subview(v.CodeunitRange(iv).Interval())}
}

// IndexOf returns the codepoint index of the first occurrence of pattern
// within iv, or interval.Invalid.
func (v View) IndexOf(pattern View, iv interval.Interval) int {
	i := v.data.IndexOf(pattern.data, v.CodeunitRange(iv).Interval())
	if i == interval.Invalid {
		return interval.Invalid
	}
	return v.codepointIndex(i)
}

// LastIndexOf returns the codepoint index of the last occurrence of pattern
// within iv, or interval.Invalid.
func (v View) LastIndexOf(pattern View, iv interval.Interval) int {
	i := v.data.LastIndexOf(pattern.data, v.CodeunitRange(iv).Interval())
	if i == interval.Invalid {
		return interval.Invalid
	}
	return v.codepointIndex(i)
}

// Count returns the number of non-overlapping occurrences of pattern.
func (v View) Count(pattern View) int {
	return v.data.Count(pattern.data)
}

// StartsWith reports whether the text begins with prefix.
func (v View) StartsWith(prefix View) bool {
	return v.data.StartsWith(prefix.data)
}

// EndsWith reports whether the text ends with suffix.
func (v View) EndsWith(suffix View) bool {
	return v.data.EndsWith(suffix.data)
}

// Contains reports whether cp is one of the codepoints of the view.
// Used when the view acts as a character set.
func (v View) Contains(cp codepoint.Codepoint) bool {
	buf, n := cp.Bytes()
	return v.data.IndexOf(sequence.ViewOf(buf[:n]), interval.All()) != interval.Invalid
}

// RemovePrefix returns the view without prefix, if present.
func (v View) RemovePrefix(prefix View) View {
	return View{data: v.data.RemovePrefix(prefix.data)}
}

// RemoveSuffix returns the view without suffix, if present.
func (v View) RemoveSuffix(suffix View) View {
	return View{data: v.data.RemoveSuffix(suffix.data)}
}

// TrimStart skips leading codepoints contained in set.
func (v View) TrimStart(set View) View {
	return v.trimStart(set.Contains)
}

// TrimEnd skips trailing codepoints contained in set.
func (v View) TrimEnd(set View) View {
	return v.trimEnd(set.Contains)
}

// Trim skips leading and trailing codepoints contained in set.
func (v View) Trim(set View) View {
	return v.TrimEnd(set).TrimStart(set)
}

// TrimStartSet skips leading codepoints in set.
func (v View) TrimStartSet(set runes.Set) View {
	return v.trimStart(inSet(set))
}

// TrimEndSet skips trailing codepoints in set.
func (v View) TrimEndSet(set runes.Set) View {
	return v.trimEnd(inSet(set))
}

// TrimSet skips leading and trailing codepoints in set.
func (v View) TrimSet(set runes.Set) View {
	return v.TrimEndSet(set).TrimStartSet(set)
}

func (v View) trimStart(keep func(codepoint.Codepoint) bool) View {
	return View{data: v.data.Subview(interval.From(leadingLen(v.data.Bytes(), keep)))}
}

func (v View) trimEnd(keep func(codepoint.Codepoint) bool) View {
	b := v.data.Bytes()
	return View{data: v.data.Subview(interval.Until(len(b) - trailingLen(b, keep)))}
}

// Split cuts the view around the first occurrence of splitter.
func (v View) Split(splitter View) (left, right View) {
	l, r := v.data.Split(splitter.data)
	return View{data: l}, View{data: r}
}

// SplitInto appends the pieces produced by splitter to *pieces and returns
// how many pieces were produced, culled empty ones included.
func (v View) SplitInto(splitter View, pieces *[]View, cullEmpty bool) int {
	var raw []sequence.View
	count := v.data.SplitInto(splitter.data, &raw, cullEmpty)
	for _, piece := range raw {
		*pieces = append(*pieces, View{data: piece})
	}
	return count
}

// Pieces yields the pieces lazily, in order.
func (v View) Pieces(splitter View, cullEmpty bool) iter.Seq[View] {
	return func(yield func(View) bool) {
		for piece := range v.data.Pieces(splitter.data, cullEmpty) {
			if !yield(View{data: piece}) {
				return
			}
		}
	}
}

// Hash returns the hash of the bytes. See sequence.View.Hash.
func (v View) Hash() uint32 {
	return v.data.Hash()
}

// Equal reports whether both views hold the same text.
func (v View) Equal(other View) bool {
	return v.data.Equal(other.data)
}

// EqualString reports whether the view holds exactly s.
func (v View) EqualString(s string) bool {
	return v.data.EqualString(s)
}

// All yields each codepoint with its codepoint index.
func (v View) All() iter.Seq2[int, codepoint.Codepoint] {
	return func(yield func(int, codepoint.Codepoint) bool) {
		b := v.data.Bytes()
		for i, offset := 0, 0; offset < len(b); i++ {
			cp, size := codepoint.Decode(b[offset:])
			if !yield(i, cp) {
				return
			}
			offset += size
		}
	}
}

// step returns how far to advance past the codepoint led by b.
// Malformed continuation bytes advance by one so walks always terminate.
func step(b byte) int {
	if n := codepoint.SequenceLen(b); n > 0 {
		return n
	}
	return 1
}

// leadingLen returns the byte length of the longest prefix of b whose
// codepoints all satisfy keep.
func leadingLen(b []byte, keep func(codepoint.Codepoint) bool) int {
	offset := 0
	for offset < len(b) {
		cp, size := codepoint.Decode(b[offset:])
		if !keep(cp) {
			break
		}
		offset += size
	}
	return offset
}

// trailingLen returns the byte length of the longest suffix of b whose
// codepoints all satisfy keep.
func trailingLen(b []byte, keep func(codepoint.Codepoint) bool) int {
	end := len(b)
	for end > 0 {
		cp, size := codepoint.DecodeLast(b[:end])
		if !keep(cp) {
			break
		}
		end -= size
	}
	return len(b) - end
}

func inSet(set runes.Set) func(codepoint.Codepoint) bool {
	return func(cp codepoint.Codepoint) bool {
		return set.Contains(rune(cp))
	}
}
