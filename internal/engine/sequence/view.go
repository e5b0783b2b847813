package sequence

import (
	"bytes"
	"hash/fnv"

	"github.com/dshills/opentext/internal/engine/codepoint"
	"github.com/dshills/opentext/internal/engine/interval"
)

// View is a borrowed, read-only range of UTF-8 bytes.
// It never owns memory and must not outlive the buffer it refers to.
type View struct {
	data []byte
}

// ViewOf returns a view of b. The view aliases b.
func ViewOf(b []byte) View {
	return View{data: b}
}

// ViewString returns a view of s without copying.
func ViewString(s string) View {
	return View{data: stringBytes(s)}
}

// ViewCString returns a view of b up to (not including) the first zero byte.
func ViewCString(b []byte) View {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return View{data: b[:i]}
	}
	return View{data: b}
}

// ViewBetween returns a view of buf[begin:end].
func ViewBetween(buf []byte, begin, end int) View {
	return View{data: buf[begin:end:end]}
}

// ViewCodepoint returns a view holding the encoding of cp.
// The bytes are stored in a fresh array owned by the view.
func ViewCodepoint(cp codepoint.Codepoint) View {
	buf, n := cp.Bytes()
	return View{data: buf[:n]}
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.data)
}

// IsEmpty returns true if the view contains no bytes.
func (v View) IsEmpty() bool {
	return len(v.data) == 0
}

// Bytes returns the viewed bytes. The slice aliases the owner and must not
// be modified through the view.
func (v View) Bytes() []byte {
	return v.data
}

// String returns a copy of the viewed bytes as a string.
func (v View) String() string {
	return string(v.data)
}

// At returns the byte at index. A negative index addresses from the end.
// Indexing outside the view is a precondition violation and panics.
func (v View) At(index int) byte {
	if index < 0 {
		index += len(v.data)
	}
	return v.data[index]
}

// Subview returns the part of the view selected by iv.
func (v View) Subview(iv interval.Interval) View {
	r := iv.Select(len(v.data))
	return View{data: v.data[r.Min:r.Max:r.Max]}
}

// IndexOf returns the index of the first occurrence of pattern that lies
// entirely within iv, or interval.Invalid.
func (v View) IndexOf(pattern View, iv interval.Interval) int {
	r := iv.Select(len(v.data))
	if pattern.Len() > r.Len() {
		return interval.Invalid
	}
	i := bytes.Index(v.data[r.Min:r.Max], pattern.data)
	if i < 0 {
		return interval.Invalid
	}
	return r.Min + i
}

// LastIndexOf returns the index of the last occurrence of pattern that lies
// entirely within iv, or interval.Invalid.
func (v View) LastIndexOf(pattern View, iv interval.Interval) int {
	r := iv.Select(len(v.data))
	if pattern.Len() > r.Len() {
		return interval.Invalid
	}
	i := bytes.LastIndex(v.data[r.Min:r.Max], pattern.data)
	if i < 0 {
		return interval.Invalid
	}
	return r.Min + i
}

// Count returns the number of non-overlapping occurrences of pattern.
// An empty pattern counts zero.
func (v View) Count(pattern View) int {
	if pattern.IsEmpty() {
		return 0
	}
	return bytes.Count(v.data, pattern.data)
}

// StartsWith reports whether the view begins with prefix.
func (v View) StartsWith(prefix View) bool {
	return bytes.HasPrefix(v.data, prefix.data)
}

// EndsWith reports whether the view ends with suffix.
func (v View) EndsWith(suffix View) bool {
	return bytes.HasSuffix(v.data, suffix.data)
}

// Contains reports whether b is one of the bytes of the view.
// Used when the view acts as a character set.
func (v View) Contains(b byte) bool {
	return bytes.IndexByte(v.data, b) >= 0
}

// RemovePrefix returns the view without prefix, or the view unchanged if it
// does not start with prefix.
func (v View) RemovePrefix(prefix View) View {
	if !v.StartsWith(prefix) {
		return v
	}
	return View{data: v.data[prefix.Len():]}
}

// RemoveSuffix returns the view without suffix, or the view unchanged if it
// does not end with suffix.
func (v View) RemoveSuffix(suffix View) View {
	if !v.EndsWith(suffix) {
		return v
	}
	end := len(v.data) - suffix.Len()
	return View{data: v.data[:end:end]}
}

// TrimStart skips leading bytes contained in set.
func (v View) TrimStart(set View) View {
	for i, b := range v.data {
		if !set.Contains(b) {
			return View{data: v.data[i:]}
		}
	}
	return View{}
}

// TrimEnd skips trailing bytes contained in set.
func (v View) TrimEnd(set View) View {
	for i := len(v.data) - 1; i >= 0; i-- {
		if !set.Contains(v.data[i]) {
			return View{data: v.data[: i+1 : i+1]}
		}
	}
	return View{}
}

// Trim skips leading and trailing bytes contained in set.
func (v View) Trim(set View) View {
	return v.TrimEnd(set).TrimStart(set)
}

// Split cuts the view around the first occurrence of splitter.
// If splitter does not occur (or is empty) it returns the whole view and
// an empty remainder.
func (v View) Split(splitter View) (left, right View) {
	if splitter.IsEmpty() {
		return v, View{}
	}
	i := bytes.Index(v.data, splitter.data)
	if i < 0 {
		return v, View{}
	}
	return View{data: v.data[:i:i]}, View{data: v.data[i+splitter.Len():]}
}

// Hash returns the 32-bit FNV-1a hash of the bytes.
// Equal content always produces equal hashes.
func (v View) Hash() uint32 {
	h := fnv.New32a()
	_, _ = h.Write(v.data)
	return h.Sum32()
}

// Equal reports whether both views hold the same bytes.
func (v View) Equal(other View) bool {
	return bytes.Equal(v.data, other.data)
}

// EqualString reports whether the view holds exactly the bytes of s.
func (v View) EqualString(s string) bool {
	return string(v.data) == s
}

// Compare returns -1, 0 or +1 comparing the bytes lexicographically.
func (v View) Compare(other View) int {
	return bytes.Compare(v.data, other.data)
}
