package sequence

import (
	"bytes"

	"github.com/dshills/opentext/internal/engine/interval"
)

// Replace substitutes every non-overlapping occurrence of pattern that lies
// within iv with replacement. Matches are taken left to right. An empty
// pattern or no match leaves the sequence untouched.
//
// Neither pattern nor replacement may view the receiver's bytes.
func (s *Sequence) Replace(pattern, replacement View, iv interval.Interval) *Sequence {
	if pattern.IsEmpty() {
		return s
	}
	size := s.Len()
	sel := iv.Select(size)
	count := s.View().Subview(sel.Interval()).Count(pattern)
	if count == 0 {
		return s
	}

	delta := replacement.Len() - pattern.Len()
	final := size + delta*count

	switch {
	case delta == 0:
		s.replaceSameLength(pattern, replacement, sel)
	case delta < 0:
		s.replaceShrink(pattern, replacement, sel)
	case final > s.Capacity():
		s.replaceReallocate(pattern, replacement, sel, final)
	case hasBorder(pattern.data):
		// Self-overlapping patterns may match differently when searched from
		// the end, so they take the forward path through a scratch buffer.
		s.replaceViaScratch(pattern, replacement, sel, final)
	default:
		s.replaceGrowInPlace(pattern, replacement, sel, count, final)
	}
	return s
}

// replaceSameLength rewrites each match in place, front to back.
func (s *Sequence) replaceSameLength(pattern, replacement View, sel interval.Range) {
	d := s.buffer()
	v := s.View()
	at := sel.Min
	for {
		i := v.IndexOf(pattern, interval.Span(at, sel.Max))
		if i == interval.Invalid {
			return
		}
		copy(d[i:], replacement.data)
		at = i + pattern.Len()
	}
}

// replaceShrink compacts the content in a single forward pass.
// The write cursor never passes the read cursor because every match gives
// back at least one byte, so unread bytes are never clobbered.
func (s *Sequence) replaceShrink(pattern, replacement View, sel interval.Range) {
	d := s.buffer()
	v := s.View()
	size := v.Len()
	read, write := sel.Min, sel.Min
	for {
		i := v.IndexOf(pattern, interval.Span(read, sel.Max))
		if i == interval.Invalid {
			break
		}
		write += copy(d[write:], d[read:i])
		write += copy(d[write:], replacement.data)
		read = i + pattern.Len()
	}
	write += copy(d[write:], d[read:size])
	s.setLen(write)
}

// replaceGrowInPlace widens the content inside the existing buffer by
// walking matches from the end.
//
// Loop invariant: before handling the k-th match from the end, the write
// cursor sits (remaining matches × delta) bytes right of the read cursor, so
// the write cursor never precedes the next unread source byte. Bytes left of
// the read cursor are therefore still original when LastIndexOf scans them.
// Only valid for patterns without a border, where backward and forward
// matching pick the same occurrences.
func (s *Sequence) replaceGrowInPlace(pattern, replacement View, sel interval.Range, count, final int) {
	d := s.buffer()
	v := s.View()
	read := v.Len()
	write := final
	end := sel.Max
	for k := 0; k < count; k++ {
		i := v.LastIndexOf(pattern, interval.Span(sel.Min, end))
		tail := i + pattern.Len()
		write -= read - tail
		copy(d[write:], d[tail:read])
		write -= replacement.Len()
		copy(d[write:], replacement.data)
		read = i
		end = i
	}
	s.setLen(final)
}

// replaceReallocate writes the final content into a new buffer sized by
// the capacity policy, adopts it and releases the old one.
func (s *Sequence) replaceReallocate(pattern, replacement View, sel interval.Range, final int) {
	buf := s.allocate(CapacityFor(final))
	n := writeReplaced(buf, s.View(), pattern, replacement, sel)
	s.adopt(buf, n)
}

// replaceViaScratch runs the forward pass into a temporary buffer and copies
// the result back, keeping the current representation.
func (s *Sequence) replaceViaScratch(pattern, replacement View, sel interval.Range, final int) {
	a := s.allocator()
	scratch := a.AllocateArray(final)
	n := writeReplaced(scratch, s.View(), pattern, replacement, sel)
	copy(s.buffer(), scratch[:n])
	s.setLen(n)
	a.DeallocateArray(scratch)
}

// writeReplaced writes src into dst with every match in sel substituted:
// copy until a match, emit the replacement, continue after the match.
func writeReplaced(dst []byte, src, pattern, replacement View, sel interval.Range) int {
	write := copy(dst, src.data[:sel.Min])
	read := sel.Min
	for {
		i := src.IndexOf(pattern, interval.Span(read, sel.Max))
		if i == interval.Invalid {
			break
		}
		write += copy(dst[write:], src.data[read:i])
		write += copy(dst[write:], replacement.data)
		read = i + pattern.Len()
	}
	write += copy(dst[write:], src.data[read:])
	return write
}

// hasBorder reports whether some proper prefix of p is also a suffix of p,
// i.e. whether two occurrences of p can overlap.
func hasBorder(p []byte) bool {
	for k := 1; k < len(p); k++ {
		if bytes.Equal(p[:k], p[len(p)-k:]) {
			return true
		}
	}
	return false
}

// ReplaceRange splices dest over the bytes selected by iv.
// An empty selection is a no-op. dest may not view the receiver's bytes.
func (s *Sequence) ReplaceRange(iv interval.Interval, dest View) *Sequence {
	size := s.Len()
	r := iv.Select(size)
	if r.IsEmpty() {
		return s
	}
	delta := dest.Len() - r.Len()
	final := size + delta

	switch {
	case delta <= 0:
		d := s.buffer()
		copy(d[r.Min:], dest.data)
		if delta != 0 {
			copy(d[r.Min+dest.Len():], d[r.Max:size])
			s.setLen(final)
		}
	case final <= s.Capacity():
		// Shift the suffix right first; copy handles the overlap
		d := s.buffer()
		copy(d[r.Max+delta:final], d[r.Max:size])
		copy(d[r.Min:], dest.data)
		s.setLen(final)
	default:
		buf := s.allocate(CapacityFor(final))
		src := s.Bytes()
		n := copy(buf, src[:r.Min])
		n += copy(buf[n:], dest.data)
		n += copy(buf[n:], src[r.Max:])
		s.adopt(buf, n)
	}
	return s
}
