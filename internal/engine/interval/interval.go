package interval

import (
	"iter"
	"strconv"
)

// Invalid is returned by searches that find nothing.
// It never collides with a valid index, which is always >= 0.
const Invalid = -1

// BoundKind describes how a bound participates in an interval.
type BoundKind uint8

const (
	// Unbounded extends the interval to the start or end of the sequence.
	Unbounded BoundKind = iota
	// Inclusive includes the bound index.
	Inclusive
	// Exclusive excludes the bound index.
	Exclusive
)

// Bound is one end of an Interval.
// A negative Value addresses from the end: -1 is the last index.
type Bound struct {
	Kind  BoundKind
	Value int
}

// Interval is a symbolic range resolved against a concrete length by Select.
// Intervals are immutable values.
type Interval struct {
	Lower Bound
	Upper Bound
}

// All returns the interval covering every index.
func All() Interval {
	return Interval{}
}

// From returns [a, ~.
func From(a int) Interval {
	return Interval{Lower: Bound{Inclusive, a}}
}

// After returns (a, ~.
func After(a int) Interval {
	return Interval{Lower: Bound{Exclusive, a}}
}

// Until returns ~, b).
func Until(b int) Interval {
	return Interval{Upper: Bound{Exclusive, b}}
}

// Through returns ~, b].
func Through(b int) Interval {
	return Interval{Upper: Bound{Inclusive, b}}
}

// Closed returns [a, b].
func Closed(a, b int) Interval {
	return Interval{Lower: Bound{Inclusive, a}, Upper: Bound{Inclusive, b}}
}

// RightOpen returns [a, b).
func RightOpen(a, b int) Interval {
	return Interval{Lower: Bound{Inclusive, a}, Upper: Bound{Exclusive, b}}
}

// LeftOpen returns (a, b].
func LeftOpen(a, b int) Interval {
	return Interval{Lower: Bound{Exclusive, a}, Upper: Bound{Inclusive, b}}
}

// Open returns (a, b).
func Open(a, b int) Interval {
	return Interval{Lower: Bound{Exclusive, a}, Upper: Bound{Exclusive, b}}
}

// Span returns the concrete half-open interval [min, max).
// Unlike RightOpen it is meant for already resolved, non-negative offsets.
func Span(min, max int) Interval {
	return RightOpen(min, max)
}

// Universal returns [0, size).
func Universal(size int) Interval {
	return Span(0, size)
}

// resolve maps a possibly negative index onto [0, size).
func resolve(v, size int) int {
	if v < 0 {
		return v + size
	}
	return v
}

func clamp(v, size int) int {
	if v < 0 {
		return 0
	}
	if v > size {
		return size
	}
	return v
}

// Select resolves the interval against a sequence of the given size.
// Negative bounds are offset by size, then both ends are clamped into
// [0, size]. Out-of-range and inverted inputs produce an empty Range.
func (iv Interval) Select(size int) Range {
	if size < 0 {
		size = 0
	}

	min := 0
	switch iv.Lower.Kind {
	case Inclusive:
		min = resolve(iv.Lower.Value, size)
	case Exclusive:
		min = resolve(iv.Lower.Value, size) + 1
	}

	max := size
	switch iv.Upper.Kind {
	case Inclusive:
		max = resolve(iv.Upper.Value, size) + 1
	case Exclusive:
		max = resolve(iv.Upper.Value, size)
	}

	min = clamp(min, size)
	max = clamp(max, size)
	if max < min {
		max = min
	}
	return Range{Min: min, Max: max}
}

// IsEmpty reports whether the interval selects nothing from size elements.
func (iv Interval) IsEmpty(size int) bool {
	return iv.Select(size).IsEmpty()
}

// String renders the interval in bracket notation, e.g. "[4,~" or "[0,3)".
func (iv Interval) String() string {
	buf := make([]byte, 0, 16)
	switch iv.Lower.Kind {
	case Unbounded:
		buf = append(buf, '~')
	case Inclusive:
		buf = append(buf, '[')
		buf = strconv.AppendInt(buf, int64(iv.Lower.Value), 10)
	case Exclusive:
		buf = append(buf, '(')
		buf = strconv.AppendInt(buf, int64(iv.Lower.Value), 10)
	}
	buf = append(buf, ',')
	switch iv.Upper.Kind {
	case Unbounded:
		buf = append(buf, '~')
	case Inclusive:
		buf = strconv.AppendInt(buf, int64(iv.Upper.Value), 10)
		buf = append(buf, ']')
	case Exclusive:
		buf = strconv.AppendInt(buf, int64(iv.Upper.Value), 10)
		buf = append(buf, ')')
	}
	return string(buf)
}

// Range is a resolved half-open range [Min, Max).
type Range struct {
	Min int
	Max int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Max <= r.Min {
		return 0
	}
	return r.Max - r.Min
}

// IsEmpty returns true if the range contains no index.
func (r Range) IsEmpty() bool {
	return r.Min >= r.Max
}

// Last returns the inclusive upper index. Only meaningful if the range is not empty.
func (r Range) Last() int {
	return r.Max - 1
}

// Contains reports whether i lies in [Min, Max).
func (r Range) Contains(i int) bool {
	return i >= r.Min && i < r.Max
}

// Intersect returns the overlap of two ranges.
func (r Range) Intersect(other Range) Range {
	min := r.Min
	if other.Min > min {
		min = other.Min
	}
	max := r.Max
	if other.Max < max {
		max = other.Max
	}
	if max < min {
		max = min
	}
	return Range{Min: min, Max: max}
}

// Equal compares two ranges. All empty ranges are equal.
func (r Range) Equal(other Range) bool {
	if r.IsEmpty() && other.IsEmpty() {
		return true
	}
	return r == other
}

// Interval lifts the range back into a symbolic interval.
func (r Range) Interval() Interval {
	return Span(r.Min, r.Max)
}

// All yields every index of the range in ascending order.
func (r Range) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := r.Min; i < r.Max; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// Backward yields every index of the range in descending order.
func (r Range) Backward() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := r.Max - 1; i >= r.Min; i-- {
			if !yield(i) {
				return
			}
		}
	}
}

// String renders the range as "[min,max)".
func (r Range) String() string {
	return "[" + strconv.Itoa(r.Min) + "," + strconv.Itoa(r.Max) + ")"
}
