// Package interval provides symbolic index ranges for slice-like addressing.
//
// An Interval names its bounds relative to the start or, with negative
// values, relative to the end of a sequence whose length is not yet known.
// Select resolves it against a concrete length into a half-open Range,
// clamping instead of failing:
//
//	interval.From(-1).Select(5)        // [4,5)
//	interval.RightOpen(1, -1).Select(5) // [1,4)
//	interval.Closed(7, 9).Select(5)    // empty
//
// Each bound is either Unbounded, Inclusive or Exclusive. A negative bound
// value v resolves to v+size, so -1 is the last index.
package interval
