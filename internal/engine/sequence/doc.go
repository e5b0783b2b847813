// Package sequence provides an owning UTF-8 byte buffer and a borrowed view
// over such bytes.
//
// Sequence stores up to InlineCapacity bytes inside the value itself and
// only asks its allocator for a heap buffer beyond that. Heap capacities
// follow a power-of-two policy, and the buffer always carries one extra slot
// for a terminating zero byte.
//
// View is a (bytes, length) pair that owns nothing. All read-only algorithms
// (search, count, compare, trim, split, hash) live on View; Sequence delegates
// to them and adds in-place mutation:
//
//	s := sequence.FromString("ababab")
//	defer s.Release()
//	s.Replace(sequence.ViewString("ab"), sequence.ViewString("a"), interval.All())
//	s.String() // "aaa"
//
// Ownership rules:
//   - A heap buffer has exactly one owner. Copying a Sequence struct by value
//     aliases the buffer; use Clone for a deep copy and Take to move.
//   - Release frees a heap buffer exactly once and leaves an empty sequence.
//   - Any operation that may reallocate (Reserve, Append, Replace,
//     ReplaceRange) invalidates views into the sequence. This is a caller
//     contract and is not checked at run time.
//   - Arguments passed to in-place mutators must not view the receiver's
//     own bytes unless stated otherwise.
//
// Sequences and views are not safe for concurrent mutation.
package sequence
