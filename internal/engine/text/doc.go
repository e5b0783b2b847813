// Package text layers codepoint indexing over package sequence.
//
// Text owns its bytes through a sequence.Sequence and View borrows them
// through a sequence.View. Every position, length and interval in this
// package counts codepoints; converting one to a byte offset walks the
// UTF-8 encoding, so Len and indexing are linear in the text size.
//
//	t := text.FromString("añb")
//	defer t.Release()
//	t.Len()     // 3
//	t.ByteLen() // 4
//	t.Reverse(interval.All())
//	t.String()  // "bña"
//
// Content is assumed to be valid UTF-8; malformed input is not repaired.
package text
