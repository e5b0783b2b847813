package sequence

import "iter"

// Cursor walks the bytes of a view.
// It carries the view it borrows plus a byte offset; dereferencing is
// bounds-checked rather than trusting the offset.
type Cursor struct {
	view   View
	offset int
}

// Cursor returns a cursor at the first byte of the view.
func (v View) Cursor() *Cursor {
	return &Cursor{view: v}
}

// CursorAt returns a cursor at byte offset. The offset is clamped to [0, Len].
func (v View) CursorAt(offset int) *Cursor {
	c := &Cursor{view: v}
	c.Seek(offset)
	return c
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() int {
	return c.offset
}

// Valid returns true if the cursor points at a byte of the view.
func (c *Cursor) Valid() bool {
	return c.offset >= 0 && c.offset < c.view.Len()
}

// Value returns the byte under the cursor.
// Returns false if the cursor is outside the view.
func (c *Cursor) Value() (byte, bool) {
	if !c.Valid() {
		return 0, false
	}
	return c.view.data[c.offset], true
}

// Next advances one byte. Returns false once the cursor reaches the end.
func (c *Cursor) Next() bool {
	if c.offset >= c.view.Len() {
		return false
	}
	c.offset++
	return c.offset < c.view.Len()
}

// Prev moves back one byte. Returns false if already at the start.
func (c *Cursor) Prev() bool {
	if c.offset <= 0 {
		return false
	}
	c.offset--
	return true
}

// Seek moves to offset, clamped to [0, Len].
func (c *Cursor) Seek(offset int) {
	switch {
	case offset < 0:
		c.offset = 0
	case offset > c.view.Len():
		c.offset = c.view.Len()
	default:
		c.offset = offset
	}
}

// Distance returns the number of bytes from other to c.
func (c *Cursor) Distance(other *Cursor) int {
	return c.offset - other.offset
}

// All yields each byte with its offset.
func (v View) All() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i, b := range v.data {
			if !yield(i, b) {
				return
			}
		}
	}
}

// Backward yields each byte with its offset, last byte first.
func (v View) Backward() iter.Seq2[int, byte] {
	return func(yield func(int, byte) bool) {
		for i := len(v.data) - 1; i >= 0; i-- {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}
