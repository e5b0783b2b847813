package text

import (
	"github.com/dshills/opentext/internal/engine/codepoint"
)

// Cursor walks the codepoints of a view. It advances by the encoded length
// of the codepoint under it.
type Cursor struct {
	view   View
	offset int
}

// Cursor returns a cursor at the first codepoint of the view.
func (v View) Cursor() *Cursor {
	return &Cursor{view: v}
}

// Offset returns the byte offset of the current codepoint.
func (c *Cursor) Offset() int {
	return c.offset
}

// Valid returns true if the cursor points at a codepoint of the view.
func (c *Cursor) Valid() bool {
	return c.offset >= 0 && c.offset < c.view.ByteLen()
}

// Codepoint decodes the codepoint under the cursor.
// Returns false if the cursor is outside the view.
func (c *Cursor) Codepoint() (codepoint.Codepoint, bool) {
	if !c.Valid() {
		return 0, false
	}
	cp, _ := codepoint.Decode(c.view.data.Bytes()[c.offset:])
	return cp, true
}

// Size returns the encoded length of the codepoint under the cursor,
// or 0 outside the view.
func (c *Cursor) Size() int {
	if !c.Valid() {
		return 0
	}
	return step(c.view.data.Bytes()[c.offset])
}

// Next advances one codepoint. Returns false once the cursor reaches the end.
func (c *Cursor) Next() bool {
	if !c.Valid() {
		return false
	}
	c.offset += c.Size()
	return c.Valid()
}

// Prev moves back one codepoint. Returns false if already at the start.
func (c *Cursor) Prev() bool {
	if c.offset <= 0 {
		return false
	}
	_, size := codepoint.DecodeLast(c.view.data.Bytes()[:c.offset])
	c.offset -= size
	return true
}
