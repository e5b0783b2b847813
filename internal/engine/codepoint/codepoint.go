// Package codepoint encodes and decodes Unicode scalar values as UTF-8.
//
// Every function here assumes well-formed UTF-8 input. Decoding a malformed
// sequence is undefined behavior: the result is unspecified and no error is
// reported. Callers that accept untrusted bytes must validate them first.
package codepoint

import "strconv"

// MaxRune is the largest Unicode scalar value.
const MaxRune = 0x10FFFF

// MaxLen is the longest UTF-8 encoding of a single scalar.
const MaxLen = 4

// Surrogate range, not encodable as UTF-8.
const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// Encoding boundaries.
const (
	max1 = 0x7F
	max2 = 0x7FF
	max3 = 0xFFFF
)

// Codepoint is a Unicode scalar value in [0, MaxRune].
type Codepoint rune

// IsValid reports whether cp is a scalar value (in range and not a surrogate).
func (cp Codepoint) IsValid() bool {
	if cp < 0 || cp > MaxRune {
		return false
	}
	return cp < surrogateMin || cp > surrogateMax
}

// Len returns the number of bytes needed to encode cp.
func (cp Codepoint) Len() int {
	return Len(cp)
}

// Bytes returns the encoding of cp in a fixed array along with its length.
func (cp Codepoint) Bytes() ([MaxLen]byte, int) {
	var buf [MaxLen]byte
	n := Encode(buf[:], cp)
	return buf, n
}

// Append appends the UTF-8 encoding of cp to dst.
func (cp Codepoint) Append(dst []byte) []byte {
	buf, n := cp.Bytes()
	return append(dst, buf[:n]...)
}

// String returns the scalar as a UTF-8 string.
func (cp Codepoint) String() string {
	buf, n := cp.Bytes()
	return string(buf[:n])
}

// GoString renders cp in U+XXXX notation.
func (cp Codepoint) GoString() string {
	s := strconv.FormatInt(int64(cp), 16)
	for len(s) < 4 {
		s = "0" + s
	}
	return "U+" + s
}

// Len returns the number of bytes needed to encode cp, 1 through 4.
func Len(cp Codepoint) int {
	switch {
	case cp <= max1:
		return 1
	case cp <= max2:
		return 2
	case cp <= max3:
		return 3
	default:
		return 4
	}
}

// SequenceLen returns the length of the sequence introduced by the leading
// byte b, or 0 if b is a continuation byte.
func SequenceLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xC0 == 0x80:
		return 0
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	default:
		return 4
	}
}

// IsContinuation reports whether b is a UTF-8 continuation byte (10xxxxxx).
func IsContinuation(b byte) bool {
	return b&0xC0 == 0x80
}

// Encode writes the UTF-8 encoding of cp into dst and returns the number of
// bytes written. dst must have room for Len(cp) bytes.
func Encode(dst []byte, cp Codepoint) int {
	switch n := Len(cp); n {
	case 1:
		dst[0] = byte(cp)
		return 1
	case 2:
		_ = dst[1]
		dst[0] = 0xC0 | byte(cp>>6)
		dst[1] = 0x80 | byte(cp)&0x3F
		return 2
	case 3:
		_ = dst[2]
		dst[0] = 0xE0 | byte(cp>>12)
		dst[1] = 0x80 | byte(cp>>6)&0x3F
		dst[2] = 0x80 | byte(cp)&0x3F
		return 3
	default:
		_ = dst[3]
		dst[0] = 0xF0 | byte(cp>>18)
		dst[1] = 0x80 | byte(cp>>12)&0x3F
		dst[2] = 0x80 | byte(cp>>6)&0x3F
		dst[3] = 0x80 | byte(cp)&0x3F
		return 4
	}
}

// Decode decodes the scalar starting at b[0] and returns it with the number of
// bytes consumed. An empty b yields (0, 0).
func Decode(b []byte) (Codepoint, int) {
	if len(b) == 0 {
		return 0, 0
	}
	b0 := b[0]
	switch SequenceLen(b0) {
	case 1:
		return Codepoint(b0), 1
	case 2:
		_ = b[1]
		return Codepoint(b0&0x1F)<<6 | Codepoint(b[1]&0x3F), 2
	case 3:
		_ = b[2]
		return Codepoint(b0&0x0F)<<12 | Codepoint(b[1]&0x3F)<<6 | Codepoint(b[2]&0x3F), 3
	case 4:
		_ = b[3]
		return Codepoint(b0&0x07)<<18 | Codepoint(b[1]&0x3F)<<12 |
			Codepoint(b[2]&0x3F)<<6 | Codepoint(b[3]&0x3F), 4
	default:
		// Continuation byte in leading position: malformed input.
		return Codepoint(b0), 1
	}
}

// DecodeLast decodes the scalar that ends at the last byte of b and returns
// it with its encoded length. An empty b yields (0, 0).
func DecodeLast(b []byte) (Codepoint, int) {
	if len(b) == 0 {
		return 0, 0
	}
	start := len(b) - 1
	for start > 0 && len(b)-start < MaxLen && IsContinuation(b[start]) {
		start--
	}
	cp, _ := Decode(b[start:])
	return cp, len(b) - start
}

// Count returns the number of scalars encoded in b.
func Count(b []byte) int {
	n := 0
	for i := 0; i < len(b); {
		size := SequenceLen(b[i])
		if size == 0 {
			size = 1
		}
		i += size
		n++
	}
	return n
}
