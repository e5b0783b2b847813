package codepoint

import (
	"testing"
	"testing/quick"
	"unicode/utf8"
)

func TestLen(t *testing.T) {
	tests := []struct {
		cp   Codepoint
		want int
	}{
		{0, 1},
		{'a', 1},
		{0x7F, 1},
		{0x80, 2},
		{'é', 2},
		{0x7FF, 2},
		{0x800, 3},
		{'世', 3},
		{0xFFFF, 3},
		{0x10000, 4},
		{'🌍', 4},
		{MaxRune, 4},
	}
	for _, tt := range tests {
		if got := Len(tt.cp); got != tt.want {
			t.Errorf("Len(%#v) = %d, want %d", tt.cp, got, tt.want)
		}
		if got := tt.cp.Len(); got != tt.want {
			t.Errorf("%#v.Len() = %d, want %d", tt.cp, got, tt.want)
		}
	}
}

func TestSequenceLen(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"a", 1},
		{"é", 2},
		{"世", 3},
		{"🌍", 4},
	}
	for _, tt := range tests {
		if got := SequenceLen(tt.s[0]); got != tt.want {
			t.Errorf("SequenceLen(%q[0]) = %d, want %d", tt.s, got, tt.want)
		}
		for i := 1; i < len(tt.s); i++ {
			if got := SequenceLen(tt.s[i]); got != 0 {
				t.Errorf("SequenceLen(%q[%d]) = %d, want 0 for continuation", tt.s, i, got)
			}
			if !IsContinuation(tt.s[i]) {
				t.Errorf("IsContinuation(%q[%d]) = false", tt.s, i)
			}
		}
	}
}

func TestEncodeDecodeMatchesUTF8(t *testing.T) {
	f := func(r rune) bool {
		cp := Codepoint(r)
		if !cp.IsValid() {
			return true
		}
		buf, n := cp.Bytes()
		want := make([]byte, utf8.UTFMax)
		wn := utf8.EncodeRune(want, r)
		if n != wn || string(buf[:n]) != string(want[:wn]) {
			return false
		}
		got, size := Decode(buf[:n])
		return got == cp && size == n
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		s    string
		want Codepoint
		size int
	}{
		{"", 0, 0},
		{"abc", 'a', 1},
		{"éa", 'é', 2},
		{"世界", '世', 3},
		{"🌍!", '🌍', 4},
	}
	for _, tt := range tests {
		cp, size := Decode([]byte(tt.s))
		if cp != tt.want || size != tt.size {
			t.Errorf("Decode(%q) = (%#v, %d), want (%#v, %d)", tt.s, cp, size, tt.want, tt.size)
		}
	}
}

func TestDecodeLast(t *testing.T) {
	tests := []struct {
		s    string
		want Codepoint
		size int
	}{
		{"", 0, 0},
		{"ab", 'b', 1},
		{"aé", 'é', 2},
		{"a世", '世', 3},
		{"🌍", '🌍', 4},
	}
	for _, tt := range tests {
		cp, size := DecodeLast([]byte(tt.s))
		if cp != tt.want || size != tt.size {
			t.Errorf("DecodeLast(%q) = (%#v, %d), want (%#v, %d)", tt.s, cp, size, tt.want, tt.size)
		}
	}
}

func TestAppendAndString(t *testing.T) {
	var dst []byte
	for _, r := range "hé世🌍" {
		dst = Codepoint(r).Append(dst)
	}
	if string(dst) != "hé世🌍" {
		t.Errorf("Append = %q", dst)
	}
	if Codepoint('世').String() != "世" {
		t.Errorf("String() = %q", Codepoint('世').String())
	}
	if Codepoint('a').GoString() != "U+0061" {
		t.Errorf("GoString() = %q", Codepoint('a').GoString())
	}
}

func TestIsValid(t *testing.T) {
	for _, cp := range []Codepoint{-1, 0xD800, 0xDFFF, MaxRune + 1} {
		if cp.IsValid() {
			t.Errorf("%#v should be invalid", cp)
		}
	}
	for _, cp := range []Codepoint{0, 'a', 0xD7FF, 0xE000, MaxRune} {
		if !cp.IsValid() {
			t.Errorf("%#v should be valid", cp)
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"hello 世界 🌍", 10},
	}
	for _, tt := range tests {
		if got := Count([]byte(tt.s)); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.s, got, tt.want)
		}
		if got := Count([]byte(tt.s)); got != utf8.RuneCountInString(tt.s) {
			t.Errorf("Count(%q) disagrees with utf8", tt.s)
		}
	}
}

func FuzzDecode(f *testing.F) {
	f.Add("hello")
	f.Add("日本語")
	f.Add("emoji 🎉 test")

	f.Fuzz(func(t *testing.T, s string) {
		// Decoding requires valid UTF-8
		if !utf8.ValidString(s) {
			return
		}
		b := []byte(s)
		for i := 0; i < len(b); {
			cp, size := Decode(b[i:])
			r, wsize := utf8.DecodeRune(b[i:])
			if rune(cp) != r || size != wsize {
				t.Fatalf("Decode at %d = (%U, %d), want (%U, %d)", i, cp, size, r, wsize)
			}
			i += size
		}
	})
}
