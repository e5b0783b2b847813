package app

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"github.com/dshills/opentext/internal/engine/sequence"
	"github.com/dshills/opentext/internal/engine/text"
)

// Codec converts between an external encoding and the UTF-8 the engine
// stores.
type Codec struct {
	name string
	enc  encoding.Encoding // nil for UTF-8
}

// CodecFor resolves an input.encoding value.
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return Codec{name: "utf-8"}, nil
	case "utf-32le":
		return Codec{name: "utf-32le", enc: utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)}, nil
	case "utf-32be":
		return Codec{name: "utf-32be", enc: utf32.UTF32(utf32.BigEndian, utf32.UseBOM)}, nil
	default:
		return Codec{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// Name returns the canonical encoding name.
func (c Codec) Name() string {
	return c.name
}

// Decode reads all of r into a text. UTF-8 input must be well formed;
// UTF-32 input is transcoded, with invalid scalars replaced by U+FFFD.
func (c Codec) Decode(r io.Reader, opts ...sequence.Option) (text.Text, error) {
	if c.enc != nil {
		r = transform.NewReader(r, c.enc.NewDecoder())
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return text.Text{}, fmt.Errorf("reading input: %w", err)
	}
	if c.enc == nil && !utf8.Valid(data) {
		return text.Text{}, ErrInvalidUTF8
	}
	return text.FromView(text.ViewOf(sequence.ViewOf(data)), opts...), nil
}

// Writer wraps w so UTF-8 written to it comes out in the codec's encoding.
// Close flushes the encoder; it does not close w.
func (c Codec) Writer(w io.Writer) io.WriteCloser {
	if c.enc == nil {
		return nopCloser{w}
	}
	return transform.NewWriter(w, c.enc.NewEncoder())
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
