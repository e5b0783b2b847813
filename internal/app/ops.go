package app

import (
	"fmt"
	"io"
	"strconv"
	"unicode"

	"golang.org/x/text/runes"

	"github.com/dshills/opentext/internal/engine/alloc"
	"github.com/dshills/opentext/internal/engine/interval"
	"github.com/dshills/opentext/internal/engine/text"
)

// Op is one text operation. Apply may modify t and writes its result to w.
type Op interface {
	Name() string
	Apply(t *text.Text, w io.Writer) error
}

// ReplaceOp substitutes every occurrence of Pattern with With.
type ReplaceOp struct {
	Pattern string
	With    string
}

// Name returns "replace".
func (ReplaceOp) Name() string { return "replace" }

// Apply substitutes the pattern and writes the result to w.
func (o ReplaceOp) Apply(t *text.Text, w io.Writer) error {
	t.Replace(text.ViewString(o.Pattern), text.ViewString(o.With), interval.All())
	return writeText(t, w)
}

// TrimOp strips leading and trailing codepoints found in Charset, or every
// Unicode White_Space codepoint when Unicode is set.
type TrimOp struct {
	Charset string
	Unicode bool
}

// Name returns "trim".
func (TrimOp) Name() string { return "trim" }

// Apply trims the text and writes the result to w.
func (o TrimOp) Apply(t *text.Text, w io.Writer) error {
	if o.Unicode {
		t.TrimSet(runes.In(unicode.White_Space))
	} else {
		t.Trim(text.ViewString(o.Charset))
	}
	return writeText(t, w)
}

// ReverseOp reverses the codepoint order.
type ReverseOp struct{}

// Name returns "reverse".
func (ReverseOp) Name() string { return "reverse" }

// Apply reverses the text and writes the result to w.
func (ReverseOp) Apply(t *text.Text, w io.Writer) error {
	t.Reverse(interval.All())
	return writeText(t, w)
}

// SplitOp writes each piece between separators on its own line.
type SplitOp struct {
	Separator string
	CullEmpty bool
}

// Name returns "split".
func (SplitOp) Name() string { return "split" }

// Apply writes the pieces to w.
func (o SplitOp) Apply(t *text.Text, w io.Writer) error {
	for piece := range t.Pieces(text.ViewString(o.Separator), o.CullEmpty) {
		if _, err := w.Write(piece.Data().Bytes()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// SliceOp keeps the codepoints in [From, To). Without To the slice runs to
// the end. Negative positions count from the end.
type SliceOp struct {
	From  int
	To    int
	HasTo bool
}

// Name returns "slice".
func (SliceOp) Name() string { return "slice" }

// Apply keeps the selected codepoints and writes the result to w.
func (o SliceOp) Apply(t *text.Text, w io.Writer) error {
	iv := interval.From(o.From)
	if o.HasTo {
		iv = interval.RightOpen(o.From, o.To)
	}
	t.Subtext(iv)
	return writeText(t, w)
}

// CountOp writes the number of non-overlapping occurrences of Pattern.
type CountOp struct {
	Pattern string
}

// Name returns "count".
func (CountOp) Name() string { return "count" }

// Apply writes the occurrence count to w.
func (o CountOp) Apply(t *text.Text, w io.Writer) error {
	_, err := fmt.Fprintln(w, t.Count(text.ViewString(o.Pattern)))
	return err
}

// IndexOp writes the codepoint index of the first (or last) occurrence of
// Pattern, or -1.
type IndexOp struct {
	Pattern string
	Last    bool
}

// Name returns "index".
func (IndexOp) Name() string { return "index" }

// Apply writes the match position to w.
func (o IndexOp) Apply(t *text.Text, w io.Writer) error {
	pattern := text.ViewString(o.Pattern)
	i := t.IndexOf(pattern, interval.All())
	if o.Last {
		i = t.LastIndexOf(pattern, interval.All())
	}
	_, err := fmt.Fprintln(w, i)
	return err
}

// StatsOp describes the text and its storage.
type StatsOp struct {
	// Alloc reports allocator activity; nil omits the allocator lines.
	Alloc func() alloc.Stats
}

// Name returns "stats".
func (StatsOp) Name() string { return "stats" }

// Apply writes one "key: value" line per statistic to w.
func (o StatsOp) Apply(t *text.Text, w io.Writer) error {
	seq := t.Sequence()
	storage := "heap"
	if seq.IsInline() {
		storage = "inline"
	}
	lines := []stat{
		{"bytes", t.ByteLen()},
		{"codepoints", t.Len()},
		{"hash", fmt.Sprintf("%08x", t.Hash())},
		{"storage", storage},
		{"capacity", seq.Capacity()},
	}
	if o.Alloc != nil {
		st := o.Alloc()
		lines = append(lines,
			stat{"allocations", st.Arrays},
			stat{"allocated_bytes", st.BytesAllocated},
		)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %v\n", l.key, l.value); err != nil {
			return err
		}
	}
	return nil
}

type stat struct {
	key   string
	value any
}

func writeText(t *text.Text, w io.Writer) error {
	_, err := w.Write(t.Sequence().Bytes())
	return err
}

// ParseOp builds an operation from its name and positional arguments.
// Settings not given as arguments come from the application config:
//
//	replace <pattern> <with>
//	trim [charset]
//	reverse
//	split [separator]
//	slice <from> [to]
//	count <pattern>
//	index <pattern>
//	stats
func (app *Application) ParseOp(name string, args []string) (Op, error) {
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s: %w: want %d, got %d", name, ErrMissingArgument, n, len(args))
		}
		return nil
	}

	switch name {
	case "replace":
		if err := need(2); err != nil {
			return nil, err
		}
		return ReplaceOp{Pattern: args[0], With: args[1]}, nil
	case "trim":
		trim := app.cfg.Trim()
		op := TrimOp{Charset: trim.Charset, Unicode: trim.UnicodeWhitespace}
		if len(args) > 0 {
			op.Charset, op.Unicode = args[0], false
		}
		return op, nil
	case "reverse":
		return ReverseOp{}, nil
	case "split":
		split := app.cfg.Split()
		op := SplitOp{Separator: split.Separator, CullEmpty: split.CullEmpty}
		if len(args) > 0 {
			op.Separator = args[0]
		}
		return op, nil
	case "slice":
		if err := need(1); err != nil {
			return nil, err
		}
		return parseSlice(args)
	case "count":
		if err := need(1); err != nil {
			return nil, err
		}
		return CountOp{Pattern: args[0]}, nil
	case "index":
		if err := need(1); err != nil {
			return nil, err
		}
		return IndexOp{Pattern: args[0]}, nil
	case "stats":
		return StatsOp{Alloc: app.AllocStats}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, name)
	}
}

func parseSlice(args []string) (Op, error) {
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("slice: %w: from %q", ErrInvalidArgument, args[0])
	}
	op := SliceOp{From: from}
	if len(args) > 1 {
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("slice: %w: to %q", ErrInvalidArgument, args[1])
		}
		op.To, op.HasTo = to, true
	}
	return op, nil
}
