package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/opentext/internal/engine/alloc"
	"github.com/dshills/opentext/internal/engine/text"
)

func TestParseOp(t *testing.T) {
	app := newTestApp(t, map[string]any{
		"trim.charset":    "xy",
		"split.separator": ";",
	})

	tests := []struct {
		name string
		args []string
		want Op
	}{
		{"replace", []string{"a", "b"}, ReplaceOp{Pattern: "a", With: "b"}},
		{"trim", nil, TrimOp{Charset: "xy"}},
		{"trim", []string{"-"}, TrimOp{Charset: "-"}},
		{"reverse", nil, ReverseOp{}},
		{"split", nil, SplitOp{Separator: ";"}},
		{"split", []string{"|"}, SplitOp{Separator: "|"}},
		{"slice", []string{"2"}, SliceOp{From: 2}},
		{"slice", []string{"-3", "-1"}, SliceOp{From: -3, To: -1, HasTo: true}},
		{"count", []string{"ab"}, CountOp{Pattern: "ab"}},
		{"index", []string{"ab"}, IndexOp{Pattern: "ab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name+" "+strings.Join(tt.args, " "), func(t *testing.T) {
			got, err := app.ParseOp(tt.name, tt.args)
			if err != nil {
				t.Fatalf("ParseOp: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseOp mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseOp_Errors(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"shuffle", nil, ErrUnknownOp},
		{"replace", []string{"a"}, ErrMissingArgument},
		{"count", nil, ErrMissingArgument},
		{"slice", nil, ErrMissingArgument},
		{"slice", []string{"one"}, ErrInvalidArgument},
		{"slice", []string{"1", "two"}, ErrInvalidArgument},
	}
	for _, tt := range tests {
		if _, err := app.ParseOp(tt.name, tt.args); !errors.Is(err, tt.want) {
			t.Errorf("ParseOp(%s, %v) err = %v, want %v", tt.name, tt.args, err, tt.want)
		}
	}
}

func TestParseOp_UnicodeTrimFromConfig(t *testing.T) {
	app := newTestApp(t, map[string]any{"trim.unicode_whitespace": true})
	op, err := app.ParseOp("trim", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !op.(TrimOp).Unicode {
		t.Error("trim op should use Unicode whitespace")
	}
}

func applyOp(t *testing.T, op Op, input string) string {
	t.Helper()
	tx := text.FromString(input)
	defer tx.Release()

	var out bytes.Buffer
	if err := op.Apply(&tx, &out); err != nil {
		t.Fatalf("%s: %v", op.Name(), err)
	}
	return out.String()
}

func TestOps_Apply(t *testing.T) {
	tests := []struct {
		op    Op
		input string
		want  string
	}{
		{ReplaceOp{Pattern: "ö", With: "oe"}, "schön öl", "schoen oel"},
		{TrimOp{Charset: " *"}, "* hi *", "hi"},
		{TrimOp{Unicode: true}, "\u00a0\u2003hi\u3000", "hi"},
		{ReverseOp{}, "añb😀", "😀bña"},
		{SplitOp{Separator: ","}, "a,,b", "a\n\nb\n"},
		{SplitOp{Separator: ",", CullEmpty: true}, "a,,b", "a\nb\n"},
		{SliceOp{From: 1, To: 3, HasTo: true}, "日本語です", "本語"},
		{SliceOp{From: -2}, "日本語です", "です"},
		{CountOp{Pattern: "ab"}, "abababa", "3\n"},
		{IndexOp{Pattern: "語"}, "日本語で語", "2\n"},
		{IndexOp{Pattern: "語", Last: true}, "日本語で語", "4\n"},
		{IndexOp{Pattern: "x"}, "日本語", "-1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.op.Name(), func(t *testing.T) {
			if got := applyOp(t, tt.op, tt.input); got != tt.want {
				t.Errorf("%#v on %q = %q, want %q", tt.op, tt.input, got, tt.want)
			}
		})
	}
}

func TestStatsOp(t *testing.T) {
	got := applyOp(t, StatsOp{}, "héllo")
	for _, line := range []string{"bytes: 6\n", "codepoints: 5\n", "storage: inline\n", "capacity: 15\n"} {
		if !strings.Contains(got, line) {
			t.Errorf("stats output missing %q:\n%s", line, got)
		}
	}
	if strings.Contains(got, "allocations") {
		t.Error("allocator lines should be omitted without Alloc")
	}

	long := strings.Repeat("x", 40)
	got = applyOp(t, StatsOp{Alloc: func() alloc.Stats { return alloc.Stats{Arrays: 1, BytesAllocated: 64} }}, long)
	for _, line := range []string{"storage: heap\n", "capacity: 63\n", "allocations: 1\n", "allocated_bytes: 64\n"} {
		if !strings.Contains(got, line) {
			t.Errorf("stats output missing %q:\n%s", line, got)
		}
	}
}
