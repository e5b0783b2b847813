package sequence

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func strs(views []View) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.String())
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		splitter  string
		cullEmpty bool
		want      []string
		wantCount int
	}{
		{"keep empty", "a,b,,c", ",", false, []string{"a", "b", "", "c"}, 4},
		{"cull empty", "a,b,,c", ",", true, []string{"a", "b", "c"}, 4},
		{"no splitter", "abc", ",", false, []string{"abc"}, 1},
		{"empty input", "", ",", false, []string{""}, 1},
		{"empty input culled", "", ",", true, []string{}, 1},
		{"leading", ",a", ",", false, []string{"", "a"}, 2},
		{"trailing stops", "a,", ",", false, []string{"a"}, 1},
		{"multi byte splitter", "one::two::three", "::", false, []string{"one", "two", "three"}, 3},
		{"unicode", "α・β・γ", "・", false, []string{"α", "β", "γ"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromString(tt.in)
			defer s.Release()

			got := strs(s.Split(ViewString(tt.splitter), tt.cullEmpty))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split mismatch (-want +got):\n%s", diff)
			}

			var pieces []View
			if n := s.SplitInto(ViewString(tt.splitter), &pieces, tt.cullEmpty); n != tt.wantCount {
				t.Errorf("SplitInto count = %d, want %d", n, tt.wantCount)
			}
			if diff := cmp.Diff(tt.want, strs(pieces)); diff != "" {
				t.Errorf("SplitInto mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitViewsAliasSource(t *testing.T) {
	s := FromString("left|right")
	pieces := s.Split(ViewString("|"), false)
	if len(pieces) != 2 {
		t.Fatalf("got %d pieces", len(pieces))
	}
	if &pieces[0].Bytes()[0] != &s.Bytes()[0] {
		t.Error("pieces should view the original buffer without copying")
	}
}

func TestPiecesLazy(t *testing.T) {
	s := FromString("1 2 3 4 5")
	var got []string
	for piece := range s.Pieces(ViewString(" "), false) {
		got = append(got, piece.String())
		if len(got) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]string{"1", "2"}, got); diff != "" {
		t.Errorf("Pieces mismatch (-want +got):\n%s", diff)
	}

	got = got[:0]
	for piece := range ViewString(",,x,,").Pieces(ViewString(","), true) {
		got = append(got, piece.String())
	}
	if diff := cmp.Diff([]string{"x"}, got); diff != "" {
		t.Errorf("culled Pieces mismatch (-want +got):\n%s", diff)
	}
}
