package sequence

import "iter"

// Split cuts the sequence at every occurrence of splitter and returns the
// pieces as views into the sequence. With cullEmpty, zero-length pieces are
// dropped.
//
//	"a,b,,c" -> ["a" "b" "" "c"]
//	"a,b,,c" (cullEmpty) -> ["a" "b" "c"]
func (s *Sequence) Split(splitter View, cullEmpty bool) []View {
	var pieces []View
	s.SplitInto(splitter, &pieces, cullEmpty)
	return pieces
}

// SplitInto appends the pieces to *pieces and returns how many pieces the
// splitter produced, culled empty pieces included.
func (s *Sequence) SplitInto(splitter View, pieces *[]View, cullEmpty bool) int {
	return s.View().SplitInto(splitter, pieces, cullEmpty)
}

// Pieces yields the pieces lazily. See Split.
func (s *Sequence) Pieces(splitter View, cullEmpty bool) iter.Seq[View] {
	return s.View().Pieces(splitter, cullEmpty)
}

// SplitInto repeatedly splits the view at splitter, appending each piece to
// *pieces. It stops once the remainder is empty and returns the number of
// pieces produced, culled ones included.
func (v View) SplitInto(splitter View, pieces *[]View, cullEmpty bool) int {
	count := 0
	for piece := range v.allPieces(splitter) {
		count++
		if cullEmpty && piece.IsEmpty() {
			continue
		}
		*pieces = append(*pieces, piece)
	}
	return count
}

// Pieces yields the pieces of the view lazily, in order.
func (v View) Pieces(splitter View, cullEmpty bool) iter.Seq[View] {
	return func(yield func(View) bool) {
		for piece := range v.allPieces(splitter) {
			if cullEmpty && piece.IsEmpty() {
				continue
			}
			if !yield(piece) {
				return
			}
		}
	}
}

func (v View) allPieces(splitter View) iter.Seq[View] {
	return func(yield func(View) bool) {
		rest := v
		for {
			left, right := rest.Split(splitter)
			if !yield(left) {
				return
			}
			if right.IsEmpty() {
				return
			}
			rest = right
		}
	}
}
