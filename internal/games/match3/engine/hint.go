package engine

// FindPossibleMoves returns every single swap that produces an immediate
// match. Candidates are each cell's right-neighbour swap then its
// down-neighbour swap, visited in row-major order, so symmetric swaps are
// never listed twice.
//
// Each candidate is probed by swapping, scanning and swapping back, so the
// grid is identical before and after the call.
//
// Cost is O(rows*cols) probes of an O(rows*cols) scan, O(n^4) for an n*n
// grid. That is fine up to the 9x9 levels shipped; larger boards should
// switch to a local check around the swapped cells.
func FindPossibleMoves(g *Grid) []Move {
	var moves []Move
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if c < g.cols-1 {
				if m := At(r, c+1); probe(g, At(r, c), m) {
					moves = append(moves, Move{A: At(r, c), B: m})
				}
			}
			if r < g.rows-1 {
				if m := At(r+1, c); probe(g, At(r, c), m) {
					moves = append(moves, Move{A: At(r, c), B: m})
				}
			}
		}
	}
	return moves
}

// FirstPossibleMove returns the first entry FindPossibleMoves would return.
func FirstPossibleMove(g *Grid) (Move, bool) {
	moves := FindPossibleMoves(g)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[0], true
}

// probe swaps a and b, checks for a match and restores the grid.
func probe(g *Grid, a, b Cell) bool {
	g.swap(a, b)
	found := !FindMatches(g).Empty()
	g.swap(a, b)
	return found
}
