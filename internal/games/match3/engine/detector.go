package engine

// MatchSet is the deduplicated set of cells covered by matching windows
// in one scan, ordered row-major.
type MatchSet []Cell

// Len returns the number of unique matched cells.
func (m MatchSet) Len() int {
	return len(m)
}

// Empty reports whether the scan found no match.
func (m MatchSet) Empty() bool {
	return len(m) == 0
}

// Contains returns true if the cell is part of the set.
func (m MatchSet) Contains(c Cell) bool {
	for _, mc := range m {
		if mc == c {
			return true
		}
	}
	return false
}

// FindMatches scans every horizontal and vertical window of three cells and
// returns the union of all cells in windows whose colors are equal.
// Runs longer than three are covered by overlapping windows; a cell at the
// crossing of a horizontal and a vertical run appears once.
// The grid is not modified and no state is kept between calls.
func FindMatches(g *Grid) MatchSet {
	var marked []bool
	mark := func(c Cell) {
		if marked == nil {
			marked = make([]bool, g.rows*g.cols)
		}
		marked[g.index(c)] = true
	}

	// Horizontal windows
	for r := 0; r < g.rows; r++ {
		for c := 0; c+minRun-1 < g.cols; c++ {
			color := g.color(r, c)
			if g.color(r, c+1) == color && g.color(r, c+2) == color {
				mark(At(r, c))
				mark(At(r, c+1))
				mark(At(r, c+2))
			}
		}
	}

	// Vertical windows
	for r := 0; r+minRun-1 < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			color := g.color(r, c)
			if g.color(r+1, c) == color && g.color(r+2, c) == color {
				mark(At(r, c))
				mark(At(r+1, c))
				mark(At(r+2, c))
			}
		}
	}

	if marked == nil {
		return nil
	}

	set := make(MatchSet, 0, minRun)
	for i, hit := range marked {
		if hit {
			set = append(set, At(i/g.cols, i%g.cols))
		}
	}
	return set
}

// HasMatch reports whether any window matches, stopping at the first hit.
func HasMatch(g *Grid) bool {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if completesRun(g, r, c, g.color(r, c)) {
				return true
			}
		}
	}
	return false
}

// completesRun reports whether placing color at (row, col) would make that
// cell part of a horizontal or vertical run given its current neighbours.
func completesRun(g *Grid, row, col, color int) bool {
	same := func(r, c int) bool {
		return r >= 0 && r < g.rows && c >= 0 && c < g.cols && g.color(r, c) == color
	}

	left := 0
	for c := col - 1; same(row, c); c-- {
		left++
	}
	right := 0
	for c := col + 1; same(row, c); c++ {
		right++
	}
	if left+right+1 >= minRun {
		return true
	}

	up := 0
	for r := row - 1; same(r, col); r-- {
		up++
	}
	down := 0
	for r := row + 1; same(r, col); r++ {
		down++
	}
	return up+down+1 >= minRun
}
