package engine

// Snapshot is a read-only copy of the session for rendering and tests.
type Snapshot struct {
	Level     int
	Rows      int
	Cols      int
	Colors    [][]int
	Stats     Stats
	Selection *Cell
	State     State
}

// Snapshot returns a deep copy of the session's visible state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Level: s.level,
		Stats: s.stats,
		State: s.State(),
	}
	if s.grid != nil {
		snap.Rows = s.grid.Rows()
		snap.Cols = s.grid.Cols()
		snap.Colors = s.grid.Colors()
	}
	if s.selection != nil {
		sel := *s.selection
		snap.Selection = &sel
	}
	return snap
}

// ColorAt returns the color at (row, col), or -1 outside the grid.
func (s Snapshot) ColorAt(row, col int) int {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return -1
	}
	return s.Colors[row][col]
}

// Grid rebuilds a standalone grid from the snapshot.
func (s Snapshot) Grid(paletteSize int) (*Grid, error) {
	return FromRows(s.Colors, paletteSize)
}
