// Package engine implements the match-3 grid rules for PuzzleBit: tile selection,
// adjacency validation, swapping, match detection, cascade resolution and scoring.
// The package is UI-agnostic and deterministic for a given random source.
package engine

import "fmt"

// Palette bounds. A single color would rematch every refill forever.
const (
	MinPaletteSize = 2
	MaxPaletteSize = 12
)

// DefaultPointsPerCell is awarded for every cell cleared in a cascade round.
const DefaultPointsPerCell = 100

// minRun is the shortest run of equal colors that counts as a match.
const minRun = 3

// RandSource is the subset of *math/rand.Rand the engine needs.
type RandSource interface {
	Intn(n int) int
}

// Cell is a (row, col) coordinate in the grid.
type Cell struct {
	Row int
	Col int
}

// At is a convenience constructor for Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Tile is a cell together with the color it currently holds.
type Tile struct {
	Row   int
	Col   int
	Color int
}

// Cell returns the tile's coordinate.
func (t Tile) Cell() Cell {
	return Cell{Row: t.Row, Col: t.Col}
}

// Move is a candidate swap between two adjacent cells.
type Move struct {
	A Cell
	B Cell
}

// String returns a string representation of the move.
func (m Move) String() string {
	return fmt.Sprintf("%v<->%v", m.A, m.B)
}

// Stats is the running tally for a session.
// All fields only grow until the session is started or reset again.
type Stats struct {
	Score          int
	Moves          int
	ElapsedSeconds int
}
