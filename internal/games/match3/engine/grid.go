package engine

import (
	"fmt"
	"strings"
)

// Grid is the tile-color matrix for one level.
// Colors are stored in row-major order: index = row*cols + col.
// Dimensions never change after construction and every cell always holds
// a color in [0, paletteSize).
type Grid struct {
	rows    int
	cols    int
	palette int
	colors  []int
}

// New creates a grid filled with colors chosen uniformly at random from
// [0, paletteSize). The board is not checked for pre-existing matches.
func New(rows, cols, paletteSize int, rng RandSource) (*Grid, error) {
	g, err := newEmpty(rows, cols, paletteSize)
	if err != nil {
		return nil, err
	}
	for i := range g.colors {
		g.colors[i] = rng.Intn(paletteSize)
	}
	return g, nil
}

// FromRows builds a grid from explicit colors, one slice per row.
// All rows must have the same length and every color must lie in the palette.
func FromRows(rows [][]int, paletteSize int) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	g, err := newEmpty(len(rows), len(rows[0]), paletteSize)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, r, len(row), g.cols)
		}
		for c, color := range row {
			if err := g.SetColor(r, c, color); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

func newEmpty(rows, cols, paletteSize int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if paletteSize < MinPaletteSize || paletteSize > MaxPaletteSize {
		return nil, fmt.Errorf("%w: palette size %d not in %d..%d", ErrInvalidDimensions, paletteSize, MinPaletteSize, MaxPaletteSize)
	}
	return &Grid{
		rows:    rows,
		cols:    cols,
		palette: paletteSize,
		colors:  make([]int, rows*cols),
	}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// PaletteSize returns the number of colors tiles are drawn from.
func (g *Grid) PaletteSize() int { return g.palette }

// InBounds returns true if the cell lies within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *Grid) index(c Cell) int {
	return c.Row*g.cols + c.Col
}

func (g *Grid) check(c Cell) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v in %dx%d grid", ErrOutOfBounds, c, g.rows, g.cols)
	}
	return nil
}

// Get returns the color at (row, col).
func (g *Grid) Get(row, col int) (int, error) {
	c := At(row, col)
	if err := g.check(c); err != nil {
		return 0, err
	}
	return g.colors[g.index(c)], nil
}

// Tile returns the tile at (row, col).
func (g *Grid) Tile(row, col int) (Tile, error) {
	color, err := g.Get(row, col)
	if err != nil {
		return Tile{}, err
	}
	return Tile{Row: row, Col: col, Color: color}, nil
}

// color is the unchecked accessor used by the scanners.
func (g *Grid) color(row, col int) int {
	return g.colors[row*g.cols+col]
}

// Swap exchanges the colors of two cells. Adjacency is not checked here.
func (g *Grid) Swap(a, b Cell) error {
	if err := g.check(a); err != nil {
		return err
	}
	if err := g.check(b); err != nil {
		return err
	}
	g.swap(a, b)
	return nil
}

func (g *Grid) swap(a, b Cell) {
	ia, ib := g.index(a), g.index(b)
	g.colors[ia], g.colors[ib] = g.colors[ib], g.colors[ia]
}

// SetColor recolors a single cell.
func (g *Grid) SetColor(row, col, color int) error {
	c := At(row, col)
	if err := g.check(c); err != nil {
		return err
	}
	if color < 0 || color >= g.palette {
		return fmt.Errorf("%w: %d not in 0..%d", ErrInvalidColor, color, g.palette-1)
	}
	g.colors[g.index(c)] = color
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	colors := make([]int, len(g.colors))
	copy(colors, g.colors)
	return &Grid{
		rows:    g.rows,
		cols:    g.cols,
		palette: g.palette,
		colors:  colors,
	}
}

// Equal returns true if both grids have the same dimensions and colors.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, color := range g.colors {
		if color != other.colors[i] {
			return false
		}
	}
	return true
}

// Colors returns a copy of the matrix, one slice per row.
func (g *Grid) Colors() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.cols)
		copy(out[r], g.colors[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// String renders the grid with one letter per color, A for color 0.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			sb.WriteByte(byte('A' + g.color(r, c)))
		}
	}
	return sb.String()
}
