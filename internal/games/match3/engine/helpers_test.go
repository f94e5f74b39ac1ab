package engine

import (
	"testing"
)

// seqRand replays a fixed sequence of values, wrapping around.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// constRand always returns the same value.
type constRand int

func (r constRand) Intn(n int) int {
	return int(r) % n
}

// fixedLevels serves the same square grid for every level.
type fixedLevels struct {
	size    int
	palette int
}

func (l fixedLevels) LevelConfig(level int) (LevelConfig, error) {
	if level < 0 {
		return LevelConfig{}, ErrInvalidDimensions
	}
	return LevelConfig{GridSize: l.size, PaletteSize: l.palette}, nil
}

// gridOf builds a grid from letter rows, 'A' being color 0.
func gridOf(t *testing.T, palette int, rows ...string) *Grid {
	t.Helper()
	colors := make([][]int, len(rows))
	for r, row := range rows {
		colors[r] = make([]int, len(row))
		for c, ch := range row {
			colors[r][c] = int(ch - 'A')
		}
	}
	g, err := FromRows(colors, palette)
	if err != nil {
		t.Fatalf("FromRows(%v): %v", rows, err)
	}
	return g
}

// seqFor returns the values New consumes to build the given letter rows.
func seqFor(rows ...string) []int {
	var vals []int
	for _, row := range rows {
		for _, ch := range row {
			vals = append(vals, int(ch-'A'))
		}
	}
	return vals
}
