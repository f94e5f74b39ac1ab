package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []Cell
	}{
		{
			name: "no match",
			rows: []string{"ABC", "BCA", "CAB"},
			want: nil,
		},
		{
			name: "horizontal three",
			rows: []string{"AAA", "BCB", "CBC"},
			want: []Cell{At(0, 0), At(0, 1), At(0, 2)},
		},
		{
			name: "vertical three on right edge",
			rows: []string{"BCA", "CBA", "BCA"},
			want: []Cell{At(0, 2), At(1, 2), At(2, 2)},
		},
		{
			name: "run of four",
			rows: []string{"AAAA", "BCBC"},
			want: []Cell{At(0, 0), At(0, 1), At(0, 2), At(0, 3)},
		},
		{
			name: "L shape counted once",
			rows: []string{"AAA", "ABC", "ACB"},
			want: []Cell{At(0, 0), At(0, 1), At(0, 2), At(1, 0), At(2, 0)},
		},
		{
			name: "T shape counted once",
			rows: []string{"AAA", "BAC", "CAB"},
			want: []Cell{At(0, 0), At(0, 1), At(0, 2), At(1, 1), At(2, 1)},
		},
		{
			name: "two of a kind is not a match",
			rows: []string{"AAB", "BBA", "ABA"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridOf(t, 4, tt.rows...)
			got := FindMatches(g)
			assert.Equal(t, MatchSet(tt.want), got)
			assert.Equal(t, len(tt.want) > 0, HasMatch(g), "HasMatch disagrees with FindMatches")
		})
	}
}

func TestFindMatchesIsIdempotent(t *testing.T) {
	g := gridOf(t, 4, "AAAB", "BCDA", "BCDA", "BCCA")
	before := g.Clone()

	first := FindMatches(g)
	second := FindMatches(g)

	assert.Equal(t, first, second)
	assert.True(t, g.Equal(before), "FindMatches mutated the grid")
	assert.True(t, first.Contains(At(3, 3)))
	assert.False(t, first.Contains(At(3, 2)))
}

func TestFindMatchesSmallGrids(t *testing.T) {
	// Grids narrower than a run can never match.
	g := gridOf(t, 2, "AA", "AA")
	assert.True(t, FindMatches(g).Empty())
	assert.False(t, HasMatch(g))

	g = gridOf(t, 2, "A")
	assert.True(t, FindMatches(g).Empty())
}
