package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdjacent(t *testing.T) {
	tests := []struct {
		a, b Cell
		want bool
	}{
		{At(1, 1), At(0, 1), true},
		{At(1, 1), At(2, 1), true},
		{At(1, 1), At(1, 0), true},
		{At(1, 1), At(1, 2), true},
		{At(1, 1), At(1, 1), false},
		{At(1, 1), At(2, 2), false},
		{At(0, 0), At(0, 2), false},
		{At(0, 0), At(5, 0), false},
	}

	for _, tt := range tests {
		if got := IsAdjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("IsAdjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAttemptSwapClearsRow(t *testing.T) {
	// Moving the A at (1,2) up completes the top row.
	g := gridOf(t, 8, "AAB", "CDA", "FGH")
	e := NewMoveEngine(&seqRand{vals: []int{5, 6, 7}})

	result, err := e.AttemptSwap(g, At(0, 2), At(1, 2))
	require.NoError(t, err)

	assert.True(t, result.Moved)
	assert.Equal(t, 300, result.TotalScoreDelta)
	assert.Equal(t, 1, result.CascadeRounds)
	require.Len(t, result.Rounds, 1)
	assert.Equal(t, MatchSet{At(0, 0), At(0, 1), At(0, 2)}, result.Rounds[0].Cells)
	assert.Equal(t, 3, result.ClearedCells())

	assert.Equal(t, "FGH\nCDB\nFGH", g.String())
	assert.True(t, FindMatches(g).Empty())
}

func TestAttemptSwapEqualColors(t *testing.T) {
	g := gridOf(t, 8, "AAB", "CDE", "FGH")
	before := g.Clone()
	e := NewMoveEngine(constRand(0))

	result, err := e.AttemptSwap(g, At(0, 0), At(0, 1))
	require.NoError(t, err)

	assert.Equal(t, SwapResult{Moved: true}, result)
	assert.True(t, g.Equal(before))
}

func TestAttemptSwapUnproductiveIsAccepted(t *testing.T) {
	g := gridOf(t, 8, "ABC", "DEF", "GHA")
	e := NewMoveEngine(constRand(0))

	result, err := e.AttemptSwap(g, At(0, 0), At(1, 0))
	require.NoError(t, err)

	assert.True(t, result.Moved)
	assert.Zero(t, result.TotalScoreDelta)
	assert.Equal(t, "DBC\nAEF\nGHA", g.String())
}

func TestAttemptSwapRejections(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Cell
		reason RejectReason
	}{
		{"same cell", At(1, 1), At(1, 1), ReasonSameCell},
		{"diagonal", At(0, 0), At(1, 1), ReasonNotAdjacent},
		{"two apart", At(0, 0), At(0, 2), ReasonNotAdjacent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridOf(t, 8, "AAB", "CDA", "FGH")
			before := g.Clone()
			e := NewMoveEngine(constRand(0))

			result, err := e.AttemptSwap(g, tt.a, tt.b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidMove))
			assert.False(t, errors.Is(err, ErrBusy))
			assert.Equal(t, tt.reason, RejectionReason(err))
			assert.False(t, result.Moved)
			assert.True(t, g.Equal(before), "rejected swap changed the grid")
		})
	}
}

func TestAttemptSwapOutOfBounds(t *testing.T) {
	g := gridOf(t, 8, "AAB", "CDA", "FGH")
	e := NewMoveEngine(constRand(0))

	_, err := e.AttemptSwap(g, At(2, 2), At(3, 2))
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, ReasonNone, RejectionReason(err))
}

func TestAttemptSwapRequireMatch(t *testing.T) {
	g := gridOf(t, 8, "ABC", "DEF", "GHA")
	before := g.Clone()
	e := NewMoveEngine(constRand(0), WithRequireMatch(true))

	_, err := e.AttemptSwap(g, At(0, 0), At(1, 0))
	assert.True(t, errors.Is(err, ErrInvalidMove))
	assert.Equal(t, ReasonNoMatch, RejectionReason(err))
	assert.True(t, g.Equal(before), "unproductive swap was not reverted")

	g = gridOf(t, 8, "AAB", "CDA", "FGH")
	e = NewMoveEngine(&seqRand{vals: []int{5, 6, 7}}, WithRequireMatch(true))
	result, err := e.AttemptSwap(g, At(0, 2), At(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 300, result.TotalScoreDelta)
}

func TestResolveOverlapScoredOnce(t *testing.T) {
	g := gridOf(t, 8, "AAA", "ABC", "ADE")
	e := NewMoveEngine(&seqRand{vals: []int{5, 6, 7}})

	result := e.Resolve(g)

	assert.Equal(t, 1, result.CascadeRounds)
	assert.Equal(t, 500, result.TotalScoreDelta)
	assert.Equal(t, "FGH\nFBC\nGDE", g.String())
}

func TestResolveCustomPoints(t *testing.T) {
	g := gridOf(t, 8, "AAA", "BCD", "EFG")
	e := NewMoveEngine(&seqRand{vals: []int{7, 6, 5}}, WithPointsPerCell(10))

	result := e.Resolve(g)

	assert.Equal(t, 10, e.PointsPerCell())
	assert.Equal(t, 30, result.TotalScoreDelta)
}

func TestResolveTerminatesWithDegenerateSource(t *testing.T) {
	// A constant source refills the same color forever; once the random
	// rounds are used up the safe refill has to break the loop.
	g := gridOf(t, 3, "AAA", "AAA", "AAA")
	e := NewMoveEngine(constRand(0))

	result := e.Resolve(g)

	assert.Equal(t, 10, result.CascadeRounds)
	assert.Equal(t, 10*9*DefaultPointsPerCell, result.TotalScoreDelta)
	assert.Equal(t, "BBC\nBAA\nCAA", g.String())
	assert.True(t, FindMatches(g).Empty())

	sum := 0
	for i, round := range result.Rounds {
		assert.Equal(t, i+1, round.Round)
		sum += round.ScoreDelta
	}
	assert.Equal(t, result.TotalScoreDelta, sum)
}

func TestResolveTwoColorsBounded(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, err := New(9, 9, 2, rng)
		require.NoError(t, err)

		result := NewMoveEngine(rng).Resolve(g)

		assert.LessOrEqual(t, result.CascadeRounds, 2*g.Rows()*g.Cols(), "seed %d", seed)
		assert.Len(t, result.Rounds, result.CascadeRounds)
	}

	// A constant source on two colors still stops.
	g := gridOf(t, 2, "AAA", "AAA", "AAA")
	result := NewMoveEngine(constRand(0)).Resolve(g)
	assert.LessOrEqual(t, result.CascadeRounds, 18)
	assert.Positive(t, result.TotalScoreDelta)
}

func TestAttemptSwapLeavesNoMatches(t *testing.T) {
	// Every accepted swap on a random board ends stable.
	rng := &seqRand{vals: []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4, 6, 2, 6, 4, 3}}
	g, err := New(6, 6, 6, rng)
	require.NoError(t, err)
	e := NewMoveEngine(rng)

	score := 0
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c+1 < g.Cols(); c++ {
			result, err := e.AttemptSwap(g, At(r, c), At(r, c+1))
			require.NoError(t, err)
			assert.True(t, FindMatches(g).Empty(), "matches left after swap at %v", At(r, c))
			assert.Equal(t, result.ClearedCells()*DefaultPointsPerCell, result.TotalScoreDelta)
			score += result.TotalScoreDelta
		}
	}
	assert.GreaterOrEqual(t, score, 0)
}
