package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScriptedSession starts a 3x3 session whose grid is built from rows and
// whose refills then draw from refill.
func newScriptedSession(t *testing.T, rows []string, refill []int, opts ...SessionOption) (*Session, *[]Event) {
	t.Helper()
	vals := append(seqFor(rows...), refill...)
	s := NewSession(fixedLevels{size: len(rows), palette: 8}, &seqRand{vals: vals}, opts...)

	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	require.NoError(t, s.Start(1))
	require.Equal(t, rows[0]+"\n"+rows[1]+"\n"+rows[2], mustGrid(t, s).String())
	return s, &events
}

func mustGrid(t *testing.T, s *Session) *Grid {
	t.Helper()
	g, err := s.Snapshot().Grid(8)
	require.NoError(t, err)
	return g
}

func TestSessionBeforeStart(t *testing.T) {
	s := NewSession(fixedLevels{size: 3, palette: 4}, constRand(0))

	_, err := s.SelectOrSwap(0, 0)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, s.Reset(), ErrNotStarted)
	assert.False(t, s.Started())

	_, ok := s.Hint()
	assert.False(t, ok)
}

func TestSessionStartRejectsBadLevel(t *testing.T) {
	s := NewSession(fixedLevels{size: 3, palette: 4}, constRand(0))
	assert.Error(t, s.Start(-1))
	assert.False(t, s.Started())
}

func TestSessionSelectThenSwap(t *testing.T) {
	s, events := newScriptedSession(t, []string{"AAB", "CDA", "FGH"}, []int{5, 6, 7})

	out, err := s.SelectOrSwap(1, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSelected, out.Kind)
	assert.Equal(t, StateSelecting, s.State())
	sel, ok := s.Selection()
	assert.True(t, ok)
	assert.Equal(t, At(1, 2), sel)

	out, err = s.SelectOrSwap(0, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSwapped, out.Kind)
	assert.Equal(t, 300, out.Result.TotalScoreDelta)

	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, Stats{Score: 300, Moves: 1}, s.Stats())
	_, ok = s.Selection()
	assert.False(t, ok)
	assert.Equal(t, "FGH\nCDB\nFGH", mustGrid(t, s).String())

	assert.Equal(t, []Event{
		LevelStarted{Level: 1, Rows: 3, Cols: 3, PaletteSize: 8},
		TileSelected{Cell: At(1, 2)},
		TileSwapped{A: At(1, 2), B: At(0, 2)},
		MatchesResolved{Round: 1, Cells: []Cell{At(0, 0), At(0, 1), At(0, 2)}, ScoreDelta: 300},
		CascadeRoundCompleted{Round: 1, Score: 300},
	}, *events)
}

func TestSessionNonAdjacentReselects(t *testing.T) {
	s, events := newScriptedSession(t, []string{"AAB", "CDA", "FGH"}, []int{5, 6, 7})
	before := mustGrid(t, s)

	_, err := s.SelectOrSwap(0, 0)
	require.NoError(t, err)
	out, err := s.SelectOrSwap(2, 2)
	require.NoError(t, err)

	assert.Equal(t, OutcomeReselected, out.Kind)
	sel, _ := s.Selection()
	assert.Equal(t, At(2, 2), sel)
	assert.True(t, before.Equal(mustGrid(t, s)))
	assert.Zero(t, s.Stats().Moves)
	assert.Equal(t, TileSelected{Cell: At(2, 2), Reselected: true}, (*events)[len(*events)-1])

	// Clicking the selected cell again keeps it selected.
	out, err = s.SelectOrSwap(2, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeReselected, out.Kind)
	assert.Equal(t, StateSelecting, s.State())
}

func TestSessionBusyRejectsClicks(t *testing.T) {
	s, events := newScriptedSession(t, []string{"AAB", "CDA", "FGH"}, []int{5, 6, 7})
	before := mustGrid(t, s)

	_, err := s.SelectOrSwap(1, 2)
	require.NoError(t, err)

	s.Hold()
	assert.Equal(t, StateResolving, s.State())

	_, err = s.SelectOrSwap(0, 2)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, ReasonBusy, RejectionReason(err))
	assert.Equal(t, MoveRejected{From: At(1, 2), To: At(0, 2), Reason: ReasonBusy}, (*events)[len(*events)-1])
	assert.True(t, before.Equal(mustGrid(t, s)))

	s.Release()
	s.Release() // extra releases are ignored
	assert.Equal(t, StateSelecting, s.State())

	out, err := s.SelectOrSwap(0, 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSwapped, out.Kind)
}

func TestSessionOutOfBoundsEmitsNothing(t *testing.T) {
	s, events := newScriptedSession(t, []string{"AAB", "CDA", "FGH"}, []int{5, 6, 7})
	n := len(*events)

	_, err := s.SelectOrSwap(3, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Len(t, *events, n)
	assert.Equal(t, StateIdle, s.State())
}

func TestSessionStrictModeKeepsSelection(t *testing.T) {
	rows := []string{"ABC", "DEF", "GHA"}
	vals := seqFor(rows...)
	rng := &seqRand{vals: vals}
	s := NewSession(fixedLevels{size: 3, palette: 8}, rng,
		WithMoveEngine(NewMoveEngine(rng, WithRequireMatch(true), WithPointsPerCell(50))))
	require.NoError(t, s.Start(1))
	assert.Equal(t, 50, s.Engine().PointsPerCell())
	assert.Equal(t, DefaultPointsPerCell, NewSession(fixedLevels{size: 3, palette: 8}, rng).Engine().PointsPerCell())

	_, err := s.SelectOrSwap(0, 0)
	require.NoError(t, err)
	_, err = s.SelectOrSwap(1, 0)
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, ReasonNoMatch, RejectionReason(err))

	sel, ok := s.Selection()
	assert.True(t, ok)
	assert.Equal(t, At(0, 0), sel)
	assert.Zero(t, s.Stats().Moves)
	assert.Equal(t, "ABC\nDEF\nGHA", mustGrid(t, s).String())
}

func TestSessionResetAndClock(t *testing.T) {
	s, events := newScriptedSession(t, []string{"AAB", "CDA", "FGH"}, []int{5, 6, 7})

	_, _ = s.SelectOrSwap(1, 2)
	_, _ = s.SelectOrSwap(0, 2)
	s.AdvanceClock(12)
	s.AdvanceClock(-3)
	assert.Equal(t, Stats{Score: 300, Moves: 1, ElapsedSeconds: 12}, s.Stats())

	s.Hold()
	require.NoError(t, s.Reset())
	assert.Equal(t, Stats{}, s.Stats())
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, SessionReset{Level: 1}, (*events)[len(*events)-1])
}

func TestSessionHintDoesNotMutate(t *testing.T) {
	s, _ := newScriptedSession(t, []string{"ABA", "CAD", "EFG"}, nil)
	before := mustGrid(t, s)

	m, ok := s.Hint()
	require.True(t, ok)
	assert.Equal(t, Move{A: At(0, 1), B: At(1, 1)}, m)
	assert.True(t, before.Equal(mustGrid(t, s)))
	assert.Equal(t, Stats{}, s.Stats())
}

func TestSessionFairStart(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := NewSession(fixedLevels{size: 8, palette: 6}, rng, WithFairStart(true))
		require.NoError(t, s.Start(1))

		g := mustGrid(t, s)
		if !FindMatches(g).Empty() {
			t.Errorf("seed %d: fair start left matches:\n%s", seed, g)
		}
		if _, ok := s.Hint(); !ok {
			t.Errorf("seed %d: fair start has no move:\n%s", seed, g)
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s, _ := newScriptedSession(t, []string{"AAB", "CDA", "FGH"}, []int{5, 6, 7})
	_, _ = s.SelectOrSwap(2, 2)

	snap := s.Snapshot()
	assert.Equal(t, 3, snap.Rows)
	assert.Equal(t, 3, snap.Cols)
	assert.Equal(t, StateSelecting, snap.State)
	require.NotNil(t, snap.Selection)
	assert.Equal(t, At(2, 2), *snap.Selection)
	assert.Equal(t, 7, snap.ColorAt(2, 2))
	assert.Equal(t, -1, snap.ColorAt(3, 0))

	snap.Colors[0][0] = 7
	*snap.Selection = At(0, 0)
	again := s.Snapshot()
	assert.Equal(t, 0, again.Colors[0][0])
	assert.Equal(t, At(2, 2), *again.Selection)
}
