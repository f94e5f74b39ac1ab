package engine

// CascadeRound records one clear-and-refill pass of the cascade loop.
type CascadeRound struct {
	Round      int      // 1-based round number
	Cells      MatchSet // Cells cleared this round
	ScoreDelta int      // Cells.Len() * points per cell
}

// SwapResult is returned by an accepted swap.
type SwapResult struct {
	Moved           bool
	TotalScoreDelta int
	CascadeRounds   int
	Rounds          []CascadeRound
}

// ClearedCells returns the total number of cells cleared over all rounds.
// A cell cleared again in a later round counts again.
func (r SwapResult) ClearedCells() int {
	n := 0
	for _, round := range r.Rounds {
		n += round.Cells.Len()
	}
	return n
}

// MoveEngine validates and executes swaps and resolves cascades.
type MoveEngine struct {
	rng           RandSource
	pointsPerCell int
	requireMatch  bool
}

// EngineOption configures a MoveEngine.
type EngineOption func(*MoveEngine)

// WithPointsPerCell overrides the score awarded per cleared cell.
func WithPointsPerCell(points int) EngineOption {
	return func(e *MoveEngine) {
		if points > 0 {
			e.pointsPerCell = points
		}
	}
}

// WithRequireMatch makes the engine revert and reject swaps that do not
// produce a match. By default every adjacent swap is accepted.
func WithRequireMatch(require bool) EngineOption {
	return func(e *MoveEngine) {
		e.requireMatch = require
	}
}

// NewMoveEngine creates a move engine that refills cleared cells from rng.
func NewMoveEngine(rng RandSource, opts ...EngineOption) *MoveEngine {
	e := &MoveEngine{
		rng:           rng,
		pointsPerCell: DefaultPointsPerCell,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PointsPerCell returns the score awarded per cleared cell.
func (e *MoveEngine) PointsPerCell() int {
	return e.pointsPerCell
}

// IsAdjacent returns true iff the cells differ by exactly one step along
// exactly one axis. Diagonals are not adjacent.
func IsAdjacent(a, b Cell) bool {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// AttemptSwap validates the pair, swaps their colors and resolves the
// cascade until no match remains.
//
// Rejections return a *MoveError matching ErrInvalidMove and leave the grid
// untouched. Coordinates outside the grid return ErrOutOfBounds.
// On success FindMatches(g) is empty.
func (e *MoveEngine) AttemptSwap(g *Grid, a, b Cell) (SwapResult, error) {
	if err := g.check(a); err != nil {
		return SwapResult{}, err
	}
	if err := g.check(b); err != nil {
		return SwapResult{}, err
	}
	if a == b {
		return SwapResult{}, &MoveError{From: a, To: b, Reason: ReasonSameCell}
	}
	if !IsAdjacent(a, b) {
		return SwapResult{}, &MoveError{From: a, To: b, Reason: ReasonNotAdjacent}
	}

	g.swap(a, b)

	if e.requireMatch && !HasMatch(g) {
		g.swap(a, b)
		return SwapResult{}, &MoveError{From: a, To: b, Reason: ReasonNoMatch}
	}

	result := e.Resolve(g)
	result.Moved = true
	return result, nil
}

// Resolve runs the cascade loop on g: while FindMatches is non-empty, score
// the matched cells, recolor them in place and rescan.
//
// The first rows*cols rounds refill purely at random. Later rounds pick, per
// cell, a color that completes no run when one exists, which bounds the loop
// even for a degenerate random source. With two colors a cell can be boxed in
// so that no color is safe; the loop then stops after another rows*cols
// rounds and the remaining runs stay on the board.
func (e *MoveEngine) Resolve(g *Grid) SwapResult {
	var result SwapResult
	randomRounds := g.rows * g.cols
	maxRounds := 2 * randomRounds

	for result.CascadeRounds < maxRounds {
		matches := FindMatches(g)
		if matches.Empty() {
			return result
		}

		round := CascadeRound{
			Round:      result.CascadeRounds + 1,
			Cells:      matches,
			ScoreDelta: matches.Len() * e.pointsPerCell,
		}

		if round.Round <= randomRounds {
			e.refillRandom(g, matches)
		} else {
			e.refillSafe(g, matches)
		}

		result.Rounds = append(result.Rounds, round)
		result.CascadeRounds = round.Round
		result.TotalScoreDelta += round.ScoreDelta
	}
	return result
}

func (e *MoveEngine) refillRandom(g *Grid, cells MatchSet) {
	for _, c := range cells {
		g.colors[g.index(c)] = e.rng.Intn(g.palette)
	}
}

// refillSafe recolors cells one at a time, preferring a color that does not
// complete a run with the cell's current neighbours. Any run that exists
// afterwards would have to include a refilled cell, and the last such cell
// refilled was checked against it.
func (e *MoveEngine) refillSafe(g *Grid, cells MatchSet) {
	for _, c := range cells {
		g.colors[g.index(c)] = pickSafeColor(g, c, e.rng)
	}
}

// pickSafeColor starts at a random color and walks the palette looking for
// one that completes no run at c. Falls back to the random start.
func pickSafeColor(g *Grid, c Cell, rng RandSource) int {
	start := rng.Intn(g.palette)
	for i := 0; i < g.palette; i++ {
		color := (start + i) % g.palette
		if !completesRun(g, c.Row, c.Col, color) {
			return color
		}
	}
	return start
}
