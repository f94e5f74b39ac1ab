package engine

import "fmt"

// fairStartAttempts bounds how many fresh grids a fair start will roll
// looking for one with a productive move.
const fairStartAttempts = 32

// LevelConfig is what the session needs from the level catalog.
type LevelConfig struct {
	GridSize    int
	PaletteSize int
}

// LevelSource resolves a level number to its grid parameters.
type LevelSource interface {
	LevelConfig(level int) (LevelConfig, error)
}

// State is the session's interaction state.
type State int

const (
	StateIdle      State = iota // No cell selected
	StateSelecting              // One cell selected
	StateResolving              // Swap and cascade in progress, or held by the UI
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// OutcomeKind discriminates SelectionOutcome.
type OutcomeKind int

const (
	OutcomeSelected   OutcomeKind = iota // First click recorded
	OutcomeSwapped                       // Second click was adjacent; swap resolved
	OutcomeReselected                    // Second click was not adjacent; selection moved
)

// String returns the outcome name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSelected:
		return "selected"
	case OutcomeSwapped:
		return "swapped"
	case OutcomeReselected:
		return "reselected"
	default:
		return "unknown"
	}
}

// SelectionOutcome is the result of one click.
type SelectionOutcome struct {
	Kind   OutcomeKind
	Cell   Cell       // The clicked cell
	Result SwapResult // Set only for OutcomeSwapped
}

// Session binds a grid, a move engine and the running stats for one
// playthrough, and exposes the two-click interaction to the UI.
// A Session is not safe for concurrent use; all calls are expected from
// the UI loop.
type Session struct {
	levels    LevelSource
	rng       RandSource
	engine    *MoveEngine
	fairStart bool

	level     int
	grid      *Grid
	stats     Stats
	selection *Cell
	resolving bool
	holds     int

	listeners []Listener
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMoveEngine replaces the default move engine.
func WithMoveEngine(e *MoveEngine) SessionOption {
	return func(s *Session) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithFairStart makes Start and Reset produce grids with no pre-existing
// match and, when one can be found, at least one productive move.
func WithFairStart(fair bool) SessionOption {
	return func(s *Session) {
		s.fairStart = fair
	}
}

// NewSession creates a session. Start must be called before playing.
func NewSession(levels LevelSource, rng RandSource, opts ...SessionOption) *Session {
	s := &Session{
		levels: levels,
		rng:    rng,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = NewMoveEngine(rng)
	}
	return s
}

// Subscribe registers a listener for all future events.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Session) emit(evt Event) {
	for _, l := range s.listeners {
		l(evt)
	}
}

// Start creates a fresh grid for level, zeroes the stats and clears the
// selection and any UI holds.
func (s *Session) Start(level int) error {
	if s.resolving {
		return ErrBusy
	}
	cfg, err := s.levels.LevelConfig(level)
	if err != nil {
		return fmt.Errorf("engine: level %d: %w", level, err)
	}
	g, err := s.buildGrid(cfg)
	if err != nil {
		return fmt.Errorf("engine: level %d: %w", level, err)
	}

	s.level = level
	s.grid = g
	s.clear()

	s.emit(LevelStarted{
		Level:       level,
		Rows:        g.Rows(),
		Cols:        g.Cols(),
		PaletteSize: g.PaletteSize(),
	})
	return nil
}

// Reset rebuilds the grid for the current level and zeroes the stats.
func (s *Session) Reset() error {
	if s.grid == nil {
		return ErrNotStarted
	}
	if s.resolving {
		return ErrBusy
	}
	cfg, err := s.levels.LevelConfig(s.level)
	if err != nil {
		return fmt.Errorf("engine: level %d: %w", s.level, err)
	}
	g, err := s.buildGrid(cfg)
	if err != nil {
		return fmt.Errorf("engine: level %d: %w", s.level, err)
	}

	s.grid = g
	s.clear()

	s.emit(SessionReset{Level: s.level})
	return nil
}

func (s *Session) clear() {
	s.stats = Stats{}
	s.selection = nil
	s.holds = 0
}

func (s *Session) buildGrid(cfg LevelConfig) (*Grid, error) {
	g, err := New(cfg.GridSize, cfg.GridSize, cfg.PaletteSize, s.rng)
	if err != nil || !s.fairStart {
		return g, err
	}

	for attempt := 1; ; attempt++ {
		s.removePreMatches(g)
		if _, ok := FirstPossibleMove(g); ok || attempt >= fairStartAttempts {
			return g, nil
		}
		g, err = New(cfg.GridSize, cfg.GridSize, cfg.PaletteSize, s.rng)
		if err != nil {
			return nil, err
		}
	}
}

// removePreMatches recolors matched cells with run-free colors until the
// grid is stable. Scores nothing.
func (s *Session) removePreMatches(g *Grid) {
	for i := 0; i < g.rows*g.cols; i++ {
		matches := FindMatches(g)
		if matches.Empty() {
			return
		}
		for _, c := range matches {
			g.colors[g.index(c)] = pickSafeColor(g, c, s.rng)
		}
	}
}

// SelectOrSwap handles one click at (row, col).
//
// With nothing selected the cell becomes the selection. With a selection,
// an adjacent click swaps and resolves the cascade; any other click moves
// the selection there. Clicks while resolving are rejected with ErrBusy.
// Rejections leave the grid and selection as they were.
func (s *Session) SelectOrSwap(row, col int) (SelectionOutcome, error) {
	if s.grid == nil {
		return SelectionOutcome{}, ErrNotStarted
	}
	clicked := At(row, col)
	if err := s.grid.check(clicked); err != nil {
		return SelectionOutcome{}, err
	}

	if s.State() == StateResolving {
		from := clicked
		if s.selection != nil {
			from = *s.selection
		}
		return SelectionOutcome{}, s.reject(&MoveError{From: from, To: clicked, Reason: ReasonBusy})
	}

	if s.selection == nil {
		s.selection = &clicked
		s.emit(TileSelected{Cell: clicked})
		return SelectionOutcome{Kind: OutcomeSelected, Cell: clicked}, nil
	}

	selected := *s.selection
	if !IsAdjacent(selected, clicked) {
		s.selection = &clicked
		s.emit(TileSelected{Cell: clicked, Reselected: true})
		return SelectionOutcome{Kind: OutcomeReselected, Cell: clicked}, nil
	}

	result, err := s.swap(selected, clicked)
	if err != nil {
		return SelectionOutcome{}, err
	}
	return SelectionOutcome{Kind: OutcomeSwapped, Cell: clicked, Result: result}, nil
}

// swap runs an adjacent swap through the engine and publishes its events.
func (s *Session) swap(a, b Cell) (SwapResult, error) {
	s.resolving = true
	defer func() { s.resolving = false }()

	result, err := s.engine.AttemptSwap(s.grid, a, b)
	if err != nil {
		if RejectionReason(err) != ReasonNone {
			return SwapResult{}, s.reject(err)
		}
		return SwapResult{}, err
	}

	s.selection = nil
	s.stats.Moves++
	s.emit(TileSwapped{A: a, B: b})

	for _, round := range result.Rounds {
		s.stats.Score += round.ScoreDelta
		s.emit(MatchesResolved{
			Round:      round.Round,
			Cells:      append([]Cell(nil), round.Cells...),
			ScoreDelta: round.ScoreDelta,
		})
		s.emit(CascadeRoundCompleted{Round: round.Round, Score: s.stats.Score})
	}
	return result, nil
}

func (s *Session) reject(err error) error {
	var evt MoveRejected
	if me, ok := err.(*MoveError); ok {
		evt = MoveRejected{From: me.From, To: me.To, Reason: me.Reason}
	}
	s.emit(evt)
	return err
}

// Hint returns the first productive swap on the current grid, if any.
func (s *Session) Hint() (Move, bool) {
	if s.grid == nil {
		return Move{}, false
	}
	return FirstPossibleMove(s.grid)
}

// Hold keeps the session in StateResolving until a matching Release, so the
// UI can finish animating a resolved swap before accepting new clicks.
func (s *Session) Hold() {
	s.holds++
}

// Release undoes one Hold.
func (s *Session) Release() {
	if s.holds > 0 {
		s.holds--
	}
}

// AdvanceClock adds elapsed play time. The caller is responsible for not
// advancing while paused.
func (s *Session) AdvanceClock(seconds int) {
	if seconds > 0 {
		s.stats.ElapsedSeconds += seconds
	}
}

// State returns the current interaction state.
func (s *Session) State() State {
	switch {
	case s.resolving || s.holds > 0:
		return StateResolving
	case s.selection != nil:
		return StateSelecting
	default:
		return StateIdle
	}
}

// Level returns the level the session was last started with.
func (s *Session) Level() int { return s.level }

// Stats returns the current stats.
func (s *Session) Stats() Stats { return s.stats }

// Selection returns the selected cell, if any.
func (s *Session) Selection() (Cell, bool) {
	if s.selection == nil {
		return Cell{}, false
	}
	return *s.selection, true
}

// Started reports whether Start has succeeded at least once.
func (s *Session) Started() bool { return s.grid != nil }

// Engine returns the session's move engine.
func (s *Session) Engine() *MoveEngine { return s.engine }
