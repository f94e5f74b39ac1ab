package engine

// Event is a state change emitted by a Session to its listeners.
// Renderers, audio and effects react to events and re-read the snapshot;
// the engine never calls into them.
type Event interface {
	sessionEvent()
}

// Listener receives session events synchronously, in emission order.
type Listener func(Event)

// LevelStarted is emitted when Start builds a fresh grid for a level.
type LevelStarted struct {
	Level       int
	Rows        int
	Cols        int
	PaletteSize int
}

func (LevelStarted) sessionEvent() {}

// SessionReset is emitted when Reset rebuilds the grid for the current level.
type SessionReset struct {
	Level int
}

func (SessionReset) sessionEvent() {}

// TileSelected is emitted when a click records or moves the selection.
type TileSelected struct {
	Cell       Cell
	Reselected bool // true if a previous selection was replaced
}

func (TileSelected) sessionEvent() {}

// TileSwapped is emitted once per accepted swap, before any cascade events.
type TileSwapped struct {
	A Cell
	B Cell
}

func (TileSwapped) sessionEvent() {}

// MatchesResolved is emitted for each cascade round with the cells cleared.
type MatchesResolved struct {
	Round      int
	Cells      []Cell
	ScoreDelta int
}

func (MatchesResolved) sessionEvent() {}

// CascadeRoundCompleted is emitted after a round's cells were refilled.
type CascadeRoundCompleted struct {
	Round int
	Score int // Session score after this round
}

func (CascadeRoundCompleted) sessionEvent() {}

// MoveRejected is emitted when a swap is refused.
type MoveRejected struct {
	From   Cell
	To     Cell
	Reason RejectReason
}

func (MoveRejected) sessionEvent() {}
