package match3

import "github.com/vovakirdan/puzzlebit/internal/games/match3/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StatePaused       GameStateType = "paused"
	StateLevelCleared GameStateType = "level_cleared"
	StateTimeUp       GameStateType = "time_up"
	StateNoMoves      GameStateType = "no_moves"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism tests.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Level     int
	Cursor    engine.Cell
	HintsUsed int
	Stars     int
	Board     engine.Snapshot
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.cleared:
		state = StateLevelCleared
	case g.timeUp:
		state = StateTimeUp
	case g.noMoves:
		state = StateNoMoves
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Level:     g.level.Number,
		Cursor:    g.cursor,
		HintsUsed: g.hintsUsed,
		Stars:     g.stars,
		Board:     g.session.Snapshot(),
		State:     state,
	}
}
