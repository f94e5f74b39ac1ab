package engine

import "errors"

var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	// It indicates a caller bug and is never turned into a rejection.
	ErrOutOfBounds = errors.New("engine: cell out of bounds")

	// ErrInvalidMove is matched by rejections of identical, non-adjacent
	// or (in strict mode) unproductive swaps.
	ErrInvalidMove = errors.New("engine: invalid move")

	// ErrBusy is matched by rejections issued while a swap is resolving.
	ErrBusy = errors.New("engine: session is resolving")

	// ErrInvalidColor is returned when a color lies outside the palette.
	ErrInvalidColor = errors.New("engine: color outside palette")

	// ErrInvalidDimensions is returned when a grid cannot be built.
	ErrInvalidDimensions = errors.New("engine: invalid grid dimensions")

	// ErrNotStarted is returned by session operations before Start.
	ErrNotStarted = errors.New("engine: session not started")
)

// RejectReason explains why a move was refused.
type RejectReason int

const (
	ReasonNone        RejectReason = iota
	ReasonSameCell                 // Both clicks hit the same cell
	ReasonNotAdjacent              // Cells are not orthogonal neighbours
	ReasonNoMatch                  // Swap produced no match (strict mode only)
	ReasonBusy                     // A swap is still resolving
)

// String returns a human-readable reason.
func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonSameCell:
		return "same cell"
	case ReasonNotAdjacent:
		return "not adjacent"
	case ReasonNoMatch:
		return "no match"
	case ReasonBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// MoveError is the typed rejection returned for user-driven invalid moves.
// errors.Is(err, ErrBusy) holds for ReasonBusy, ErrInvalidMove for the rest.
type MoveError struct {
	From   Cell
	To     Cell
	Reason RejectReason
}

func (e *MoveError) Error() string {
	return "engine: move " + e.From.String() + "->" + e.To.String() + " rejected: " + e.Reason.String()
}

// Is reports whether the rejection matches one of the sentinel kinds.
func (e *MoveError) Is(target error) bool {
	if e.Reason == ReasonBusy {
		return target == ErrBusy
	}
	return target == ErrInvalidMove
}

// RejectionReason extracts the reason from a rejection error.
// Returns ReasonNone for nil or non-rejection errors.
func RejectionReason(err error) RejectReason {
	var me *MoveError
	if errors.As(err, &me) {
		return me.Reason
	}
	return ReasonNone
}
