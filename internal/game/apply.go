package game

import (
	"fmt"

	"github.com/hailam/chessturn/internal/board"
)

// MoveOutcome describes one apply attempt. Err is nil exactly when Applied.
type MoveOutcome struct {
	From     board.Square
	To       board.Square
	Piece    board.Piece
	Captured board.Piece
	Applied  bool
	Err      error
}

// IsCapture returns true if the move removed an enemy piece.
func (o MoveOutcome) IsCapture() bool {
	return o.Applied && o.Captured != board.NoPiece
}

// String renders the move as "e2e3", with "xp" appended for captures.
func (o MoveOutcome) String() string {
	s := o.From.String() + o.To.String()
	if o.IsCapture() {
		s += "x" + o.Captured.String()
	}
	return s
}

// Apply moves the piece on from to to if it belongs to the active side and
// to is one of its legal destinations. Any piece on to is captured and the
// active color flips. A rejected attempt leaves board and turn untouched.
// The selection is cleared either way.
func Apply(st *State, from, to board.Square) MoveOutcome {
	defer st.clearSelection()

	out := MoveOutcome{From: from, To: to, Piece: board.NoPiece, Captured: board.NoPiece}

	for _, sq := range [2]board.Square{from, to} {
		if !sq.IsValid() {
			out.Err = board.OutOfRangeError{Square: sq}
			return out
		}
	}

	p := st.Board.At(from)
	if p == board.NoPiece || p.Color() != st.Active {
		out.Err = fmt.Errorf("%w: %v holds %s", ErrIllegalSelection, from, p.Name())
		return out
	}
	if !board.CanReach(st.Board, from, to) {
		out.Err = fmt.Errorf("%w: %v is not a destination of %v", ErrIllegalMove, to, from)
		return out
	}

	out.Piece = p
	out.Captured = st.Board.At(to)
	st.Board.Place(to, p)
	st.Board.Place(from, board.NoPiece)

	st.Tally.record(p.Color(), out.Captured)
	st.Active = st.Active.Other()
	out.Applied = true
	return out
}
