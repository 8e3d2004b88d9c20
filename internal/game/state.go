package game

import (
	"github.com/google/uuid"

	"github.com/hailam/chessturn/internal/board"
)

// State is the single mutable game record. Selection and legal moves are
// always replaced together so they cannot drift apart.
type State struct {
	ID     string
	Board  *board.Board
	Active board.Color
	Over   bool
	Winner board.Color
	Tally  Tally

	selected board.Square
	legal    board.SquareSet
}

// NewState starts a game on b with active to move.
func NewState(b *board.Board, active board.Color) *State {
	return &State{
		ID:       uuid.NewString(),
		Board:    b,
		Active:   active,
		Winner:   board.NoColor,
		selected: board.NoSquare,
	}
}

// Selection returns the selected square, if any.
func (s *State) Selection() (board.Square, bool) {
	return s.selected, s.selected != board.NoSquare
}

// LegalMoves returns the destinations computed for the current selection.
func (s *State) LegalMoves() board.SquareSet {
	return s.legal
}

func (s *State) setSelection(sq board.Square, legal board.SquareSet) {
	s.selected = sq
	s.legal = legal
}

func (s *State) clearSelection() {
	s.selected = board.NoSquare
	s.legal = board.EmptySet
}

// finish marks the game over. It never reverts.
func (s *State) finish(winner board.Color) {
	if s.Over {
		return
	}
	s.Over = true
	s.Winner = winner
}
