package game

import (
	"slices"

	"github.com/hailam/chessturn/internal/board"
)

// Tally counts applied moves per side and the pieces each side captured.
type Tally struct {
	Moves    [2]int
	Captured [2][]board.Piece
}

func (t *Tally) record(mover board.Color, captured board.Piece) {
	t.Moves[mover]++
	if captured != board.NoPiece {
		t.Captured[mover] = append(t.Captured[mover], captured)
	}
}

// TotalMoves returns the number of moves applied by both sides.
func (t Tally) TotalMoves() int {
	return t.Moves[board.White] + t.Moves[board.Black]
}

// TotalCaptures returns the number of pieces removed from the board.
func (t Tally) TotalCaptures() int {
	return len(t.Captured[board.White]) + len(t.Captured[board.Black])
}

func (t Tally) clone() Tally {
	return Tally{
		Moves: t.Moves,
		Captured: [2][]board.Piece{
			slices.Clone(t.Captured[board.White]),
			slices.Clone(t.Captured[board.Black]),
		},
	}
}
