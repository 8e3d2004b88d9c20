package game

import "errors"

var (
	// ErrIllegalSelection is returned when the chosen origin is empty or
	// holds a piece of the side not to move, or when no piece is selected.
	ErrIllegalSelection = errors.New("illegal selection")
	// ErrIllegalMove is returned when the destination is not a legal
	// destination of the selected piece.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned for any input after the game-over hook fired.
	ErrGameOver = errors.New("game over")
	// ErrNoLegalMoves is returned when an automated side has nothing to play.
	ErrNoLegalMoves = errors.New("no legal moves")
)
