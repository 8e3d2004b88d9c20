package board

import "fmt"

// OutOfRangeError reports a square outside the 8x8 board. Board accessors
// panic with it: well-formed input never produces one.
type OutOfRangeError struct {
	Square Square
}

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("square (%d,%d) is outside the board", e.Square.File, e.Square.Rank)
}

func mustBeOnBoard(sq Square) {
	if !sq.IsValid() {
		panic(OutOfRangeError{Square: sq})
	}
}
