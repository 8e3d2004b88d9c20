// Package board implements the chess board representation, piece model and
// per-piece move generation.
//
// Squares are addressed by (file, rank) with both coordinates in 0..7.
// Rank 0 is Black's back rank and rank 7 is White's, so White pawns advance
// toward lower ranks.
package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Square is a (file, rank) pair. Values outside 0..7 are representable so that
// callers can detect them, but no board accessor accepts them.
type Square struct {
	File int
	Rank int
}

// NoSquare is the zero-information square used where "no square" is meant.
var NoSquare = Square{File: -1, Rank: -1}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// IsValid reports whether both coordinates lie in 0..7.
func (sq Square) IsValid() bool {
	return sq.File >= 0 && sq.File < 8 && sq.Rank >= 0 && sq.Rank < 8
}

// Offset returns the square shifted by (df, dr). The result may be off the board.
func (sq Square) Offset(df, dr int) Square {
	return Square{File: sq.File + df, Rank: sq.Rank + dr}
}

// index maps a valid square to 0..63, rank-major from rank 0.
func (sq Square) index() uint {
	return uint(sq.Rank*8 + sq.File)
}

func squareFromIndex(i int) Square {
	return Square{File: i & 7, Rank: i >> 3}
}

// String returns the algebraic notation for the square (e.g., "e2" for (4,6)).
func (sq Square) String() string {
	if !sq.IsValid() {
		return fmt.Sprintf("(%d,%d)", sq.File, sq.Rank)
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File, '8'-sq.Rank)
}

// ParseSquare parses either algebraic notation ("e2", any case) or a
// "file,rank" pair ("4,6").
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, r, ok := strings.Cut(s, ","); ok {
		file, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return NoSquare, fmt.Errorf("invalid square: %s", s)
		}
		rank, err := strconv.Atoi(strings.TrimSpace(r))
		if err != nil {
			return NoSquare, fmt.Errorf("invalid square: %s", s)
		}
		sq := NewSquare(file, rank)
		if !sq.IsValid() {
			return NoSquare, OutOfRangeError{Square: sq}
		}
		return sq, nil
	}

	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0] - 'a')
	rank := int('8' - s[1])

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}
