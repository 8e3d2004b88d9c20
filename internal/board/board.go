package board

import "strings"

// backRank is the piece order on ranks 0 and 7, from file 0 to file 7.
var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is an 8x8 grid of optional pieces, indexed [rank][file].
// The zero value is not an empty board; use EmptyBoard or NewBoard.
// Board is a plain value: copying it yields an independent snapshot.
type Board struct {
	squares [8][8]Piece
}

// EmptyBoard returns a board with no pieces.
func EmptyBoard() *Board {
	b := &Board{}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			b.squares[r][f] = NoPiece
		}
	}
	return b
}

// NewBoard returns the standard starting position.
func NewBoard() *Board {
	b := EmptyBoard()
	for f, pt := range backRank {
		b.squares[0][f] = NewPiece(pt, Black)
		b.squares[1][f] = BlackPawn
		b.squares[6][f] = WhitePawn
		b.squares[7][f] = NewPiece(pt, White)
	}
	return b
}

// Place puts p on sq, replacing any occupant. NoPiece clears the square.
// Panics with OutOfRangeError if sq is off the board.
func (b *Board) Place(sq Square, p Piece) {
	mustBeOnBoard(sq)
	b.squares[sq.Rank][sq.File] = p
}

// At returns the piece on sq, or NoPiece if empty.
// Panics with OutOfRangeError if sq is off the board.
func (b Board) At(sq Square) Piece {
	mustBeOnBoard(sq)
	return b.squares[sq.Rank][sq.File]
}

// IsEmpty returns true if sq holds no piece.
func (b Board) IsEmpty(sq Square) bool {
	return b.At(sq) == NoPiece
}

// IsOccupiedBy returns true if sq holds a piece of color c.
func (b Board) IsOccupiedBy(sq Square, c Color) bool {
	p := b.At(sq)
	return p != NoPiece && p.Color() == c
}

// Count returns the number of pieces on the board.
func (b Board) Count() int {
	n := 0
	for r := range b.squares {
		for _, p := range b.squares[r] {
			if p != NoPiece {
				n++
			}
		}
	}
	return n
}

// CountColor returns the number of pieces of color c.
func (b Board) CountColor(c Color) int {
	n := 0
	for r := range b.squares {
		for _, p := range b.squares[r] {
			if p != NoPiece && p.Color() == c {
				n++
			}
		}
	}
	return n
}

// Occupied returns the squares holding a piece of color c.
func (b Board) Occupied(c Color) SquareSet {
	var s SquareSet
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b.squares[r][f]; p != NoPiece && p.Color() == c {
				s.Add(NewSquare(f, r))
			}
		}
	}
	return s
}

// Find returns the first square (by rank, then file) holding p.
func (b Board) Find(p Piece) (Square, bool) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if b.squares[r][f] == p {
				return NewSquare(f, r), true
			}
		}
	}
	return NoSquare, false
}

// Clone returns an independent copy of the board.
func (b Board) Clone() *Board {
	return &b
}

// String renders the board with rank 0 at the top.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := 0; r < 8; r++ {
		sb.WriteByte(byte('8' - r))
		for f := 0; f < 8; f++ {
			sb.WriteByte(' ')
			sb.WriteString(b.squares[r][f].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
