package board

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// StartPlacement is the FEN piece-placement field of the starting position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// fenDefaults fill the fields after the placement.
var fenDefaults = []string{"w", "-", "-", "0", "1"}

// ParseFEN decodes a FEN string into a board and the side to move.
// Missing trailing fields take their defaults, so a bare placement implies
// White to move. Castling, en passant and clock fields are validated but
// otherwise ignored.
func ParseFEN(fen string) (*Board, Color, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, NoColor, fmt.Errorf("invalid FEN: empty")
	}
	if n := len(fields); n < len(fenDefaults)+1 {
		fields = append(fields, fenDefaults[n-1:]...)
	}
	fen = strings.Join(fields, " ")

	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, NoColor, fmt.Errorf("invalid FEN %q: %w", fen, err)
	}
	pos := nchess.NewGame(opt).Position()

	b := EmptyBoard()
	for sq, pc := range pos.Board().SquareMap() {
		p := fromExternalPiece(pc)
		if p == NoPiece {
			continue
		}
		b.Place(fromExternalSquare(sq), p)
	}

	side := White
	if pos.Turn() == nchess.Black {
		side = Black
	}
	return b, side, nil
}

// MustParseFEN is ParseFEN for fixtures known to be valid.
func MustParseFEN(fen string) *Board {
	b, _, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// Placement returns the FEN piece-placement field for the board.
func (b Board) Placement() string {
	m := make(map[nchess.Square]nchess.Piece, 32)
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if p := b.squares[r][f]; p != NoPiece {
				m[toExternalSquare(NewSquare(f, r))] = toExternalPiece(p)
			}
		}
	}
	return nchess.NewBoard(m).String()
}

// Rank 0 here is the eighth rank in FEN terms.
func fromExternalSquare(sq nchess.Square) Square {
	return NewSquare(int(sq.File()), 7-int(sq.Rank()))
}

func toExternalSquare(sq Square) nchess.Square {
	return nchess.NewSquare(nchess.File(sq.File), nchess.Rank(7-sq.Rank))
}

var externalTypes = [...]struct {
	ours   PieceType
	theirs nchess.PieceType
}{
	{Pawn, nchess.Pawn},
	{Knight, nchess.Knight},
	{Bishop, nchess.Bishop},
	{Rook, nchess.Rook},
	{Queen, nchess.Queen},
	{King, nchess.King},
}

func fromExternalPiece(pc nchess.Piece) Piece {
	c := White
	switch pc.Color() {
	case nchess.White:
	case nchess.Black:
		c = Black
	default:
		return NoPiece
	}
	for _, t := range externalTypes {
		if t.theirs == pc.Type() {
			return NewPiece(t.ours, c)
		}
	}
	return NoPiece
}

func toExternalPiece(p Piece) nchess.Piece {
	c := nchess.White
	if p.Color() == Black {
		c = nchess.Black
	}
	for _, t := range externalTypes {
		if t.ours == p.Type() {
			return nchess.NewPiece(t.theirs, c)
		}
	}
	return nchess.NoPiece
}
