package board

import "strings"

// Color is a side. White moves first and starts on ranks 6 and 7.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

var colorNames = [...]string{"white", "black", "none"}

// Other returns the opposing side.
func (c Color) Other() Color {
	return c ^ 1
}

// Forward returns the rank delta of a pawn step for c.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) String() string {
	if c > NoColor {
		return colorNames[NoColor]
	}
	return colorNames[c]
}

// ParseColor accepts "white"/"w" and "black"/"b" in any case.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	}
	return NoColor, false
}

// PieceType is a kind of piece regardless of side.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var typeNames = [...]string{"pawn", "knight", "bishop", "rook", "queen", "king", "none"}

func (pt PieceType) String() string {
	if pt > NoPieceType {
		return typeNames[NoPieceType]
	}
	return typeNames[pt]
}

// Piece is a PieceType of a Color, encoded as type + 6*color. NoPiece marks
// an empty square.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// pieceLetters are the FEN letters indexed by Piece.
const pieceLetters = "PNBRQKpnbrqk."

// NewPiece returns the piece of type pt and color c, or NoPiece.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter, uppercase for White, or "." for NoPiece.
func (p Piece) String() string {
	if p > NoPiece {
		p = NoPiece
	}
	return pieceLetters[p : p+1]
}

// Name returns e.g. "white knight", or "nothing" for NoPiece.
func (p Piece) Name() string {
	if p >= NoPiece {
		return "nothing"
	}
	return p.Color().String() + " " + p.Type().String()
}
