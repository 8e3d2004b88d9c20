package board

import (
	"errors"
	"testing"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	if got := b.Count(); got != 32 {
		t.Fatalf("Count() = %d, want 32", got)
	}
	if got := b.CountColor(White); got != 16 {
		t.Errorf("CountColor(White) = %d, want 16", got)
	}
	if got := b.Placement(); got != StartPlacement {
		t.Errorf("Placement() = %q, want %q", got, StartPlacement)
	}

	tests := []struct {
		sq   Square
		want Piece
	}{
		{NewSquare(0, 0), BlackRook},
		{NewSquare(4, 0), BlackKing},
		{NewSquare(3, 7), WhiteQueen},
		{NewSquare(1, 7), WhiteKnight},
		{NewSquare(4, 6), WhitePawn},
		{NewSquare(7, 1), BlackPawn},
		{NewSquare(3, 4), NoPiece},
	}
	for _, tc := range tests {
		if got := b.At(tc.sq); got != tc.want {
			t.Errorf("At(%v) = %v, want %v", tc.sq, got, tc.want)
		}
	}
}

func TestPlaceAndOccupancy(t *testing.T) {
	b := EmptyBoard()
	sq := NewSquare(2, 5)

	if !b.IsEmpty(sq) {
		t.Fatalf("empty board has a piece at %v", sq)
	}

	b.Place(sq, BlackBishop)
	if !b.IsOccupiedBy(sq, Black) {
		t.Errorf("IsOccupiedBy(%v, Black) = false after Place", sq)
	}
	if b.IsOccupiedBy(sq, White) {
		t.Errorf("IsOccupiedBy(%v, White) = true for a black bishop", sq)
	}

	b.Place(sq, NoPiece)
	if !b.IsEmpty(sq) || b.Count() != 0 {
		t.Errorf("Place(NoPiece) did not clear %v", sq)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	squares := []Square{
		NewSquare(-1, 0),
		NewSquare(0, 8),
		NewSquare(8, 8),
		NoSquare,
	}

	for _, sq := range squares {
		t.Run(sq.String(), func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("At(%v) did not panic", sq)
				}
				err, ok := r.(error)
				if !ok {
					t.Fatalf("panic value %v is not an error", r)
				}
				var oor OutOfRangeError
				if !errors.As(err, &oor) || oor.Square != sq {
					t.Fatalf("panic value = %v, want OutOfRangeError for %v", err, sq)
				}
			}()
			EmptyBoard().At(sq)
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	c := b.Clone()
	c.Place(NewSquare(4, 6), NoPiece)

	if b.At(NewSquare(4, 6)) != WhitePawn {
		t.Error("mutating the clone changed the original")
	}

	snapshot := *b
	b.Place(NewSquare(0, 0), NoPiece)
	if snapshot.At(NewSquare(0, 0)) != BlackRook {
		t.Error("value copy shares storage with the original")
	}
}

func TestSquareNotation(t *testing.T) {
	tests := []struct {
		in   string
		want Square
	}{
		{"e2", NewSquare(4, 6)},
		{"a8", NewSquare(0, 0)},
		{"h1", NewSquare(7, 7)},
		{"4,6", NewSquare(4, 6)},
		{" 1 , 7 ", NewSquare(1, 7)},
		{"E2", NewSquare(4, 6)},
		{" H1 ", NewSquare(7, 7)},
	}
	for _, tc := range tests {
		got, err := ParseSquare(tc.in)
		if err != nil {
			t.Errorf("ParseSquare(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSquare(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}

	if got := NewSquare(4, 5).String(); got != "e3" {
		t.Errorf("String() = %q, want e3", got)
	}

	for _, bad := range []string{"", "z9", "e9", "a", "x,1"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) succeeded, want error", bad)
		}
	}

	_, err := ParseSquare("8,0")
	var oor OutOfRangeError
	if !errors.As(err, &oor) {
		t.Errorf("ParseSquare(\"8,0\") error = %v, want OutOfRangeError", err)
	}
}

func TestParseFEN(t *testing.T) {
	b, side, err := ParseFEN("4k3/8/8/3q4/8/8/4P3/4K3 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if side != Black {
		t.Errorf("side = %v, want Black", side)
	}
	if got := b.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if got := b.At(NewSquare(3, 3)); got != BlackQueen {
		t.Errorf("d5 = %v, want black queen", got)
	}
	if got := b.At(NewSquare(4, 6)); got != WhitePawn {
		t.Errorf("e2 = %v, want white pawn", got)
	}
	if got := b.Placement(); got != "4k3/8/8/3q4/8/8/4P3/4K3" {
		t.Errorf("Placement() = %q", got)
	}

	placementOnly, side, err := ParseFEN(StartPlacement)
	if err != nil {
		t.Fatalf("ParseFEN(placement): %v", err)
	}
	if side != White || *placementOnly != *NewBoard() {
		t.Error("bare placement did not decode to the starting position with White to move")
	}

	for _, tc := range []struct {
		fen  string
		want Color
	}{
		{StartPlacement + " b", Black},
		{StartPlacement + " w KQkq", White},
		{StartPlacement + " b - - 3", Black},
	} {
		b, side, err := ParseFEN(tc.fen)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", tc.fen, err)
			continue
		}
		if side != tc.want || *b != *NewBoard() {
			t.Errorf("ParseFEN(%q) side = %v, want %v", tc.fen, side, tc.want)
		}
	}

	if _, _, err := ParseFEN("not a fen"); err == nil {
		t.Error("ParseFEN accepted garbage")
	}
}

func TestColor(t *testing.T) {
	for _, in := range []string{"white", "W", " White "} {
		if c, ok := ParseColor(in); !ok || c != White {
			t.Errorf("ParseColor(%q) = %v, %v", in, c, ok)
		}
	}
	if c, ok := ParseColor("BLACK"); !ok || c != Black {
		t.Errorf("ParseColor(BLACK) = %v, %v", c, ok)
	}
	if _, ok := ParseColor("red"); ok {
		t.Error("ParseColor accepted red")
	}
	if White.Other() != Black || Black.Other() != White {
		t.Error("Other() does not swap sides")
	}
	if White.String() != "white" || NoColor.String() != "none" {
		t.Errorf("String() = %q, %q", White.String(), NoColor.String())
	}
}

func TestPieceEncoding(t *testing.T) {
	for pt := Pawn; pt < NoPieceType; pt++ {
		for _, c := range []Color{White, Black} {
			p := NewPiece(pt, c)
			if p.Type() != pt || p.Color() != c {
				t.Errorf("NewPiece(%v, %v) = %v decodes to %v %v", pt, c, p, p.Type(), p.Color())
			}
		}
	}
	if NewPiece(NoPieceType, White) != NoPiece || NewPiece(King, NoColor) != NoPiece {
		t.Error("invalid type or color did not give NoPiece")
	}

	tests := []struct {
		p          Piece
		str, named string
	}{
		{WhiteKnight, "N", "white knight"},
		{BlackQueen, "q", "black queen"},
		{NoPiece, ".", "nothing"},
	}
	for _, tc := range tests {
		if tc.p.String() != tc.str || tc.p.Name() != tc.named {
			t.Errorf("%d: String() = %q, Name() = %q", tc.p, tc.p.String(), tc.p.Name())
		}
	}
}
