package board

import (
	"math/bits"
	"strings"
)

// SquareSet is a set of board squares packed into 64 bits.
// Bit i corresponds to the square with rank i/8 and file i%8.
type SquareSet uint64

// EmptySet contains no squares.
const EmptySet SquareSet = 0

// SquareSetOf builds a set from the given squares. Off-board squares are ignored.
func SquareSetOf(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s.Add(sq)
	}
	return s
}

// Add inserts sq into the set. Off-board squares are ignored.
func (s *SquareSet) Add(sq Square) {
	if !sq.IsValid() {
		return
	}
	*s |= 1 << sq.index()
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	if !sq.IsValid() {
		return false
	}
	return s&(1<<sq.index()) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// IsEmpty returns true if the set has no squares.
func (s SquareSet) IsEmpty() bool {
	return s == 0
}

// Union returns the squares present in either set.
func (s SquareSet) Union(o SquareSet) SquareSet {
	return s | o
}

// Squares lists the members ordered by rank, then file.
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for b := uint64(s); b != 0; b &= b - 1 {
		out = append(out, squareFromIndex(bits.TrailingZeros64(b)))
	}
	return out
}

// String returns the members in algebraic notation, e.g. "{e3 e4}".
func (s SquareSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, sq := range s.Squares() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(sq.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
