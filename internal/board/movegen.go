package board

// offset is a (file, rank) displacement.
type offset struct {
	df, dr int
}

var (
	knightOffsets = [8]offset{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets = [8]offset{
		{1, 0}, {0, 1}, {-1, 0}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	rookDirections   = [4]offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirections = [4]offset{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// LegalDestinations returns the squares the piece on from may move to.
// Check, castling, en passant, double pawn steps and promotion are not
// modelled. An empty origin yields an empty set.
func LegalDestinations(b *Board, from Square) SquareSet {
	p := b.At(from)
	if p == NoPiece {
		return EmptySet
	}

	us := p.Color()
	var dst SquareSet

	switch p.Type() {
	case Pawn:
		generatePawnMoves(b, from, us, &dst)
	case Knight:
		generateStepMoves(b, from, us, knightOffsets[:], &dst)
	case Bishop:
		generateSlidingMoves(b, from, us, bishopDirections[:], &dst)
	case Rook:
		generateSlidingMoves(b, from, us, rookDirections[:], &dst)
	case Queen:
		var diagonal SquareSet
		generateSlidingMoves(b, from, us, rookDirections[:], &dst)
		generateSlidingMoves(b, from, us, bishopDirections[:], &diagonal)
		dst = dst.Union(diagonal)
	case King:
		generateStepMoves(b, from, us, kingOffsets[:], &dst)
	}

	return dst
}

// CanReach reports whether the piece on from may move to to.
func CanReach(b *Board, from, to Square) bool {
	return LegalDestinations(b, from).Has(to)
}

// generatePawnMoves adds the single forward step onto an empty square and the
// two forward diagonals when they hold an enemy piece.
func generatePawnMoves(b *Board, from Square, us Color, dst *SquareSet) {
	dr := us.Forward()

	if to := from.Offset(0, dr); to.IsValid() && b.IsEmpty(to) {
		dst.Add(to)
	}

	for _, df := range [2]int{-1, 1} {
		to := from.Offset(df, dr)
		if to.IsValid() && b.IsOccupiedBy(to, us.Other()) {
			dst.Add(to)
		}
	}
}

// generateStepMoves handles knights and kings: each offset is a single jump
// onto an empty or enemy-held square.
func generateStepMoves(b *Board, from Square, us Color, offsets []offset, dst *SquareSet) {
	for _, o := range offsets {
		to := from.Offset(o.df, o.dr)
		if !to.IsValid() || b.IsOccupiedBy(to, us) {
			continue
		}
		dst.Add(to)
	}
}

// generateSlidingMoves walks each ray until the edge or the first piece.
// An enemy piece is included and ends the ray; a friendly one just ends it.
func generateSlidingMoves(b *Board, from Square, us Color, dirs []offset, dst *SquareSet) {
	for _, d := range dirs {
		for to := from.Offset(d.df, d.dr); to.IsValid(); to = to.Offset(d.df, d.dr) {
			p := b.At(to)
			if p == NoPiece {
				dst.Add(to)
				continue
			}
			if p.Color() != us {
				dst.Add(to)
			}
			break
		}
	}
}
