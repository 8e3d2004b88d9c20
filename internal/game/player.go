package game

import (
	"math/rand/v2"

	"github.com/hailam/chessturn/internal/board"
)

// Player decides how a side's moves originate.
type Player interface {
	// Automated reports whether the side moves on its own.
	Automated() bool
	// ChooseMove proposes a move for side. Human players never propose one.
	ChooseMove(b *board.Board, side board.Color) (from, to board.Square, ok bool)
}

// Human is a side driven by external input.
type Human struct{}

// Automated returns false.
func (Human) Automated() bool { return false }

// ChooseMove never proposes a move.
func (Human) ChooseMove(*board.Board, board.Color) (board.Square, board.Square, bool) {
	return board.NoSquare, board.NoSquare, false
}

// sampleLimit bounds the random square draws before falling back to a scan.
const sampleLimit = 256

// Random is an automated side that samples board squares uniformly until it
// hits one of its own pieces with at least one legal destination, then picks
// a destination uniformly. There is no evaluation.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random player. A nil rng uses a time-seeded source.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Random{rng: rng}
}

// NewSeededRandom returns a Random player with a deterministic source.
func NewSeededRandom(seed uint64) *Random {
	return NewRandom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Automated returns true.
func (*Random) Automated() bool { return true }

// ChooseMove returns ok=false only when side has no legal move at all.
func (r *Random) ChooseMove(b *board.Board, side board.Color) (board.Square, board.Square, bool) {
	for i := 0; i < sampleLimit; i++ {
		from := board.NewSquare(r.rng.IntN(8), r.rng.IntN(8))
		if !b.IsOccupiedBy(from, side) {
			continue
		}
		if dst := board.LegalDestinations(b, from); !dst.IsEmpty() {
			return from, r.pick(dst), true
		}
	}

	// Sampling keeps missing; choose among the movable pieces directly.
	var movable []board.Square
	for _, sq := range b.Occupied(side).Squares() {
		if !board.LegalDestinations(b, sq).IsEmpty() {
			movable = append(movable, sq)
		}
	}
	if len(movable) == 0 {
		return board.NoSquare, board.NoSquare, false
	}
	from := movable[r.rng.IntN(len(movable))]
	return from, r.pick(board.LegalDestinations(b, from)), true
}

func (r *Random) pick(dst board.SquareSet) board.Square {
	sqs := dst.Squares()
	return sqs[r.rng.IntN(len(sqs))]
}
