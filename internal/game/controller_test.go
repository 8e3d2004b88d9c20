package game

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hailam/chessturn/internal/board"
)

func TestSelectSquare(t *testing.T) {
	tests := []struct {
		name    string
		square  board.Square
		want    board.SquareSet
		wantErr error
	}{
		{"Pawn", board.NewSquare(4, 6), board.SquareSetOf(board.NewSquare(4, 5)), nil},
		{"Knight", board.NewSquare(1, 7), board.SquareSetOf(board.NewSquare(0, 5), board.NewSquare(2, 5)), nil},
		{"BlockedRook", board.NewSquare(0, 7), board.EmptySet, nil},
		{"Empty", board.NewSquare(4, 4), board.EmptySet, ErrIllegalSelection},
		{"Opponent", board.NewSquare(4, 1), board.EmptySet, ErrIllegalSelection},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			got, err := c.SelectSquare(tc.square)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("SelectSquare(%v) error = %v, want %v", tc.square, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("SelectSquare(%v) = %v, want %v", tc.square, got, tc.want)
			}
			sel, ok := c.Selection()
			if (tc.wantErr == nil) != ok {
				t.Errorf("Selection() ok = %v", ok)
			}
			if ok && (sel != tc.square || c.LegalMoves() != tc.want) {
				t.Errorf("Selection() = %v %v", sel, c.LegalMoves())
			}
		})
	}
}

func TestSelectOutOfRange(t *testing.T) {
	c := New()
	_, err := c.SelectSquare(board.NewSquare(8, 0))

	var oor board.OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("error = %v, want OutOfRangeError", err)
	}
}

func TestAttemptMove(t *testing.T) {
	c := New()
	if _, err := c.SelectSquare(board.NewSquare(4, 6)); err != nil {
		t.Fatalf("SelectSquare: %v", err)
	}

	out := c.AttemptMove(board.NewSquare(4, 5))
	if !out.Applied {
		t.Fatalf("AttemptMove = %+v", out)
	}
	if c.ActiveColor() != board.Black {
		t.Errorf("ActiveColor() = %v, want Black", c.ActiveColor())
	}
	b := c.CurrentBoard()
	if b.At(board.NewSquare(4, 6)) != board.NoPiece || b.At(board.NewSquare(4, 5)) != board.WhitePawn {
		t.Errorf("board after e2e3:\n%s", b.String())
	}
	if _, ok := c.Selection(); ok || !c.LegalMoves().IsEmpty() {
		t.Error("selection not cleared after applied move")
	}
}

func TestRejectedAttemptsKeepTurn(t *testing.T) {
	c := New()
	before := c.CurrentBoard()

	for i := 0; i < 2; i++ {
		if _, err := c.SelectSquare(board.NewSquare(4, 6)); err != nil {
			t.Fatalf("SelectSquare: %v", err)
		}
		out := c.AttemptMove(board.NewSquare(4, 3))
		if out.Applied || !errors.Is(out.Err, ErrIllegalMove) {
			t.Fatalf("attempt %d = %+v, want ErrIllegalMove", i, out)
		}
		if c.ActiveColor() != board.White {
			t.Fatalf("attempt %d flipped the turn", i)
		}
	}

	if c.CurrentBoard() != before {
		t.Error("rejected attempts changed the board")
	}

	out := c.AttemptMove(board.NewSquare(4, 5))
	if !errors.Is(out.Err, ErrIllegalSelection) {
		t.Errorf("move without selection: %v, want ErrIllegalSelection", out.Err)
	}
}

func TestClickStateMachine(t *testing.T) {
	c := New()

	// Idle: clicks that cannot select are no-ops.
	for _, s := range []string{"e4", "e7"} {
		res := c.Click(sq(s))
		if res.Selected || res.Move != nil || !IsRejection(res.Err) {
			t.Fatalf("Click(%s) while idle = %+v", s, res)
		}
	}

	res := c.Click(sq("g1"))
	if !res.Selected || res.Legal != board.SquareSetOf(sq("f3"), sq("h3")) {
		t.Fatalf("Click(g1) = %+v", res)
	}

	// Selecting another own piece is an apply attempt, which is rejected.
	res = c.Click(sq("b1"))
	if res.Move == nil || res.Move.Applied || !errors.Is(res.Err, ErrIllegalMove) {
		t.Fatalf("Click(b1) with g1 selected = %+v", res)
	}
	if _, ok := c.Selection(); ok {
		t.Fatal("rejection did not return to idle")
	}

	c.Click(sq("g1"))
	res = c.Click(sq("f3"))
	if res.Move == nil || !res.Move.Applied || res.Err != nil {
		t.Fatalf("Click(f3) = %+v", res)
	}
	if c.ActiveColor() != board.Black {
		t.Errorf("ActiveColor() = %v, want Black", c.ActiveColor())
	}
}

func TestTurnAlternatesOnlyOnSuccess(t *testing.T) {
	c := New(WithPlayers(NewSeededRandom(7), NewSeededRandom(11)))

	for i := 0; i < 300; i++ {
		side := c.ActiveColor()
		count := c.CurrentBoard().Count()

		out, ok := c.PlayAutomated()
		if !ok {
			t.Fatalf("move %d: automated side did not play", i)
		}
		if errors.Is(out.Err, ErrNoLegalMoves) {
			break
		}
		if !out.Applied {
			t.Fatalf("move %d: automated move rejected: %v", i, out.Err)
		}
		if c.ActiveColor() == side {
			t.Fatalf("move %d: turn did not flip", i)
		}
		after := c.CurrentBoard()
		diff := count - after.Count()
		if diff < 0 || diff > 1 {
			t.Fatalf("move %d: piece count went from %d to %d", i, count, after.Count())
		}
		if (diff == 1) != out.IsCapture() {
			t.Fatalf("move %d: capture report %v disagrees with count change %d", i, out.IsCapture(), diff)
		}

		// A rejected human-style attempt in between never changes the turn.
		before := c.ActiveColor()
		c.AttemptMove(board.NewSquare(0, 0))
		if c.ActiveColor() != before {
			t.Fatalf("move %d: rejected attempt flipped the turn", i)
		}
	}

	tally := c.Tally()
	if tally.Moves[board.White]-tally.Moves[board.Black] > 1 || tally.Moves[board.Black] > tally.Moves[board.White] {
		t.Errorf("unbalanced move counts: %v", tally.Moves)
	}
	if got, want := 32-c.CurrentBoard().Count(), tally.TotalCaptures(); got != want {
		t.Errorf("missing pieces = %d, captures tallied = %d", got, want)
	}
}

func TestGameOverHook(t *testing.T) {
	calls := 0
	hook := GameOverFunc(func(b board.Board) bool {
		calls++
		return calls == 2
	})
	c := New(WithGameOverHook(hook))

	c.Click(sq("e2"))
	c.Click(sq("e4")) // rejected: not legal, hook must not run
	if calls != 0 {
		t.Fatalf("hook called %d times after a rejection", calls)
	}

	c.Click(sq("e2"))
	c.Click(sq("e3"))
	if calls != 1 || c.GameOver() {
		t.Fatalf("after first move: calls=%d over=%v", calls, c.GameOver())
	}

	c.Click(sq("e7"))
	c.Click(sq("e6"))
	if calls != 2 || !c.GameOver() {
		t.Fatalf("after second move: calls=%d over=%v", calls, c.GameOver())
	}
	if c.Winner() != board.NoColor {
		t.Errorf("Winner() = %v, want NoColor for a plain hook", c.Winner())
	}

	if _, err := c.SelectSquare(sq("d2")); !errors.Is(err, ErrGameOver) {
		t.Errorf("SelectSquare after game over: %v", err)
	}
	if out := c.AttemptMove(sq("d3")); !errors.Is(out.Err, ErrGameOver) {
		t.Errorf("AttemptMove after game over: %v", out.Err)
	}
	if !c.GameOver() {
		t.Error("game-over flag reverted")
	}
}

func TestKingCaptureEndsGame(t *testing.T) {
	b := board.MustParseFEN("4k3/4Q3/8/8/8/8/8/5K2")
	c := New(WithPosition(b, board.White), WithGameOverHook(KingCaptured{}))

	c.Click(sq("e7"))
	res := c.Click(sq("e8"))
	if res.Move == nil || !res.Move.Applied || res.Move.Captured != board.BlackKing {
		t.Fatalf("Qxe8 = %+v", res)
	}
	if !c.GameOver() || c.Winner() != board.White {
		t.Errorf("GameOver() = %v, Winner() = %v", c.GameOver(), c.Winner())
	}
	if _, ok := c.PlayAutomated(); ok {
		t.Error("PlayAutomated ran after game over")
	}
}

func TestPlayAutomated(t *testing.T) {
	c := New(WithPlayers(Human{}, NewSeededRandom(3)))

	if _, ok := c.PlayAutomated(); ok {
		t.Fatal("PlayAutomated played for a human side")
	}

	c.Click(sq("e2"))
	c.Click(sq("e3"))

	before := c.CurrentBoard()
	out, ok := c.PlayAutomated()
	if !ok || !out.Applied {
		t.Fatalf("PlayAutomated = %+v, %v", out, ok)
	}
	if out.Piece.Color() != board.Black || before.At(out.From) != out.Piece {
		t.Errorf("automated move %v moved %v", out, out.Piece)
	}
	if c.ActiveColor() != board.White {
		t.Errorf("ActiveColor() = %v, want White", c.ActiveColor())
	}
}

func TestPlayerLookup(t *testing.T) {
	random := NewSeededRandom(5)
	c := New(WithPlayers(nil, random))

	if _, ok := c.Player(board.White).(Human); !ok {
		t.Errorf("Player(White) = %T, want Human", c.Player(board.White))
	}
	if c.Player(board.Black) != Player(random) {
		t.Errorf("Player(Black) = %T, want the random player", c.Player(board.Black))
	}
	if p := c.Player(board.NoColor); p == nil || p.Automated() {
		t.Errorf("Player(NoColor) = %v, want Human", p)
	}
}

func TestPlayAutomatedNoMoves(t *testing.T) {
	b := board.EmptyBoard()
	b.Place(sq("a2"), board.WhitePawn)
	b.Place(sq("a3"), board.BlackPawn)
	c := New(WithPosition(b, board.White), WithPlayers(NewSeededRandom(1), Human{}))

	out, ok := c.PlayAutomated()
	if !ok || !errors.Is(out.Err, ErrNoLegalMoves) {
		t.Fatalf("PlayAutomated = %+v, %v", out, ok)
	}
	if c.ActiveColor() != board.White {
		t.Error("turn flipped without a move")
	}
}

func TestResetStartsNewGame(t *testing.T) {
	c := New()
	id := c.GameID()
	c.Click(sq("e2"))
	c.Click(sq("e3"))

	c.Reset()
	if c.GameID() == id {
		t.Error("Reset kept the game id")
	}
	if c.CurrentBoard() != *board.NewBoard() || c.ActiveColor() != board.White {
		t.Error("Reset did not restore the starting position")
	}
	if c.Tally().TotalMoves() != 0 {
		t.Errorf("Tally after Reset = %+v", c.Tally())
	}
}

func TestTallyIsACopy(t *testing.T) {
	b := board.MustParseFEN("4k3/8/8/3p4/8/4N3/8/4K3")
	c := New(WithPosition(b, board.White))
	c.Click(sq("e3"))
	c.Click(sq("d5"))

	tally := c.Tally()
	tally.Captured[board.White][0] = board.BlackQueen
	tally.Moves[board.White] = 99

	again := c.Tally()
	if again.Captured[board.White][0] != board.BlackPawn || again.Moves[board.White] != 1 {
		t.Errorf("Tally() exposes internal state: %+v", again)
	}
}

func TestControllerLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := New(WithLogger(zap.New(core)))

	c.Click(sq("e5"))
	c.Click(sq("e2"))
	c.Click(sq("e3"))

	if n := logs.FilterMessage("selection rejected").Len(); n != 1 {
		t.Errorf("selection rejected logged %d times", n)
	}
	applied := logs.FilterMessage("move applied").All()
	if len(applied) != 1 {
		t.Fatalf("move applied logged %d times", len(applied))
	}
	fields := applied[0].ContextMap()
	if fields["game_id"] != c.GameID() || fields["from"] != "e2" || fields["to"] != "e3" {
		t.Errorf("move applied fields = %v", fields)
	}
}
