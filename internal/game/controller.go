// Package game implements turn management on top of the board package:
// selection, move application, player sides and the game-over hook.
//
// A Controller owns exactly one State. Adapters (the window, the console)
// feed it squares and read back snapshots; they never mutate the board.
//
//	ctrl := game.New(game.WithPlayers(game.Human{}, game.NewRandom(nil)))
//	ctrl.Click(board.NewSquare(4, 6)) // select the e2 pawn
//	ctrl.Click(board.NewSquare(4, 5)) // move it to e3
//	ctrl.PlayAutomated()              // Black answers
package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hailam/chessturn/internal/board"
)

// Controller is the turn state machine. It is not safe for concurrent use.
type Controller struct {
	st      *State
	hook    GameOverHook
	players [2]Player

	initial     *board.Board
	initialSide board.Color

	baseLog *zap.Logger
	log     *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Each game adds a game_id field.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.baseLog = l
		}
	}
}

// WithGameOverHook sets the hook queried after each applied move.
func WithGameOverHook(h GameOverHook) Option {
	return func(c *Controller) {
		if h != nil {
			c.hook = h
		}
	}
}

// WithPlayers sets who controls White and Black.
func WithPlayers(white, black Player) Option {
	return func(c *Controller) {
		c.SetPlayers(white, black)
	}
}

// WithPosition starts (and restarts) games from b with side to move.
func WithPosition(b *board.Board, side board.Color) Option {
	return func(c *Controller) {
		c.initial = b.Clone()
		c.initialSide = side
	}
}

// New creates a controller with a game in the standard starting position,
// two human players and a hook that never ends the game.
func New(opts ...Option) *Controller {
	c := &Controller{
		hook:        NeverOver{},
		players:     [2]Player{Human{}, Human{}},
		initial:     board.NewBoard(),
		initialSide: board.White,
		baseLog:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

// Reset starts a new game from the initial position.
func (c *Controller) Reset() {
	c.st = NewState(c.initial.Clone(), c.initialSide)
	c.log = c.baseLog.With(zap.String("game_id", c.st.ID))
	c.log.Info("new game", zap.Stringer("to_move", c.st.Active))
}

// SetPlayers replaces the players of both sides. Nil means Human.
func (c *Controller) SetPlayers(white, black Player) {
	for i, p := range [2]Player{white, black} {
		if p == nil {
			p = Human{}
		}
		c.players[i] = p
	}
}

// Player returns the player controlling side. NoColor gets Human.
func (c *Controller) Player(side board.Color) Player {
	if side != board.White && side != board.Black {
		return Human{}
	}
	return c.players[side]
}

// SelectSquare selects the active side's piece on sq and returns its legal
// destinations. Any other square clears the selection and returns an error
// wrapping ErrIllegalSelection (or OutOfRangeError, or ErrGameOver).
func (c *Controller) SelectSquare(sq board.Square) (board.SquareSet, error) {
	if c.st.Over {
		return board.EmptySet, ErrGameOver
	}
	if !sq.IsValid() {
		c.st.clearSelection()
		return board.EmptySet, board.OutOfRangeError{Square: sq}
	}

	p := c.st.Board.At(sq)
	if p == board.NoPiece || p.Color() != c.st.Active {
		c.st.clearSelection()
		c.log.Debug("selection rejected", zap.Stringer("square", sq), zap.Stringer("piece", p))
		return board.EmptySet, fmt.Errorf("%w: %v holds %s", ErrIllegalSelection, sq, p.Name())
	}

	legal := board.LegalDestinations(c.st.Board, sq)
	c.st.setSelection(sq, legal)
	c.log.Debug("selected",
		zap.Stringer("square", sq),
		zap.Stringer("piece", p),
		zap.Stringer("destinations", legal))
	return legal, nil
}

// AttemptMove moves the selected piece to to. Success flips the active
// color; rejection only clears the selection.
func (c *Controller) AttemptMove(to board.Square) MoveOutcome {
	if c.st.Over {
		c.st.clearSelection()
		return MoveOutcome{To: to, From: board.NoSquare, Piece: board.NoPiece, Captured: board.NoPiece, Err: ErrGameOver}
	}

	from, ok := c.st.Selection()
	if !ok {
		return MoveOutcome{To: to, From: board.NoSquare, Piece: board.NoPiece, Captured: board.NoPiece,
			Err: fmt.Errorf("%w: nothing selected", ErrIllegalSelection)}
	}

	out := Apply(c.st, from, to)
	if !out.Applied {
		c.log.Debug("move rejected",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Error(out.Err))
		return out
	}

	fields := []zap.Field{
		zap.Stringer("from", out.From),
		zap.Stringer("to", out.To),
		zap.Stringer("piece", out.Piece),
	}
	if out.IsCapture() {
		fields = append(fields, zap.Stringer("captured", out.Captured))
	}
	c.log.Info("move applied", fields...)

	c.checkGameOver()
	return out
}

// ClickResult reports what a Click did.
type ClickResult struct {
	// Selected is set when the click selected a piece.
	Selected bool
	Legal    board.SquareSet
	// Move is set when the click was routed through the applicator.
	Move *MoveOutcome
	Err  error
}

// Click drives the selection state machine with one input square: with
// nothing selected it tries to select; otherwise it attempts a move.
func (c *Controller) Click(sq board.Square) ClickResult {
	if _, selected := c.st.Selection(); !selected {
		legal, err := c.SelectSquare(sq)
		return ClickResult{Selected: err == nil, Legal: legal, Err: err}
	}
	out := c.AttemptMove(sq)
	return ClickResult{Move: &out, Err: out.Err}
}

// PlayAutomated lets the side to move play if its player is automated. The
// move goes through SelectSquare and AttemptMove like any human input.
// ok is false when the side is human or the game is over.
func (c *Controller) PlayAutomated() (MoveOutcome, bool) {
	side := c.st.Active
	p := c.players[side]
	if c.st.Over || !p.Automated() {
		return MoveOutcome{}, false
	}

	from, to, found := p.ChooseMove(c.st.Board.Clone(), side)
	if !found {
		c.log.Warn("automated side has no legal move", zap.Stringer("side", side))
		return MoveOutcome{From: board.NoSquare, To: board.NoSquare, Piece: board.NoPiece,
			Captured: board.NoPiece, Err: ErrNoLegalMoves}, true
	}

	if _, err := c.SelectSquare(from); err != nil {
		return MoveOutcome{From: from, To: to, Piece: board.NoPiece, Captured: board.NoPiece, Err: err}, true
	}
	return c.AttemptMove(to), true
}

func (c *Controller) checkGameOver() {
	snapshot := *c.st.Board
	if !c.hook.IsGameOver(snapshot) {
		return
	}
	winner := board.NoColor
	if wr, ok := c.hook.(WinnerReporter); ok {
		winner = wr.Winner(snapshot)
	}
	c.st.finish(winner)
	c.log.Info("game over",
		zap.Stringer("winner", winner),
		zap.Int("moves", c.st.Tally.TotalMoves()),
		zap.Int("captures", c.st.Tally.TotalCaptures()))
}

// CurrentBoard returns a snapshot of the board.
func (c *Controller) CurrentBoard() board.Board {
	return *c.st.Board
}

// ActiveColor returns the side to move.
func (c *Controller) ActiveColor() board.Color {
	return c.st.Active
}

// Selection returns the selected square, if any.
func (c *Controller) Selection() (board.Square, bool) {
	return c.st.Selection()
}

// LegalMoves returns the destinations of the current selection.
func (c *Controller) LegalMoves() board.SquareSet {
	return c.st.LegalMoves()
}

// GameOver reports whether the game-over hook has fired.
func (c *Controller) GameOver() bool {
	return c.st.Over
}

// Winner returns the winner reported at game over, or NoColor.
func (c *Controller) Winner() board.Color {
	return c.st.Winner
}

// GameID returns the identifier of the current game.
func (c *Controller) GameID() string {
	return c.st.ID
}

// Tally returns a copy of the move and capture counters.
func (c *Controller) Tally() Tally {
	return c.st.Tally.clone()
}

// IsRejection reports whether err is an ordinary user-input rejection.
func IsRejection(err error) bool {
	return errors.Is(err, ErrIllegalSelection) || errors.Is(err, ErrIllegalMove)
}
