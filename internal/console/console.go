// Package console drives a game over a line-oriented text protocol.
//
// Commands:
//
//	select <sq>   select a piece of the side to move
//	move <sq>     move the selected piece
//	click <sq>    select or move, like a mouse click
//	board         print the board
//	fen           print the placement and side to move
//	turn          print the side to move
//	moves         print the legal destinations of the selection
//	tally         print move counts and captures
//	stats         print stored statistics
//	new           start a new game
//	quit          leave
//
// Squares are algebraic ("e2") or "file,rank" pairs with rank 0 at the top.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hailam/chessturn/internal/board"
	"github.com/hailam/chessturn/internal/game"
	"github.com/hailam/chessturn/internal/storage"
)

// autoLimit bounds consecutive automated moves between two inputs.
const autoLimit = 1000

// Console reads commands from in and writes replies to out.
type Console struct {
	ctrl  *game.Controller
	store *storage.Storage
	mode  string
	log   *zap.Logger

	in  io.Reader
	out io.Writer

	started  time.Time
	recorded bool
}

// Option configures a Console.
type Option func(*Console)

// WithStorage records finished and abandoned games in s.
func WithStorage(s *storage.Storage) Option {
	return func(c *Console) { c.store = s }
}

// WithMode sets the mode name stored with each game record.
func WithMode(mode string) Option {
	return func(c *Console) { c.mode = mode }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a console for ctrl.
func New(ctrl *game.Controller, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		ctrl:    ctrl,
		in:      in,
		out:     out,
		log:     zap.NewNop(),
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run processes commands until quit or end of input.
func (c *Console) Run() error {
	c.playAutomated()

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "select":
			c.handleSelect(args)
		case "move":
			c.handleMove(args)
		case "click":
			c.handleClick(args)
		case "board", "d":
			fmt.Fprint(c.out, c.ctrl.CurrentBoard().String())
		case "fen":
			b := c.ctrl.CurrentBoard()
			fmt.Fprintf(c.out, "fen %s %s\n", b.Placement(), sideLetter(c.ctrl.ActiveColor()))
		case "turn":
			fmt.Fprintf(c.out, "turn %v\n", c.ctrl.ActiveColor())
		case "moves":
			c.handleMoves()
		case "tally":
			c.handleTally()
		case "stats":
			c.handleStats()
		case "new":
			c.handleNew()
		case "quit", "exit":
			c.recordGame()
			return nil
		default:
			fmt.Fprintf(c.out, "error unknown command %q\n", cmd)
		}
	}

	c.recordGame()
	return scanner.Err()
}

func (c *Console) handleSelect(args []string) {
	sq, ok := c.square(args)
	if !ok {
		return
	}
	legal, err := c.ctrl.SelectSquare(sq)
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintf(c.out, "selected %v moves %v\n", sq, legal)
}

func (c *Console) handleMove(args []string) {
	sq, ok := c.square(args)
	if !ok {
		return
	}
	c.reportMove(c.ctrl.AttemptMove(sq))
}

func (c *Console) handleClick(args []string) {
	sq, ok := c.square(args)
	if !ok {
		return
	}
	res := c.ctrl.Click(sq)
	switch {
	case res.Move != nil:
		c.reportMove(*res.Move)
	case res.Selected:
		fmt.Fprintf(c.out, "selected %v moves %v\n", sq, res.Legal)
	default:
		c.reportError(res.Err)
	}
}

func (c *Console) handleMoves() {
	sel, ok := c.ctrl.Selection()
	if !ok {
		fmt.Fprintln(c.out, "moves none")
		return
	}
	fmt.Fprintf(c.out, "moves %v %v\n", sel, c.ctrl.LegalMoves())
}

func (c *Console) handleTally() {
	t := c.ctrl.Tally()
	for _, side := range []board.Color{board.White, board.Black} {
		captured := make([]string, 0, len(t.Captured[side]))
		for _, p := range t.Captured[side] {
			captured = append(captured, p.String())
		}
		fmt.Fprintf(c.out, "tally %v moves %d captured [%s]\n", side, t.Moves[side], strings.Join(captured, " "))
	}
}

func (c *Console) handleStats() {
	if c.store == nil {
		fmt.Fprintln(c.out, "error no storage")
		return
	}
	s, err := c.store.LoadStats()
	if err != nil {
		c.reportError(err)
		return
	}
	fmt.Fprintf(c.out, "stats games %d white %d black %d none %d unfinished %d moves %d captures %d winrate %.0f/%.0f\n",
		s.GamesPlayed, s.WhiteWins, s.BlackWins, s.NoWinner, s.Unfinished, s.TotalMoves, s.TotalCaptures,
		s.WinRate(board.White), s.WinRate(board.Black))
}

func (c *Console) handleNew() {
	c.recordGame()
	c.ctrl.Reset()
	c.started = time.Now()
	c.recorded = false
	fmt.Fprintf(c.out, "newgame %s\n", c.ctrl.GameID())
	c.playAutomated()
}

// reportMove prints a move outcome and, when it was applied, lets automated
// sides answer.
func (c *Console) reportMove(out game.MoveOutcome) {
	if !out.Applied {
		c.reportError(out.Err)
		return
	}
	fmt.Fprintf(c.out, "moved %v\n", out)
	c.afterMove()
	c.playAutomated()
}

func (c *Console) playAutomated() {
	for i := 0; i < autoLimit; i++ {
		out, ok := c.ctrl.PlayAutomated()
		if !ok {
			return
		}
		if !out.Applied {
			if errors.Is(out.Err, game.ErrNoLegalMoves) {
				fmt.Fprintf(c.out, "auto %v none\n", c.ctrl.ActiveColor())
			} else {
				c.reportError(out.Err)
			}
			return
		}
		fmt.Fprintf(c.out, "auto %v\n", out)
		c.afterMove()
	}
}

func (c *Console) afterMove() {
	if !c.ctrl.GameOver() {
		return
	}
	fmt.Fprintf(c.out, "gameover winner %v\n", c.ctrl.Winner())
	c.recordGame()
}

// recordGame stores the current game once. Games without a move are skipped.
func (c *Console) recordGame() {
	if c.store == nil || c.recorded {
		return
	}
	t := c.ctrl.Tally()
	if t.TotalMoves() == 0 {
		return
	}
	rec := storage.GameRecord{
		ID:       c.ctrl.GameID(),
		Mode:     c.mode,
		Finished: c.ctrl.GameOver(),
		Winner:   c.ctrl.Winner(),
		Moves:    t.TotalMoves(),
		Captures: t.TotalCaptures(),
		Duration: time.Since(c.started),
	}
	if err := c.store.RecordGame(rec); err != nil {
		c.log.Warn("record game failed", zap.String("game_id", rec.ID), zap.Error(err))
		return
	}
	c.recorded = true
}

func (c *Console) square(args []string) (board.Square, bool) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "error missing square")
		return board.NoSquare, false
	}
	sq, err := board.ParseSquare(strings.Join(args, ""))
	if err != nil {
		c.reportError(err)
		return board.NoSquare, false
	}
	return sq, true
}

func (c *Console) reportError(err error) {
	if game.IsRejection(err) {
		fmt.Fprintf(c.out, "rejected %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "error %v\n", err)
}

func sideLetter(c board.Color) string {
	if c == board.Black {
		return "b"
	}
	return "w"
}
