package game

import (
	"fmt"

	"github.com/hailam/chessturn/internal/board"
)

// GameOverHook is queried with a snapshot of the board after every applied
// move. Once it reports true the controller stops accepting input.
type GameOverHook interface {
	IsGameOver(b board.Board) bool
}

// WinnerReporter may be implemented by a GameOverHook to name the winner.
type WinnerReporter interface {
	Winner(b board.Board) board.Color
}

// GameOverFunc adapts a plain function to GameOverHook.
type GameOverFunc func(b board.Board) bool

// IsGameOver calls f(b).
func (f GameOverFunc) IsGameOver(b board.Board) bool {
	return f(b)
}

// NeverOver never ends the game.
type NeverOver struct{}

// IsGameOver always returns false.
func (NeverOver) IsGameOver(board.Board) bool { return false }

// KingCaptured ends the game once either king has left the board.
type KingCaptured struct{}

// IsGameOver returns true when a king is missing.
func (KingCaptured) IsGameOver(b board.Board) bool {
	_, white := b.Find(board.WhiteKing)
	_, black := b.Find(board.BlackKing)
	return !white || !black
}

// Winner returns the side that still has its king, or NoColor.
func (KingCaptured) Winner(b board.Board) board.Color {
	_, white := b.Find(board.WhiteKing)
	_, black := b.Find(board.BlackKing)
	switch {
	case white && !black:
		return board.White
	case black && !white:
		return board.Black
	}
	return board.NoColor
}

// Game-over rule names accepted by HookByName.
const (
	RuleNever       = "never"
	RuleKingCapture = "king-capture"
)

// HookByName returns the built-in hook for a configured rule name.
func HookByName(name string) (GameOverHook, error) {
	switch name {
	case "", RuleNever:
		return NeverOver{}, nil
	case RuleKingCapture:
		return KingCaptured{}, nil
	}
	return nil, fmt.Errorf("unknown game-over rule %q", name)
}
