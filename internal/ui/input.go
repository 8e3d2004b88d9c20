package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler snapshots the left mouse button and cursor once per tick so
// every component sees the same edges.
type InputHandler struct {
	x, y     int
	down     bool
	pressed  bool
	released bool
}

func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update samples the mouse. Call it first in Game.Update.
func (ih *InputHandler) Update() {
	ih.x, ih.y = ebiten.CursorPosition()
	ih.down = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	ih.pressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.released = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

// MousePosition returns the cursor in layout coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.x, ih.y
}

func (ih *InputHandler) IsLeftJustPressed() bool  { return ih.pressed }
func (ih *InputHandler) IsLeftJustReleased() bool { return ih.released }
func (ih *InputHandler) IsLeftPressed() bool      { return ih.down }

// IsKeyJustPressed reports a key pressed during this tick.
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
