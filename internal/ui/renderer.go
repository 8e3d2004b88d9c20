package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/hailam/chessturn/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	CaptureColor   color.RGBA
	LastMoveColor  color.RGBA
	Background     color.RGBA
	CoordLight     color.RGBA
	CoordDark      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255},
		DarkSquare:     color.RGBA{181, 136, 99, 255},
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		CaptureColor:   color.RGBA{200, 90, 80, 170},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		Background:     color.RGBA{40, 44, 52, 255},
		CoordLight:     color.RGBA{181, 136, 99, 255},
		CoordDark:      color.RGBA{240, 217, 181, 255},
	}
}

// geometry maps squares to pixels. Rank 0 is the top row and file 0 the
// left column; the board is never flipped.
type geometry struct {
	tile int
}

func (g geometry) boardSize() int {
	return g.tile * 8
}

func (g geometry) squareToScreen(sq board.Square) (int, int) {
	return sq.File * g.tile, sq.Rank * g.tile
}

func (g geometry) screenToSquare(x, y int) (board.Square, bool) {
	if x < 0 || y < 0 || x >= g.boardSize() || y >= g.boardSize() {
		return board.NoSquare, false
	}
	return board.NewSquare(x/g.tile, y/g.tile), true
}

// Renderer draws the board, highlights and pieces.
type Renderer struct {
	geometry
	sprites *SpriteManager
	theme   *Theme
}

// NewRenderer creates a renderer for squares of tile pixels.
func NewRenderer(tile int, log *zap.Logger) *Renderer {
	return &Renderer{
		geometry: geometry{tile: tile},
		sprites:  NewSpriteManager(tile, log),
		theme:    DefaultTheme(),
	}
}

// DrawBoard draws the squares and their coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	size := float32(r.tile)
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			c := r.theme.LightSquare
			if (rank+file)%2 == 1 {
				c = r.theme.DarkSquare
			}
			vector.DrawFilledRect(screen, float32(file*r.tile), float32(rank*r.tile), size, size, c, false)
		}
	}
	r.drawCoordinates(screen)
}

// drawCoordinates labels the left column with ranks and the bottom row
// with files.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(float64(r.tile) / 6)
	if face == nil {
		return
	}
	for i := 0; i < 8; i++ {
		rankLabel := board.NewSquare(0, i).String()[1:]
		r.drawLabel(screen, rankLabel, 3, i*r.tile+2, (i%2 == 1), face)

		fileLabel := board.NewSquare(i, 7).String()[:1]
		w, h := MeasureText(fileLabel, face)
		r.drawLabel(screen, fileLabel, (i+1)*r.tile-int(w)-3, r.boardSize()-int(h)-2, (i+7)%2 == 1, face)
	}
}

func (r *Renderer) drawLabel(screen *ebiten.Image, s string, x, y int, onDark bool, face *text.GoTextFace) {
	c := r.theme.CoordLight
	if onDark {
		c = r.theme.CoordDark
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// DrawHighlights draws the last move, the selected square and markers on
// each legal destination. Destinations holding a piece get a ring.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, b board.Board, selected board.Square, legal board.SquareSet, lastFrom, lastTo board.Square) {
	if lastFrom.IsValid() && lastTo.IsValid() {
		r.highlightSquare(screen, lastFrom, r.theme.LastMoveColor)
		r.highlightSquare(screen, lastTo, r.theme.LastMoveColor)
	}
	if selected.IsValid() {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}
	for _, sq := range legal.Squares() {
		r.drawLegalMoveIndicator(screen, sq, !b.IsEmpty(sq))
	}
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	x, y := r.squareToScreen(sq)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(r.tile), float32(r.tile), c, false)
}

func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square, capture bool) {
	x, y := r.squareToScreen(sq)
	cx := float32(x) + float32(r.tile)/2
	cy := float32(y) + float32(r.tile)/2

	if capture {
		vector.StrokeCircle(screen, cx, cy, float32(r.tile)*0.45, float32(r.tile)*0.06, r.theme.CaptureColor, true)
		return
	}
	vector.DrawFilledCircle(screen, cx, cy, float32(r.tile)*0.15, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece of b. The dragged piece is skipped and the
// selected one is brightened.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b board.Board, selected, dragSquare board.Square, anims *AnimationManager) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			if sq == dragSquare {
				continue
			}
			p := b.At(sq)
			if p == board.NoPiece {
				continue
			}

			x, y := r.squareToScreen(sq)
			if anims != nil {
				dx, dy := anims.GetShakeOffset(sq)
				x += int(dx)
				y += int(dy)
			}

			if sq == selected {
				r.sprites.DrawHighlightedPieceAt(screen, p, x, y)
				continue
			}
			r.sprites.DrawPieceAt(screen, p, x, y)
		}
	}
}

// DrawDraggedPiece draws p centred on the cursor.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, p board.Piece, mouseX, mouseY int) {
	if p == board.NoPiece {
		return
	}
	half := r.tile / 2
	r.sprites.DrawPieceAt(screen, p, mouseX-half, mouseY-half)
}

// ScreenToSquare converts layout coordinates to a square. ok is false
// outside the board.
func (r *Renderer) ScreenToSquare(x, y int) (board.Square, bool) {
	return r.screenToSquare(x, y)
}

// SquareToScreen returns the top-left pixel of sq.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	return r.squareToScreen(sq)
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return r.boardSize()
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.tile
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
