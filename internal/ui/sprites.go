// Package ui implements the Ebitengine window: it renders controller
// snapshots and turns mouse clicks into squares for the controller.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"

	"github.com/hailam/chessturn/internal/board"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

// SpriteManager rasterises the embedded piece icons once.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	highlighted map[board.Piece]*ebiten.Image
	size        int
	renderScale float64 // icons are rendered larger and scaled down
}

// NewSpriteManager creates a sprite manager with pieces of the given size.
// Icons that fail to load are logged and left undrawn.
func NewSpriteManager(size int, log *zap.Logger) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		highlighted: make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
	}
	for _, err := range sm.loadPieces() {
		log.Warn("piece sprite unavailable", zap.Error(err))
	}
	return sm
}

// GetPiece returns the sprite for a piece.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	return sm.pieces[p]
}

// pieceFile returns the asset path of p, e.g. assets/pieces/wN.svg.
func pieceFile(p board.Piece) string {
	side := "w"
	if p.Color() == board.Black {
		side = "b"
	}
	return fmt.Sprintf("assets/pieces/%s%s.svg", side, board.NewPiece(p.Type(), board.White))
}

func (sm *SpriteManager) loadPieces() []error {
	renderSize := int(float64(sm.size) * sm.renderScale)

	var errs []error
	for p := board.WhitePawn; p < board.NoPiece; p++ {
		path := pieceFile(p)
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			continue
		}

		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", path, err))
			continue
		}
		icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

		rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
		scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(renderSize, renderSize, scanner)
		icon.Draw(raster, 1.0)

		sm.pieces[p] = ebiten.NewImageFromImage(rgba)
	}
	return errs
}

// DrawPieceAt draws a piece at the given pixel coordinates.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y int) {
	sm.draw(screen, sm.GetPiece(p), x, y)
}

// DrawHighlightedPieceAt draws a brightened piece, used for the selection.
func (sm *SpriteManager) DrawHighlightedPieceAt(screen *ebiten.Image, p board.Piece, x, y int) {
	sm.draw(screen, sm.getHighlightedPiece(p), x, y)
}

func (sm *SpriteManager) draw(screen, sprite *ebiten.Image, x, y int) {
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := 1.0 / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

func (sm *SpriteManager) getHighlightedPiece(p board.Piece) *ebiten.Image {
	if img, ok := sm.highlighted[p]; ok {
		return img
	}
	base := sm.GetPiece(p)
	if base == nil {
		return nil
	}

	bounds := base.Bounds()
	img := ebiten.NewImage(bounds.Dx(), bounds.Dy())
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.Scale(1.2, 1.2, 1.0, 1.0)
	img.DrawImage(base, op)

	sm.highlighted[p] = img
	return img
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
