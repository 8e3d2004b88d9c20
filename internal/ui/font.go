package ui

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	bodySize  = 14.0
	labelSize = 16.0
)

// fonts holds the Go font sources and the faces built from them. All
// drawing happens on the ebiten goroutine, so the cache needs no lock.
var fonts struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	sized   map[float64]*text.GoTextFace
	body    *text.GoTextFace
	label   *text.GoTextFace
}

// fontErr is reported by NewGame; text drawing is skipped without faces.
var fontErr = loadFonts()

func loadFonts() error {
	var err error
	if fonts.regular, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("load regular font: %w", err)
	}
	if fonts.bold, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		return fmt.Errorf("load bold font: %w", err)
	}
	fonts.sized = make(map[float64]*text.GoTextFace)
	fonts.body = &text.GoTextFace{Source: fonts.regular, Size: bodySize}
	fonts.label = &text.GoTextFace{Source: fonts.bold, Size: labelSize}
	return nil
}

// GetRegularFace returns the body text face, or nil if fonts failed to load.
func GetRegularFace() *text.GoTextFace {
	return fonts.body
}

// GetBoldFace returns the bold label face.
func GetBoldFace() *text.GoTextFace {
	return fonts.label
}

// GetFaceWithSize returns a regular face of the given size.
func GetFaceWithSize(size float64) *text.GoTextFace {
	if fonts.regular == nil {
		return nil
	}
	if f, ok := fonts.sized[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: fonts.regular, Size: size}
	fonts.sized[size] = f
	return f
}

// MeasureText returns the advance and line height of s.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
