package ui

import (
	"errors"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessturn/internal/board"
	"github.com/hailam/chessturn/internal/game"
)

// ToastType selects a toast's colors.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastSuccess
)

var toastStyles = map[ToastType]struct{ bg, fg color.RGBA }{
	ToastInfo:    {color.RGBA{50, 100, 150, 220}, color.RGBA{255, 255, 255, 255}},
	ToastWarning: {color.RGBA{180, 140, 20, 220}, color.RGBA{40, 30, 0, 255}},
	ToastSuccess: {color.RGBA{50, 150, 50, 220}, color.RGBA{255, 255, 255, 255}},
}

const (
	toastFade    = 200 * time.Millisecond
	toastPadding = 12.0
	toastMax     = 3
)

type toast struct {
	message string
	kind    ToastType
	shown   time.Time
	ttl     time.Duration
}

// ToastManager shows short messages stacked at the top of the board.
type ToastManager struct {
	toasts  []toast
	centerX float64
}

// NewToastManager creates a toast manager drawing centred on centerX.
func NewToastManager(centerX float64) *ToastManager {
	return &ToastManager{centerX: centerX}
}

// Show adds a message, dropping the oldest beyond three.
func (tm *ToastManager) Show(message string, kind ToastType, ttl time.Duration) {
	tm.toasts = append(tm.toasts, toast{message: message, kind: kind, shown: time.Now(), ttl: ttl})
	if n := len(tm.toasts); n > toastMax {
		tm.toasts = tm.toasts[n-toastMax:]
	}
}

// Update drops expired toasts.
func (tm *ToastManager) Update() {
	now := time.Now()
	live := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.shown) < t.ttl {
			live = append(live, t)
		}
	}
	tm.toasts = live
}

// toastAlpha fades a toast in and out over toastFade.
func toastAlpha(elapsed, ttl time.Duration) float64 {
	if elapsed < 0 || elapsed >= ttl {
		return 0
	}
	a := 1.0
	if elapsed < toastFade {
		a = float64(elapsed) / float64(toastFade)
	}
	if left := ttl - elapsed; left < toastFade {
		a = math.Min(a, float64(left)/float64(toastFade))
	}
	return a
}

func fade(c color.RGBA, a float64) color.RGBA {
	c.A = uint8(float64(c.A) * a)
	return c
}

// Draw renders the live toasts top to bottom.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}

	now := time.Now()
	y := 50.0
	for _, t := range tm.toasts {
		a := toastAlpha(now.Sub(t.shown), t.ttl)
		style := toastStyles[t.kind]

		w, h := MeasureText(t.message, face)
		boxW, boxH := w+toastPadding*2, h+toastPadding*2
		x := tm.centerX - boxW/2
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), fade(style.bg, a), false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+toastPadding, y+toastPadding)
		op.ColorScale.ScaleWithColor(fade(style.fg, a))
		text.Draw(screen, t.message, face, op)

		y += boxH + 8
	}
}

// ShakeAnimation represents a piece shake effect.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation represents a square flash effect.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager manages visual animations.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	if !sq.IsValid() {
		return
	}
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 8.0,
	})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := time.Now()

	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// GetShakeOffset returns the current shake offset for a square.
func (am *AnimationManager) GetShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		return shakeOffset(s.Intensity, progress), 0
	}
	return 0, 0
}

// shakeOffset is a damped sine over progress in [0,1).
func shakeOffset(intensity, progress float64) float64 {
	if progress < 0 || progress >= 1.0 {
		return 0
	}
	const decay, freq = 5.0, 40.0
	return intensity * math.Exp(-decay*progress) * math.Sin(freq*progress)
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, renderer *Renderer) {
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}
		alpha := 1.0 - progress
		c := color.RGBA{f.Color.R, f.Color.G, f.Color.B, uint8(float64(f.Color.A) * alpha)}

		x, y := renderer.SquareToScreen(f.Square)
		size := float32(renderer.SquareSize())
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
	}
}

// FeedbackManager coordinates toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a feedback manager for a board of boardSize
// pixels.
func NewFeedbackManager(boardSize int, sound bool) *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(float64(boardSize) / 2),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(sound),
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, renderer *Renderer) {
	fm.animations.DrawFlashes(screen, renderer)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Audio returns the audio manager.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// rejectionMessage describes why the controller refused an input.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrIllegalMove):
		return "That piece cannot move there"
	case errors.Is(err, game.ErrIllegalSelection):
		return "Not your piece"
	case errors.Is(err, game.ErrGameOver):
		return "The game is over"
	case errors.Is(err, game.ErrNoLegalMoves):
		return "No legal moves"
	}
	return "Invalid move"
}

// OnRejected shakes the piece on from and flashes to.
func (fm *FeedbackManager) OnRejected(from, to board.Square, err error) {
	fm.toasts.Show(rejectionMessage(err), ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	if to != from {
		fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
	}
	fm.audio.Play(SoundInvalid)
}

// OnMove plays the move or capture sound.
func (fm *FeedbackManager) OnMove(capture bool) {
	if capture {
		fm.audio.Play(SoundCapture)
		return
	}
	fm.audio.Play(SoundMove)
}

// OnStalled reports a side that cannot move.
func (fm *FeedbackManager) OnStalled(side board.Color) {
	fm.toasts.Show(sideName(side)+" has no legal moves", ToastInfo, 4*time.Second)
}

// OnGameOver announces the result.
func (fm *FeedbackManager) OnGameOver(winner board.Color) {
	fm.toasts.Show(resultText(winner), ToastSuccess, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

// resultText is the game-over announcement for winner.
func resultText(winner board.Color) string {
	if winner == board.NoColor {
		return "Game over"
	}
	return "Game over - " + sideName(winner) + " wins!"
}

func sideName(c board.Color) string {
	switch c {
	case board.White:
		return "White"
	case board.Black:
		return "Black"
	}
	return "Nobody"
}
