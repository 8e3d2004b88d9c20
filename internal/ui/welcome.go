package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessturn/internal/config"
)

// Welcome screen dimensions
const (
	WelcomeWidth  = 400
	WelcomeHeight = 430
	WelcomePadX   = 32
	WelcomePadY   = 24
)

var (
	modalOverlay = color.RGBA{0, 0, 0, 160}
	modalBg      = color.RGBA{38, 40, 45, 250}
	modalBorder  = color.RGBA{70, 75, 82, 255}
)

// WelcomeChoice is what the player picked on the welcome screen.
type WelcomeChoice struct {
	Name  string
	Mode  string
	Sound bool
}

// WelcomeScreen is shown on first launch.
type WelcomeScreen struct {
	visible bool
	x, y    int
	screenW int
	screenH int

	nameInput *TextInput
	modeRadio *RadioGroup
	soundBox  *Checkbox
	startBtn  *ModalButton

	onComplete func(WelcomeChoice)
}

// NewWelcomeScreen creates a welcome screen centred in a screenW x screenH area.
func NewWelcomeScreen(screenW, screenH int) *WelcomeScreen {
	ws := &WelcomeScreen{
		screenW: screenW,
		screenH: screenH,
		x:       max(0, (screenW-WelcomeWidth)/2),
		y:       max(0, (screenH-WelcomeHeight)/2),
	}

	contentX := ws.x + WelcomePadX
	contentW := WelcomeWidth - WelcomePadX*2

	inputY := ws.y + 140
	ws.nameInput = NewTextInput(contentX, inputY, contentW, 40, "Enter your name", 20)

	radioY := inputY + 80
	ws.modeRadio = NewRadioGroup(contentX, radioY, []RadioOption{
		{Label: "Two players", Value: config.ModeHumanVsHuman},
		{Label: "Play the computer", Value: config.ModeHumanVsComputer},
	}, config.ModeHumanVsHuman)

	ws.soundBox = NewCheckbox(contentX, radioY+2*ws.modeRadio.ItemH+12, "Sound effects", true)

	btnW, btnH := 160, 44
	ws.startBtn = NewModalButton(ws.x+(WelcomeWidth-btnW)/2, ws.y+WelcomeHeight-WelcomePadY-btnH,
		btnW, btnH, "Start Playing", true, ws.handleStart)
	return ws
}

// Show displays the welcome screen with mode preselected.
func (ws *WelcomeScreen) Show(mode string, onComplete func(WelcomeChoice)) {
	ws.visible = true
	ws.onComplete = onComplete
	ws.nameInput.Value = ""
	ws.nameInput.SetFocused(true)
	ws.modeRadio.Selected = 0
	if mode == config.ModeHumanVsComputer {
		ws.modeRadio.Selected = 1
	}
}

// Hide closes the welcome screen.
func (ws *WelcomeScreen) Hide() {
	ws.visible = false
	ws.nameInput.SetFocused(false)
}

// IsVisible returns true if the screen is visible.
func (ws *WelcomeScreen) IsVisible() bool {
	return ws.visible
}

func (ws *WelcomeScreen) handleStart() {
	choice := WelcomeChoice{
		Name:  ws.nameInput.Text(),
		Mode:  ws.modeRadio.Value(),
		Sound: ws.soundBox.Checked,
	}
	if choice.Name == "" {
		choice.Name = "Player"
	}
	ws.Hide()
	if ws.onComplete != nil {
		ws.onComplete(choice)
	}
}

// Update handles input. The welcome screen consumes all input while visible.
func (ws *WelcomeScreen) Update(input *InputHandler) bool {
	if !ws.visible {
		return false
	}
	if IsKeyJustPressed(ebiten.KeyEnter) {
		ws.handleStart()
		return true
	}
	ws.nameInput.Update(input)
	ws.modeRadio.Update(input)
	ws.soundBox.Update(input)
	ws.startBtn.Update(input)
	return true
}

// AnyButtonHovered returns true if any control is hovered.
func (ws *WelcomeScreen) AnyButtonHovered() bool {
	if !ws.visible {
		return false
	}
	return ws.startBtn.IsHovered() || ws.modeRadio.hovered >= 0 || ws.soundBox.hovered
}

// Draw renders the welcome screen over a dimmed background.
func (ws *WelcomeScreen) Draw(screen *ebiten.Image) {
	if !ws.visible {
		return
	}

	vector.DrawFilledRect(screen, 0, 0, float32(ws.screenW), float32(ws.screenH), modalOverlay, false)
	vector.DrawFilledRect(screen, float32(ws.x), float32(ws.y), WelcomeWidth, WelcomeHeight, modalBg, false)
	vector.StrokeRect(screen, float32(ws.x), float32(ws.y), WelcomeWidth, WelcomeHeight, 2, modalBorder, false)

	ws.drawKingIcon(screen)
	ws.drawCentered(screen, "CHESSTURN", GetFaceWithSize(24), ws.y+64, textPrimary)
	ws.drawCentered(screen, "Welcome! Set up your preferences.", GetRegularFace(), ws.y+96, textSecondary)

	contentX := ws.x + WelcomePadX
	drawLabel(screen, "Your Name", contentX, ws.nameInput.Y-12, textSecondary)
	drawLabel(screen, "Game Mode", contentX, ws.modeRadio.Y-12, textSecondary)

	ws.nameInput.Draw(screen)
	ws.modeRadio.Draw(screen)
	ws.soundBox.Draw(screen)
	ws.startBtn.Draw(screen)
}

func (ws *WelcomeScreen) drawKingIcon(screen *ebiten.Image) {
	cx := float32(ws.x + WelcomeWidth/2)
	y := float32(ws.y + 28)

	vector.DrawFilledCircle(screen, cx, y+8, 6, accentColor, false)
	vector.DrawFilledRect(screen, cx-8, y+10, 16, 14, accentColor, false)
	vector.DrawFilledRect(screen, cx-1, y-2, 3, 10, accentColor, false)
	vector.DrawFilledRect(screen, cx-4, y+2, 9, 3, accentColor, false)
}

func (ws *WelcomeScreen) drawCentered(screen *ebiten.Image, s string, face *text.GoTextFace, y int, c color.Color) {
	if face == nil {
		return
	}
	w, _ := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(ws.x)+WelcomeWidth/2-w/2, float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
