package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessturn/internal/board"
	"github.com/hailam/chessturn/internal/config"
)

// Panel dimensions
const (
	PanelWidth     = 320
	PanelPadding   = 20
	SectionSpacing = 28
	ButtonHeight   = 40
	TabHeight      = 34
	CollapsedWidth = 20
	collapseW      = 16
	collapseH      = 48
	sectionLabelH  = 20
	statusBarH     = 70
	moveRowH       = 22
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	tabActiveBg     = color.RGBA{76, 132, 96, 255}
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}
	tabHoverBg      = color.RGBA{65, 70, 78, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusThinking  = color.RGBA{100, 180, 255, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// Panel is the side panel: new game, mode, the computer's side, tallies,
// the move list and a status bar.
type Panel struct {
	game      *Game
	collapsed bool
	x, height int

	collapse *ModalButton
	newGame  *ModalButton
	modeTabs *TabBar
	sideTabs *TabBar

	scrollY    int
	maxScrollY int
}

// NewPanel creates a panel to the right of a board of boardSize pixels.
func NewPanel(g *Game, boardSize int) *Panel {
	p := &Panel{game: g, x: boardSize, height: boardSize}
	p.layout()
	return p
}

func (p *Panel) layout() {
	arrow := "‹"
	if p.collapsed {
		arrow = "›"
	}
	p.collapse = NewModalButton(p.x+2, (p.height-collapseH)/2, collapseW, collapseH, arrow, false, p.toggleCollapse)

	x := p.x + PanelPadding
	w := PanelWidth - PanelPadding*2
	y := PanelPadding + 8
	p.newGame = NewModalButton(x, y, w, ButtonHeight, "New Game", true, p.game.NewGameAction)

	y += ButtonHeight + SectionSpacing - 8 + sectionLabelH
	p.modeTabs = NewTabBar(x, y, w, TabHeight, []string{"vs Human", "vs Computer"},
		func() int {
			if p.game.Mode() == config.ModeHumanVsComputer {
				return 1
			}
			return 0
		},
		func(i int) {
			p.game.SetMode([]string{config.ModeHumanVsHuman, config.ModeHumanVsComputer}[i])
		})

	y += TabHeight + SectionSpacing + sectionLabelH - 8
	p.sideTabs = NewTabBar(x, y, w, TabHeight-2, []string{"White", "Black"},
		func() int { return int(p.game.AutomatedColor()) },
		func(i int) { p.game.SetAutomatedColor(board.Color(i)) })
}

func (p *Panel) vsComputer() bool {
	return p.game.Mode() == config.ModeHumanVsComputer
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	if p.collapse.Update(input) {
		return true
	}
	if p.collapsed {
		return false
	}

	mx, my := input.MousePosition()
	if _, wheel := ebiten.Wheel(); wheel != 0 && mx >= p.x && my >= p.historyY() && my < p.height-statusBarH {
		p.scrollY = max(0, min(p.maxScrollY, p.scrollY-int(wheel*30)))
	}

	if p.newGame.Update(input) || p.modeTabs.Update(input) {
		return true
	}
	return p.vsComputer() && p.sideTabs.Update(input)
}

// AnyButtonHovered returns true if any control in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	if p.collapse.IsHovered() {
		return true
	}
	if p.collapsed {
		return false
	}
	return p.newGame.IsHovered() || p.modeTabs.IsHovered() || (p.vsComputer() && p.sideTabs.IsHovered())
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(p.x), 0, float32(p.Width()), float32(p.height), panelBg, false)
	p.collapse.Draw(screen)
	if p.collapsed {
		return
	}

	x := p.x + PanelPadding
	p.newGame.Draw(screen)

	p.drawSectionLabel(screen, "Game Mode", x, p.modeTabs.Y-sectionLabelH)
	p.modeTabs.Draw(screen)
	if p.vsComputer() {
		p.drawSectionLabel(screen, "Computer Plays", x, p.sideTabs.Y-sectionLabelH)
		p.sideTabs.Draw(screen)
	}

	tallyY := p.tallyY()
	p.drawSectionLabel(screen, "Tally", x, tallyY)
	p.drawTally(screen, tallyY+sectionLabelH+4)

	historyY := p.historyY()
	p.drawSectionLabel(screen, "Moves", x, historyY)
	p.drawMoveHistory(screen, historyY+sectionLabelH+4)

	p.drawStatusBar(screen)
}

func (p *Panel) tallyY() int {
	last := p.modeTabs.rect
	if p.vsComputer() {
		last = p.sideTabs.rect
	}
	return last.Y + last.H + SectionSpacing - 4
}

func (p *Panel) historyY() int {
	return p.tallyY() + sectionLabelH + 2*moveRowH + SectionSpacing
}

func (p *Panel) drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	face := GetBoldFace()
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(textMuted)
	text.Draw(screen, label, face, op)
}

func (p *Panel) drawTally(screen *ebiten.Image, y int) {
	x := p.x + PanelPadding
	t := p.game.Tally()
	for _, side := range []board.Color{board.White, board.Black} {
		mid := y + int(side)*moveRowH + moveRowH/2
		drawLabel(screen, sideName(side), x, mid, textPrimary)
		drawLabel(screen, fmt.Sprintf("%d moves", t.Moves[side]), x+60, mid, textSecondary)
		drawLabel(screen, capturedText(t.Captured[side]), x+140, mid, textPrimary)
	}
}

// capturedText lists captured pieces by their letters, e.g. "p p n".
func capturedText(pieces []board.Piece) string {
	if len(pieces) == 0 {
		return "-"
	}
	letters := make([]string, len(pieces))
	for i, pc := range pieces {
		letters[i] = pc.String()
	}
	return strings.Join(letters, " ")
}

// drawMoveHistory lists moves two per row, White then Black, scrolled by
// the mouse wheel.
func (p *Panel) drawMoveHistory(screen *ebiten.Image, top int) {
	moves := p.game.History()
	x := p.x + PanelPadding
	if len(moves) == 0 {
		drawLabel(screen, "No moves yet", x, top+moveRowH/2, textMuted)
		return
	}

	bottom := p.height - statusBarH - 10
	visible := bottom - top
	rows := (len(moves) + 1) / 2
	p.maxScrollY = max(0, rows*moveRowH-visible)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	for row := (p.scrollY + moveRowH - 1) / moveRowH; row < rows; row++ {
		y := top + row*moveRowH - p.scrollY
		if y+moveRowH > bottom {
			break
		}
		if row%2 == 1 {
			vector.DrawFilledRect(screen, float32(x-4), float32(y), float32(PanelWidth-PanelPadding*2+8), moveRowH, moveRowAlt, false)
		}
		mid := y + moveRowH/2
		drawLabel(screen, fmt.Sprintf("%d.", row+1), x, mid, textMuted)
		drawLabel(screen, moves[2*row], x+36, mid, textPrimary)
		if 2*row+1 < len(moves) {
			drawLabel(screen, moves[2*row+1], x+130, mid, textPrimary)
		}
	}

	if p.maxScrollY > 0 {
		barH := max(float32(visible)*float32(visible)/float32(rows*moveRowH), 20)
		barY := float32(top) + float32(p.scrollY)/float32(p.maxScrollY)*(float32(visible)-barH)
		vector.DrawFilledRect(screen, float32(p.x+PanelWidth-8), barY, 4, barH, textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	y := p.height - statusBarH
	x := p.x + PanelPadding
	vector.DrawFilledRect(screen, float32(x), float32(y-10), float32(PanelWidth-PanelPadding*2), 1, dividerColor, false)

	name := p.game.Username()
	if r := []rune(name); len(r) > 12 {
		name = string(r[:12]) + "..."
	}
	drawLabel(screen, name, x, y+10, textPrimary)

	if p.game.SoundEnabled() {
		drawLabel(screen, "Sound on", x+150, y+10, accentColor)
	} else {
		drawLabel(screen, "Sound off", x+150, y+10, textMuted)
	}

	status, thinking := p.game.Status()
	c := textPrimary
	switch {
	case p.game.GameOver():
		c = statusGameOver
	case thinking:
		c = statusThinking
	}
	drawLabel(screen, status, x, y+36, c)
}

// Width returns the horizontal space the panel occupies.
func (p *Panel) Width() int {
	if p.collapsed {
		return CollapsedWidth
	}
	return PanelWidth
}

func (p *Panel) toggleCollapse() {
	p.collapsed = !p.collapsed
	p.layout()
	ebiten.SetWindowSize(p.x+p.Width(), p.height)
}
