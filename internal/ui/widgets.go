package ui

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget colors, on top of the panel palette.
var (
	widgetBg          = color.RGBA{48, 52, 58, 255}
	widgetBorder      = color.RGBA{68, 72, 78, 255}
	widgetFocusBorder = color.RGBA{76, 175, 120, 255}
	widgetHoverBg     = color.RGBA{65, 70, 78, 255}
	radioActive       = color.RGBA{76, 175, 120, 255}
	radioInactive     = color.RGBA{70, 75, 82, 255}
	inputTextColor    = color.RGBA{240, 240, 245, 255}
	inputPlaceholder  = color.RGBA{120, 125, 135, 255}
)

type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// drawLabel draws s with its left edge at x, vertically centred on midY.
func drawLabel(screen *ebiten.Image, s string, x, midY int, c color.Color) {
	face := GetRegularFace()
	if face == nil || s == "" {
		return
	}
	_, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(midY)-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// TextInput is an editable single-line text field.
type TextInput struct {
	rect
	Value       string
	Placeholder string
	MaxLength   int
	focused     bool
	hovered     bool
	cursorBlink int
}

// NewTextInput creates a text input.
func NewTextInput(x, y, w, h int, placeholder string, maxLen int) *TextInput {
	return &TextInput{
		rect:        rect{x, y, w, h},
		Placeholder: placeholder,
		MaxLength:   maxLen,
	}
}

// Update handles focus and typing. Returns true while the field is focused.
func (ti *TextInput) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	ti.hovered = ti.contains(mx, my)
	if input.IsLeftJustPressed() {
		ti.focused = ti.hovered
	}
	if !ti.focused {
		return false
	}

	ti.cursorBlink = (ti.cursorBlink + 1) % 60
	for _, c := range ebiten.AppendInputChars(nil) {
		ti.insert(c)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		ti.backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ti.focused = false
	}
	return true
}

func (ti *TextInput) insert(c rune) {
	if ti.MaxLength > 0 && utf8.RuneCountInString(ti.Value) >= ti.MaxLength {
		return
	}
	ti.Value += string(c)
}

func (ti *TextInput) backspace() {
	if ti.Value == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(ti.Value)
	ti.Value = ti.Value[:len(ti.Value)-size]
}

// Text returns the trimmed value.
func (ti *TextInput) Text() string {
	return strings.TrimSpace(ti.Value)
}

// SetFocused sets whether the input has keyboard focus.
func (ti *TextInput) SetFocused(focused bool) {
	ti.focused = focused
}

// Draw renders the text input.
func (ti *TextInput) Draw(screen *ebiten.Image) {
	bgColor := widgetBg
	if ti.hovered && !ti.focused {
		bgColor = widgetHoverBg
	}
	vector.DrawFilledRect(screen, float32(ti.X), float32(ti.Y), float32(ti.W), float32(ti.H), bgColor, false)

	borderColor := widgetBorder
	if ti.focused {
		borderColor = widgetFocusBorder
	} else if ti.hovered {
		borderColor = accentColor
	}
	vector.StrokeRect(screen, float32(ti.X), float32(ti.Y), float32(ti.W), float32(ti.H), 2, borderColor, false)

	textX := ti.X + 10
	midY := ti.Y + ti.H/2
	cursorX := float32(textX)
	if ti.Value != "" {
		drawLabel(screen, ti.Value, textX, midY, inputTextColor)
		if face := GetRegularFace(); face != nil {
			w, _ := MeasureText(ti.Value, face)
			cursorX += float32(w) + 2
		}
	} else {
		drawLabel(screen, ti.Placeholder, textX, midY, inputPlaceholder)
	}

	if ti.focused && ti.cursorBlink < 30 {
		vector.DrawFilledRect(screen, cursorX, float32(ti.Y+8), 2, float32(ti.H-16), inputTextColor, false)
	}
}

// RadioOption is one choice of a RadioGroup.
type RadioOption struct {
	Label string
	Value string
}

// RadioGroup is a vertical list of mutually exclusive options.
type RadioGroup struct {
	X, Y     int
	Options  []RadioOption
	Selected int
	ItemH    int
	hovered  int
}

// NewRadioGroup creates a radio group with the option whose value is
// selected chosen, or the first option.
func NewRadioGroup(x, y int, options []RadioOption, selected string) *RadioGroup {
	rg := &RadioGroup{X: x, Y: y, Options: options, ItemH: 30, hovered: -1}
	for i, opt := range options {
		if opt.Value == selected {
			rg.Selected = i
		}
	}
	return rg
}

// Value returns the value of the selected option.
func (rg *RadioGroup) Value() string {
	if rg.Selected < 0 || rg.Selected >= len(rg.Options) {
		return ""
	}
	return rg.Options[rg.Selected].Value
}

func (rg *RadioGroup) item(i int) rect {
	return rect{rg.X, rg.Y + i*rg.ItemH, 220, rg.ItemH}
}

// Update handles radio group input.
func (rg *RadioGroup) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	rg.hovered = -1
	for i := range rg.Options {
		if !rg.item(i).contains(mx, my) {
			continue
		}
		rg.hovered = i
		if input.IsLeftJustPressed() {
			rg.Selected = i
			return true
		}
	}
	return false
}

// Draw renders the radio group.
func (rg *RadioGroup) Draw(screen *ebiten.Image) {
	for i, opt := range rg.Options {
		r := rg.item(i)
		selected, hovered := i == rg.Selected, i == rg.hovered

		if hovered && !selected {
			vector.DrawFilledRect(screen, float32(r.X-4), float32(r.Y), float32(r.W), float32(r.H), widgetHoverBg, false)
		}

		cx, cy := float32(r.X+10), float32(r.Y+r.H/2)
		circle := radioInactive
		if selected {
			circle = radioActive
		} else if hovered {
			circle = accentColor
		}
		vector.DrawFilledCircle(screen, cx, cy, 8, circle, false)
		if selected {
			vector.DrawFilledCircle(screen, cx, cy, 4, inputTextColor, false)
		}

		label := textSecondary
		if selected || hovered {
			label = textPrimary
		}
		drawLabel(screen, opt.Label, r.X+30, r.Y+r.H/2, label)
	}
}

// Checkbox is a toggle with a label.
type Checkbox struct {
	X, Y    int
	Label   string
	Checked bool
	hovered bool
}

// NewCheckbox creates a checkbox.
func NewCheckbox(x, y int, label string, checked bool) *Checkbox {
	return &Checkbox{X: x, Y: y, Label: label, Checked: checked}
}

// Update toggles the checkbox on click.
func (cb *Checkbox) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	cb.hovered = rect{cb.X, cb.Y, 220, 24}.contains(mx, my)
	if input.IsLeftJustPressed() && cb.hovered {
		cb.Checked = !cb.Checked
		return true
	}
	return false
}

// Draw renders the checkbox.
func (cb *Checkbox) Draw(screen *ebiten.Image) {
	x, y, size := float32(cb.X), float32(cb.Y), float32(20)

	bgColor := widgetBg
	if cb.hovered {
		bgColor = widgetHoverBg
	}
	vector.DrawFilledRect(screen, x, y, size, size, bgColor, false)

	borderC := widgetBorder
	if cb.hovered || cb.Checked {
		borderC = accentColor
	}
	vector.StrokeRect(screen, x, y, size, size, 2, borderC, false)

	if cb.Checked {
		vector.StrokeLine(screen, x+4, y+10, x+8, y+14, 2, accentColor, false)
		vector.StrokeLine(screen, x+8, y+14, x+16, y+6, 2, accentColor, false)
	}

	label := textSecondary
	if cb.Checked {
		label = textPrimary
	}
	drawLabel(screen, cb.Label, cb.X+30, cb.Y+10, label)
}

// ModalButton is a button for overlays.
type ModalButton struct {
	rect
	Label   string
	Primary bool
	OnClick func()
	hovered bool
	pressed bool
}

// NewModalButton creates a modal button.
func NewModalButton(x, y, w, h int, label string, primary bool, onClick func()) *ModalButton {
	return &ModalButton{rect: rect{x, y, w, h}, Label: label, Primary: primary, OnClick: onClick}
}

// IsHovered returns true if the button is hovered.
func (mb *ModalButton) IsHovered() bool {
	return mb.hovered
}

// Update fires OnClick when the button is clicked.
func (mb *ModalButton) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	mb.hovered = mb.contains(mx, my)
	mb.pressed = input.IsLeftPressed() && mb.hovered
	if input.IsLeftJustPressed() && mb.hovered && mb.OnClick != nil {
		mb.OnClick()
		return true
	}
	return false
}

// Draw renders the button.
func (mb *ModalButton) Draw(screen *ebiten.Image) {
	bgColor, borderC := buttonBg, widgetBorder
	if mb.Primary {
		bgColor, borderC = accentColor, accentPressed
	}
	switch {
	case mb.pressed && mb.Primary:
		bgColor = accentPressed
	case mb.pressed:
		bgColor = buttonPressedBg
	case mb.hovered && mb.Primary:
		bgColor = accentHover
	case mb.hovered:
		bgColor, borderC = buttonHoverBg, accentColor
	}

	vector.DrawFilledRect(screen, float32(mb.X), float32(mb.Y), float32(mb.W), float32(mb.H), bgColor, false)
	vector.StrokeRect(screen, float32(mb.X), float32(mb.Y), float32(mb.W), float32(mb.H), 1, borderC, false)

	face := GetRegularFace()
	if face == nil {
		return
	}
	w, _ := MeasureText(mb.Label, face)
	drawLabel(screen, mb.Label, mb.X+mb.W/2-int(w/2), mb.Y+mb.H/2, textPrimary)
}

// TabBar is a row of equal-width tabs with exactly one active.
type TabBar struct {
	rect
	Labels   []string
	Active   func() int
	OnSelect func(int)
	hovered  int
	pressed  bool
}

// NewTabBar creates a tab bar spanning w pixels.
func NewTabBar(x, y, w, h int, labels []string, active func() int, onSelect func(int)) *TabBar {
	return &TabBar{rect: rect{x, y, w, h}, Labels: labels, Active: active, OnSelect: onSelect, hovered: -1}
}

func (tb *TabBar) tab(i int) rect {
	w := tb.W / len(tb.Labels)
	return rect{tb.X + i*w, tb.Y, w, tb.H}
}

// Update selects the clicked tab.
func (tb *TabBar) Update(input *InputHandler) bool {
	mx, my := input.MousePosition()
	tb.hovered = -1
	for i := range tb.Labels {
		if tb.tab(i).contains(mx, my) {
			tb.hovered = i
		}
	}
	tb.pressed = tb.hovered >= 0 && input.IsLeftPressed()
	if tb.hovered >= 0 && input.IsLeftJustPressed() {
		tb.OnSelect(tb.hovered)
		return true
	}
	return false
}

// IsHovered returns true if any tab is hovered.
func (tb *TabBar) IsHovered() bool {
	return tb.hovered >= 0
}

// Draw renders the tabs.
func (tb *TabBar) Draw(screen *ebiten.Image) {
	active := tb.Active()
	face := GetRegularFace()
	for i, label := range tb.Labels {
		r := tb.tab(i)
		bg, border, fg := tabInactiveBg, buttonBorder, textSecondary
		switch {
		case i == active:
			bg, border, fg = tabActiveBg, tabActiveBg, textPrimary
		case i == tb.hovered && tb.pressed:
			bg = buttonPressedBg
		case i == tb.hovered:
			bg, border = tabHoverBg, accentColor
		}
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bg, false)
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, border, false)
		if face != nil {
			w, _ := MeasureText(label, face)
			drawLabel(screen, label, r.X+r.W/2-int(w/2), r.Y+r.H/2, fg)
		}
	}
}
