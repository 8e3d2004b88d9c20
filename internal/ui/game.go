package ui

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/hailam/chessturn/internal/board"
	"github.com/hailam/chessturn/internal/config"
	"github.com/hailam/chessturn/internal/game"
	"github.com/hailam/chessturn/internal/storage"
)

// DefaultTileSize is the square size in pixels when Options leaves it unset.
const DefaultTileSize = 80

// autoDelay is how long the computer waits before answering, so its move
// is visible as a separate step.
const autoDelay = 300 * time.Millisecond

// Options configures a Game.
type Options struct {
	Controller *game.Controller
	// Storage is optional. Without it the welcome screen is skipped and
	// nothing is persisted.
	Storage *storage.Storage
	Prefs   *storage.Preferences

	Mode      string
	Automated board.Color
	// Computer builds the automated player. Nil means an unseeded Random.
	Computer func() game.Player

	TileSize int
	Logger   *zap.Logger
}

// Game implements ebiten.Game on top of a game.Controller.
type Game struct {
	ctrl  *game.Controller
	store *storage.Storage
	prefs *storage.Preferences
	log   *zap.Logger

	renderer *Renderer
	panel    *Panel
	feedback *FeedbackManager
	welcome  *WelcomeScreen
	input    *InputHandler

	mode      string
	automated board.Color
	computer  func() game.Player

	history          []string
	lastFrom, lastTo board.Square

	dragging   bool
	dragSquare board.Square
	dragPiece  board.Piece

	autoAt   time.Time
	stalled  bool
	started  time.Time
	recorded bool
}

// NewGame creates the window game. The controller's players are replaced
// according to Mode and Automated.
func NewGame(opts Options) *Game {
	if opts.TileSize <= 0 {
		opts.TileSize = DefaultTileSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Controller == nil {
		opts.Controller = game.New(game.WithLogger(opts.Logger))
	}
	if opts.Computer == nil {
		opts.Computer = func() game.Player { return game.NewRandom(nil) }
	}
	if opts.Automated != board.White {
		opts.Automated = board.Black
	}
	prefs := opts.Prefs
	if prefs == nil {
		prefs = &storage.Preferences{
			Username:       "Player",
			Mode:           opts.Mode,
			AutomatedColor: opts.Automated.String(),
			SoundEnabled:   true,
		}
	}

	log := opts.Logger.Named("ui")
	if fontErr != nil {
		log.Warn("fonts unavailable, text will not be drawn", zap.Error(fontErr))
	}

	g := &Game{
		ctrl:       opts.Controller,
		store:      opts.Storage,
		prefs:      prefs,
		log:        log,
		renderer:   NewRenderer(opts.TileSize, log),
		input:      NewInputHandler(),
		mode:       opts.Mode,
		automated:  opts.Automated,
		computer:   opts.Computer,
		lastFrom:   board.NoSquare,
		lastTo:     board.NoSquare,
		dragSquare: board.NoSquare,
		dragPiece:  board.NoPiece,
		started:    time.Now(),
	}
	boardSize := g.renderer.BoardSize()
	g.feedback = NewFeedbackManager(boardSize, prefs.SoundEnabled)
	g.panel = NewPanel(g, boardSize)
	g.welcome = NewWelcomeScreen(boardSize+PanelWidth, boardSize)
	g.applyMode()
	g.checkFirstLaunch()
	return g
}

func (g *Game) checkFirstLaunch() {
	if g.store == nil {
		return
	}
	first, err := g.store.IsFirstLaunch()
	if err != nil {
		g.log.Warn("first launch check failed", zap.Error(err))
		return
	}
	if first {
		g.welcome.Show(g.mode, g.completeWelcome)
	}
}

func (g *Game) completeWelcome(choice WelcomeChoice) {
	g.prefs.Username = choice.Name
	g.prefs.SoundEnabled = choice.Sound
	g.feedback.Audio().SetEnabled(choice.Sound)
	g.SetMode(choice.Mode)
	if err := g.store.MarkFirstLaunchComplete(); err != nil {
		g.log.Warn("mark first launch failed", zap.Error(err))
	}
	g.savePreferences()
}

// Update advances one tick.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	if g.welcome.IsVisible() {
		g.welcome.Update(g.input)
		g.updateCursor()
		return nil
	}

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	g.handleKeys()
	g.handleBoardInput()
	g.playAutomated()
	g.updateCursor()
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyM):
		g.ToggleModeAction()
	case IsKeyJustPressed(ebiten.KeyS):
		g.ToggleSoundAction()
	}
}

func (g *Game) updateCursor() {
	hovered := g.panel.AnyButtonHovered()
	if g.welcome.IsVisible() {
		hovered = g.welcome.AnyButtonHovered()
	}
	if hovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}

// humanToMove reports whether the side to move takes input from the mouse.
func (g *Game) humanToMove() bool {
	return !g.ctrl.GameOver() && !g.ctrl.Player(g.ctrl.ActiveColor()).Automated()
}

func (g *Game) handleBoardInput() {
	if !g.humanToMove() {
		g.stopDrag()
		return
	}

	mx, my := g.input.MousePosition()
	if g.input.IsLeftJustPressed() {
		if sq, ok := g.renderer.ScreenToSquare(mx, my); ok {
			g.press(sq)
		}
		return
	}

	if g.dragging && g.input.IsLeftJustReleased() {
		from := g.dragSquare
		g.stopDrag()
		sq, ok := g.renderer.ScreenToSquare(mx, my)
		if !ok || sq == from {
			return
		}
		if sel, selected := g.ctrl.Selection(); selected && sel == from {
			g.attempt(from, sq)
		}
	}
}

// press feeds one board click to the controller. Clicking the selected
// piece again deselects it; clicking another own piece reselects.
func (g *Game) press(sq board.Square) {
	b := g.ctrl.CurrentBoard()
	sel, selected := g.ctrl.Selection()

	if selected {
		if !b.IsOccupiedBy(sq, g.ctrl.ActiveColor()) {
			g.attempt(sel, sq)
			return
		}
		// The controller rejects a move onto an own piece and drops the
		// selection.
		g.ctrl.Click(sq)
		if sq == sel {
			return
		}
	}

	res := g.ctrl.Click(sq)
	if res.Selected {
		g.startDrag(sq, b.At(sq))
		return
	}
	if res.Err != nil && !b.IsEmpty(sq) {
		g.feedback.OnRejected(sq, sq, res.Err)
	}
}

func (g *Game) attempt(from, to board.Square) {
	out := g.ctrl.AttemptMove(to)
	if !out.Applied {
		g.feedback.OnRejected(from, to, out.Err)
		return
	}
	g.onMove(out)
}

func (g *Game) startDrag(sq board.Square, p board.Piece) {
	g.dragging = true
	g.dragSquare = sq
	g.dragPiece = p
}

func (g *Game) stopDrag() {
	g.dragging = false
	g.dragSquare = board.NoSquare
	g.dragPiece = board.NoPiece
}

// playAutomated lets a computer side move once autoDelay has passed since
// its turn began.
func (g *Game) playAutomated() {
	if g.ctrl.GameOver() || g.stalled || g.humanToMove() {
		g.autoAt = time.Time{}
		return
	}
	now := time.Now()
	if g.autoAt.IsZero() {
		g.autoAt = now.Add(autoDelay)
		return
	}
	if now.Before(g.autoAt) {
		return
	}
	g.autoAt = time.Time{}

	side := g.ctrl.ActiveColor()
	out, ok := g.ctrl.PlayAutomated()
	if !ok {
		return
	}
	if !out.Applied {
		if errors.Is(out.Err, game.ErrNoLegalMoves) {
			g.stalled = true
			g.feedback.OnStalled(side)
			return
		}
		g.log.Warn("automated move failed", zap.Stringer("side", side), zap.Error(out.Err))
		return
	}
	g.onMove(out)
}

func (g *Game) onMove(out game.MoveOutcome) {
	g.history = append(g.history, out.String())
	g.lastFrom, g.lastTo = out.From, out.To
	g.feedback.OnMove(out.IsCapture())

	if g.ctrl.GameOver() {
		g.feedback.OnGameOver(g.ctrl.Winner())
		g.recordGame()
	}
}

// recordGame stores the current game once. Games without moves are not
// recorded.
func (g *Game) recordGame() {
	if g.store == nil || g.recorded {
		return
	}
	t := g.ctrl.Tally()
	if t.TotalMoves() == 0 {
		return
	}
	rec := storage.GameRecord{
		ID:       g.ctrl.GameID(),
		Mode:     g.mode,
		Finished: g.ctrl.GameOver(),
		Winner:   g.ctrl.Winner(),
		Moves:    t.TotalMoves(),
		Captures: t.TotalCaptures(),
		Duration: time.Since(g.started),
	}
	if err := g.store.RecordGame(rec); err != nil {
		g.log.Warn("record game failed", zap.String("game_id", rec.ID), zap.Error(err))
		return
	}
	g.recorded = true
}

// NewGameAction records the current game and starts a new one.
func (g *Game) NewGameAction() {
	g.recordGame()
	g.ctrl.Reset()
	g.history = nil
	g.lastFrom, g.lastTo = board.NoSquare, board.NoSquare
	g.stopDrag()
	g.autoAt = time.Time{}
	g.stalled = false
	g.recorded = false
	g.started = time.Now()
}

// ToggleModeAction switches between two players and playing the computer.
func (g *Game) ToggleModeAction() {
	if g.mode == config.ModeHumanVsComputer {
		g.SetMode(config.ModeHumanVsHuman)
		return
	}
	g.SetMode(config.ModeHumanVsComputer)
}

// ToggleSoundAction switches sound effects on or off.
func (g *Game) ToggleSoundAction() {
	enabled := !g.feedback.Audio().IsEnabled()
	g.feedback.Audio().SetEnabled(enabled)
	g.prefs.SoundEnabled = enabled
	g.savePreferences()
}

// SetMode changes who plays. The game in progress continues.
func (g *Game) SetMode(mode string) {
	if mode == g.mode {
		return
	}
	g.mode = mode
	g.applyMode()
	g.savePreferences()
}

// SetAutomatedColor sets the side the computer plays.
func (g *Game) SetAutomatedColor(side board.Color) {
	if side == g.automated {
		return
	}
	g.automated = side
	g.applyMode()
	g.savePreferences()
}

func (g *Game) applyMode() {
	g.stalled = false
	g.autoAt = time.Time{}
	if g.mode != config.ModeHumanVsComputer {
		g.ctrl.SetPlayers(game.Human{}, game.Human{})
		return
	}
	if g.automated == board.White {
		g.ctrl.SetPlayers(g.computer(), game.Human{})
		return
	}
	g.ctrl.SetPlayers(game.Human{}, g.computer())
}

func (g *Game) savePreferences() {
	g.prefs.Mode = g.mode
	g.prefs.AutomatedColor = g.automated.String()
	if g.store == nil {
		return
	}
	if err := g.store.SavePreferences(g.prefs); err != nil {
		g.log.Warn("save preferences failed", zap.Error(err))
	}
}

// Close records the game in progress.
func (g *Game) Close() {
	g.recordGame()
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)
	g.renderer.DrawBoard(screen)

	b := g.ctrl.CurrentBoard()
	selected, ok := g.ctrl.Selection()
	if !ok {
		selected = board.NoSquare
	}
	g.renderer.DrawHighlights(screen, b, selected, g.ctrl.LegalMoves(), g.lastFrom, g.lastTo)
	g.renderer.DrawPieces(screen, b, selected, g.dragSquare, g.feedback.Animations())
	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, g.dragPiece, mx, my)
	}

	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen)
	g.welcome.Draw(screen)
}

// Layout returns the logical screen size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}

// ScreenSize returns the board plus the panel in pixels.
func (g *Game) ScreenSize() (int, int) {
	size := g.renderer.BoardSize()
	return size + g.panel.Width(), size
}

// Mode returns config.ModeHumanVsHuman or config.ModeHumanVsComputer.
func (g *Game) Mode() string {
	return g.mode
}

// AutomatedColor returns the side the computer plays in hvc mode.
func (g *Game) AutomatedColor() board.Color {
	return g.automated
}

// History returns the moves of the current game.
func (g *Game) History() []string {
	return g.history
}

// Tally returns the move and capture counters of the current game.
func (g *Game) Tally() game.Tally {
	return g.ctrl.Tally()
}

// GameOver reports whether the current game has ended.
func (g *Game) GameOver() bool {
	return g.ctrl.GameOver()
}

// Username returns the player's name.
func (g *Game) Username() string {
	return g.prefs.Username
}

// SoundEnabled reports whether sound effects play.
func (g *Game) SoundEnabled() bool {
	return g.feedback.Audio().IsEnabled()
}

// Status returns the status line and whether the computer is to move.
func (g *Game) Status() (string, bool) {
	thinking := !g.ctrl.GameOver() && !g.stalled && !g.humanToMove()
	return statusText(g.ctrl.GameOver(), g.ctrl.Winner(), g.ctrl.ActiveColor(), thinking, g.stalled), thinking
}

func statusText(over bool, winner, active board.Color, thinking, stalled bool) string {
	switch {
	case over:
		return resultText(winner)
	case stalled:
		return sideName(active) + " cannot move"
	case thinking:
		return "Computer is thinking..."
	}
	return sideName(active) + " to move"
}
