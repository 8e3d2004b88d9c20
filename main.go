// ChessTurn - a turn-based chess board built with Ebitengine
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/hailam/chessturn/internal/board"
	"github.com/hailam/chessturn/internal/config"
	"github.com/hailam/chessturn/internal/game"
	"github.com/hailam/chessturn/internal/obslog"
	"github.com/hailam/chessturn/internal/storage"
	"github.com/hailam/chessturn/internal/ui"
)

var configPath = flag.String("config", "", "path to a YAML config file")

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chessturn:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := obslog.New(obslog.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer closeLog()
	defer logger.Sync()

	automated, err := cfg.Automated()
	if err != nil {
		return err
	}
	hook, err := game.HookByName(cfg.GameOver)
	if err != nil {
		return err
	}

	defaults := storage.Preferences{
		Username:       cfg.Username,
		Mode:           cfg.Mode,
		AutomatedColor: automated.String(),
		SoundEnabled:   true,
	}
	if defaults.Username == "" {
		defaults.Username = "Player"
	}
	prefs := &defaults

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		logger.Warn("storage unavailable, preferences and games will not be saved", zap.Error(err))
		store = nil
	} else {
		defer store.Close()
		if prefs, err = store.LoadPreferences(defaults); err != nil {
			logger.Warn("load preferences failed", zap.Error(err))
			prefs = &defaults
		}
	}
	if cfg.Username != "" {
		prefs.Username = cfg.Username
	}
	if side, ok := board.ParseColor(prefs.AutomatedColor); ok {
		automated = side
	}

	ctrl := game.New(
		game.WithLogger(logger),
		game.WithGameOverHook(hook),
	)
	g := ui.NewGame(ui.Options{
		Controller: ctrl,
		Storage:    store,
		Prefs:      prefs,
		Mode:       prefs.Mode,
		Automated:  automated,
		Computer:   cfg.Computer,
		TileSize:   cfg.TileSize,
		Logger:     logger,
	})
	defer g.Close()

	w, h := g.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("ChessTurn")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("window ready",
		zap.String("mode", prefs.Mode),
		zap.Stringer("automated", automated),
		zap.String("game_over", cfg.GameOver))
	return ebiten.RunGame(g)
}
