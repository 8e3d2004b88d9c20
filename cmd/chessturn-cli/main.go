// Command chessturn-cli plays a game over stdin/stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hailam/chessturn/internal/board"
	"github.com/hailam/chessturn/internal/config"
	"github.com/hailam/chessturn/internal/console"
	"github.com/hailam/chessturn/internal/game"
	"github.com/hailam/chessturn/internal/obslog"
	"github.com/hailam/chessturn/internal/storage"
)

var (
	configPath = flag.String("config", "", "path to a YAML config file")
	fen        = flag.String("fen", "", "start from this FEN (placement, optionally with side to move)")
	noStore    = flag.Bool("nostore", false, "do not record games")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "chessturn-cli:", err)
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

	white, black, err := cfg.Players()
	if err != nil {
		return err
	}
	hook, err := game.HookByName(cfg.GameOver)
	if err != nil {
		return err
	}

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithPlayers(white, black),
		game.WithGameOverHook(hook),
	}
	if *fen != "" {
		b, side, err := board.ParseFEN(*fen)
		if err != nil {
			return err
		}
		opts = append(opts, game.WithPosition(b, side))
	}
	ctrl := game.New(opts...)

	consoleOpts := []console.Option{
		console.WithLogger(logger),
		console.WithMode(cfg.Mode),
	}
	if !*noStore {
		store, err := storage.Open(cfg.DataDir)
		if err != nil {
			logger.Warn("storage unavailable, games will not be recorded", zap.Error(err))
		} else {
			defer store.Close()
			consoleOpts = append(consoleOpts, console.WithStorage(store))
		}
	}

	logger.Info("console ready",
		zap.String("mode", cfg.Mode),
		zap.String("game_over", cfg.GameOver),
		zap.String("game_id", ctrl.GameID()))
	return console.New(ctrl, os.Stdin, os.Stdout, consoleOpts...).Run()
}
