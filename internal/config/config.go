// Package config loads chessturn settings from defaults, an optional YAML
// file, a .env file and CHESSTURN_* / LOG_* environment variables, in that
// order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hailam/chessturn/internal/board"
	"github.com/hailam/chessturn/internal/game"
)

// Game modes.
const (
	ModeHumanVsHuman    = "hvh"
	ModeHumanVsComputer = "hvc"
)

// Log holds logger settings.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Config is the resolved application configuration.
type Config struct {
	Mode           string `yaml:"mode"`
	AutomatedColor string `yaml:"automated_color"`
	Seed           int64  `yaml:"seed"`
	GameOver       string `yaml:"game_over"`
	TileSize       int    `yaml:"tile_size"`
	DataDir        string `yaml:"data_dir"`
	Username       string `yaml:"username"`
	Log            Log    `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Mode:           ModeHumanVsHuman,
		AutomatedColor: "black",
		GameOver:       game.RuleNever,
		TileSize:       80,
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// DotEnvFile is read from the working directory when present.
var DotEnvFile = ".env"

// Load resolves the configuration. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Mode, "CHESSTURN_MODE")
	setString(&c.AutomatedColor, "CHESSTURN_AUTOMATED_COLOR")
	setString(&c.GameOver, "CHESSTURN_GAME_OVER")
	setString(&c.DataDir, "CHESSTURN_DATA_DIR")
	setString(&c.Username, "CHESSTURN_USERNAME")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.File, "LOG_FILE")

	if v := getenv("CHESSTURN_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CHESSTURN_SEED: %w", err)
		}
		c.Seed = n
	}
	if v := getenv("CHESSTURN_TILE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHESSTURN_TILE_SIZE: %w", err)
		}
		c.TileSize = n
	}
	return nil
}

// Validate rejects unknown modes, colors and rules.
func (c *Config) Validate() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	switch c.Mode {
	case ModeHumanVsHuman, ModeHumanVsComputer:
	default:
		return fmt.Errorf("unknown mode %q (want %s or %s)", c.Mode, ModeHumanVsHuman, ModeHumanVsComputer)
	}
	if _, err := c.Automated(); err != nil {
		return err
	}
	if _, err := game.HookByName(c.GameOver); err != nil {
		return err
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	return nil
}

// Automated returns the side the computer plays in hvc mode.
func (c *Config) Automated() (board.Color, error) {
	side, ok := board.ParseColor(c.AutomatedColor)
	if !ok {
		return board.NoColor, fmt.Errorf("unknown automated color %q", c.AutomatedColor)
	}
	return side, nil
}

// Players returns the configured players. Seed 0 draws a random seed.
func (c *Config) Players() (white, black game.Player, err error) {
	if c.Mode != ModeHumanVsComputer {
		return game.Human{}, game.Human{}, nil
	}
	side, err := c.Automated()
	if err != nil {
		return nil, nil, err
	}
	computer := c.Computer()
	if side == board.White {
		return computer, game.Human{}, nil
	}
	return game.Human{}, computer, nil
}

// Computer returns a new automated player, seeded when Seed is set.
func (c *Config) Computer() game.Player {
	if c.Seed != 0 {
		return game.NewSeededRandom(uint64(c.Seed))
	}
	return game.NewRandom(nil)
}

func setString(dst *string, key string) {
	if v := getenv(key); v != "" {
		*dst = v
	}
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
