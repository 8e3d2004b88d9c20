package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hailam/chessturn/internal/board"
	"github.com/hailam/chessturn/internal/game"
)

// isolate points the .env lookup at an empty temp dir and clears the
// variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := DotEnvFile
	DotEnvFile = filepath.Join(dir, ".env")
	t.Cleanup(func() { DotEnvFile = old })

	for _, k := range []string{
		"CHESSTURN_MODE", "CHESSTURN_AUTOMATED_COLOR", "CHESSTURN_GAME_OVER",
		"CHESSTURN_DATA_DIR", "CHESSTURN_USERNAME", "CHESSTURN_SEED",
		"CHESSTURN_TILE_SIZE", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
	white, black, err := cfg.Players()
	if err != nil || white.Automated() || black.Automated() {
		t.Errorf("default players = %T %T, %v", white, black, err)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "chessturn.yaml")
	writeFile(t, path, `
mode: hvc
automated_color: white
seed: 7
game_over: king-capture
tile_size: 64
log:
  level: debug
  format: json
`)
	t.Setenv("CHESSTURN_TILE_SIZE", "96")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Mode != ModeHumanVsComputer || cfg.Seed != 7 || cfg.GameOver != game.RuleKingCapture {
		t.Errorf("yaml values not applied: %+v", cfg)
	}
	if cfg.TileSize != 96 || cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}

	side, err := cfg.Automated()
	if err != nil || side != board.White {
		t.Errorf("Automated() = %v, %v", side, err)
	}
	white, black, err := cfg.Players()
	if err != nil || !white.Automated() || black.Automated() {
		t.Errorf("Players() = %T %T, %v", white, black, err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	os.Unsetenv("CHESSTURN_USERNAME")
	t.Cleanup(func() { os.Unsetenv("CHESSTURN_USERNAME") })
	writeFile(t, DotEnvFile, "CHESSTURN_USERNAME=kasparov\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Username != "kasparov" {
		t.Errorf("Username = %q, want value from .env", cfg.Username)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Mode", func(c *Config) { c.Mode = "cvc" }},
		{"Color", func(c *Config) { c.AutomatedColor = "green" }},
		{"Rule", func(c *Config) { c.GameOver = "checkmate" }},
		{"TileSize", func(c *Config) { c.TileSize = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate accepted %+v", cfg)
			}
		})
	}

	cfg := Default()
	cfg.Mode = " HVC "
	if err := cfg.Validate(); err != nil || cfg.Mode != ModeHumanVsComputer {
		t.Errorf("Validate normalised mode to %q, err %v", cfg.Mode, err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load accepted a missing config file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "mode: [unterminated")
	if _, err := Load(bad); err == nil {
		t.Error("Load accepted malformed yaml")
	}

	t.Setenv("CHESSTURN_SEED", "abc")
	if _, err := Load(""); err == nil {
		t.Error("Load accepted a non-numeric seed")
	}
}
