// Package storage persists preferences and game statistics in BadgerDB.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessturn"

// dataRoots lists, per GOOS, the environment variable naming the user data
// root and the fallback path below the home directory.
var dataRoots = map[string]struct {
	env      string
	fallback []string
}{
	"darwin":  {"", []string{"Library", "Application Support"}},
	"windows": {"APPDATA", []string{"AppData", "Roaming"}},
	"":        {"XDG_DATA_HOME", []string{".local", "share"}},
}

// DataDir returns the per-user application directory:
// ~/Library/Application Support/chessturn on macOS, %APPDATA%\chessturn on
// Windows and $XDG_DATA_HOME/chessturn (or ~/.local/share/chessturn)
// elsewhere.
func DataDir() (string, error) {
	base, err := userDataRoot(runtime.GOOS, os.Getenv, os.UserHomeDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

func userDataRoot(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	root, ok := dataRoots[goos]
	if !ok {
		root = dataRoots[""]
	}
	if root.env != "" {
		if v := getenv(root.env); v != "" {
			return v, nil
		}
	}
	h, err := home()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(append([]string{h}, root.fallback...)...), nil
}

// DatabaseDir returns the BadgerDB directory under dataDir, creating it.
// An empty dataDir means DataDir().
func DatabaseDir(dataDir string) (string, error) {
	if dataDir == "" {
		d, err := DataDir()
		if err != nil {
			return "", err
		}
		dataDir = d
	}
	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dbDir, err)
	}
	return dbDir, nil
}
