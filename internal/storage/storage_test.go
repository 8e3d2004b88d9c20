package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/hailam/chessturn/internal/board"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferences(t *testing.T) {
	s := openTest(t)
	defaults := Preferences{Username: "Player", Mode: "hvh", AutomatedColor: "black"}

	prefs, err := s.LoadPreferences(defaults)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if *prefs != defaults {
		t.Errorf("LoadPreferences on empty db = %+v, want defaults", prefs)
	}

	prefs.Mode = "hvc"
	prefs.AutomatedColor = "white"
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	if prefs.LastPlayed.IsZero() {
		t.Error("SavePreferences did not stamp LastPlayed")
	}

	got, err := s.LoadPreferences(defaults)
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got.Mode != "hvc" || got.AutomatedColor != "white" || got.Username != "Player" {
		t.Errorf("LoadPreferences = %+v", got)
	}
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)

	records := []GameRecord{
		{ID: "g1", Mode: "hvc", Finished: true, Winner: board.White, Moves: 31, Captures: 9, Duration: time.Minute},
		{ID: "g2", Mode: "hvc", Finished: true, Winner: board.Black, Moves: 12, Captures: 2},
		{ID: "g3", Mode: "hvh", Finished: true, Winner: board.NoColor, Moves: 4},
		{ID: "g4", Mode: "hvh", Finished: false, Winner: board.NoColor, Moves: 7, Captures: 1},
	}
	for _, rec := range records {
		if err := s.RecordGame(rec); err != nil {
			t.Fatalf("RecordGame(%s): %v", rec.ID, err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	want := Stats{
		GamesPlayed:   4,
		WhiteWins:     1,
		BlackWins:     1,
		NoWinner:      1,
		Unfinished:    1,
		TotalMoves:    54,
		TotalCaptures: 12,
		TotalPlayTime: time.Minute,
		LastGameID:    "g4",
	}
	got := *stats
	got.GamesByMode = nil
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stats = %+v\nwant  %+v", got, want)
	}
	if stats.GamesByMode["hvc"] != 2 || stats.GamesByMode["hvh"] != 2 {
		t.Errorf("GamesByMode = %v", stats.GamesByMode)
	}
	if rate := stats.WinRate(board.White); rate < 33.3 || rate > 33.4 {
		t.Errorf("WinRate(White) = %.2f", rate)
	}
}

func TestEmptyStats(t *testing.T) {
	stats, err := openTest(t).LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.GamesPlayed != 0 || stats.GamesByMode == nil || stats.WinRate(board.Black) != 0 {
		t.Errorf("empty stats = %+v", stats)
	}
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch() = %v, %v", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	if first, _ := s.IsFirstLaunch(); first {
		t.Error("IsFirstLaunch() still true")
	}
}

func TestOpenPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.RecordGame(GameRecord{ID: "persisted", Finished: true, Winner: board.White}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "db")); err != nil {
		t.Fatalf("database dir not created: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.LastGameID != "persisted" || stats.WhiteWins != 1 {
		t.Errorf("stats after reopen = %+v", stats)
	}
}

func TestUserDataRoot(t *testing.T) {
	home := func() (string, error) { return "/home/ana", nil }
	env := map[string]string{"XDG_DATA_HOME": "/xdg", "APPDATA": `C:\Users\ana\AppData\Roaming`}
	noEnv := func(string) string { return "" }

	tests := []struct {
		name   string
		goos   string
		getenv func(string) string
		want   string
	}{
		{"LinuxXDG", "linux", func(k string) string { return env[k] }, "/xdg"},
		{"LinuxFallback", "linux", noEnv, filepath.Join("/home/ana", ".local", "share")},
		{"FreeBSD", "freebsd", noEnv, filepath.Join("/home/ana", ".local", "share")},
		{"Darwin", "darwin", func(k string) string { return env[k] }, filepath.Join("/home/ana", "Library", "Application Support")},
		{"WindowsAppData", "windows", func(k string) string { return env[k] }, env["APPDATA"]},
		{"WindowsFallback", "windows", noEnv, filepath.Join("/home/ana", "AppData", "Roaming")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := userDataRoot(tc.goos, tc.getenv, home)
			if err != nil {
				t.Fatalf("userDataRoot: %v", err)
			}
			if got != tc.want {
				t.Errorf("userDataRoot(%s) = %q, want %q", tc.goos, got, tc.want)
			}
		})
	}

	_, err := userDataRoot("linux", noEnv, func() (string, error) { return "", os.ErrNotExist })
	if err == nil {
		t.Error("missing home directory was not reported")
	}
}

func TestDatabaseDirCreatesDirectory(t *testing.T) {
	base := t.TempDir()
	dir, err := DatabaseDir(base)
	if err != nil {
		t.Fatalf("DatabaseDir: %v", err)
	}
	if dir != filepath.Join(base, "db") {
		t.Errorf("DatabaseDir() = %q", dir)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("database directory not created: %v", err)
	}
}
