package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessturn/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// Preferences stores the settings the player last used.
type Preferences struct {
	Username       string    `json:"username"`
	Mode           string    `json:"mode"`
	AutomatedColor string    `json:"automated_color"`
	SoundEnabled   bool      `json:"sound_enabled"`
	LastPlayed     time.Time `json:"last_played"`
}

// Stats accumulates results over all recorded games.
type Stats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	NoWinner      int            `json:"no_winner"`
	Unfinished    int            `json:"unfinished"`
	TotalMoves    int            `json:"total_moves"`
	TotalCaptures int            `json:"total_captures"`
	GamesByMode   map[string]int `json:"games_by_mode"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
	LastGameID    string         `json:"last_game_id"`
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{GamesByMode: make(map[string]int)}
}

// GameRecord describes one game when it ends or is abandoned.
type GameRecord struct {
	ID       string
	Mode     string
	Finished bool
	Winner   board.Color
	Moves    int
	Captures int
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database under dataDir. An empty dataDir
// uses the per-OS default location.
func Open(dataDir string) (*Storage, error) {
	dbDir, err := DatabaseDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("database dir: %w", err)
	}
	return open(badger.DefaultOptions(dbDir))
}

// OpenInMemory opens a database that is discarded on Close.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch reports whether MarkFirstLaunchComplete was never called.
func (s *Storage) IsFirstLaunch() (bool, error) {
	first := true
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		first = false
		return nil
	})
	return first, err
}

// MarkFirstLaunchComplete records that the first launch happened.
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences stores prefs and stamps LastPlayed.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences returns the stored preferences, or a copy of defaults when
// none were saved.
func (s *Storage) LoadPreferences(defaults Preferences) (*Preferences, error) {
	prefs := defaults
	if err := s.get(keyPreferences, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// LoadStats returns the stored statistics, or empty ones.
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()
	if err := s.get(keyStats, stats); err != nil {
		return nil, err
	}
	if stats.GamesByMode == nil {
		stats.GamesByMode = make(map[string]int)
	}
	return stats, nil
}

// RecordGame folds rec into the statistics in a single transaction.
func (s *Storage) RecordGame(rec GameRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		stats := NewStats()
		if err := getTxn(txn, keyStats, stats); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if stats.GamesByMode == nil {
			stats.GamesByMode = make(map[string]int)
		}

		stats.GamesPlayed++
		stats.TotalMoves += rec.Moves
		stats.TotalCaptures += rec.Captures
		stats.TotalPlayTime += rec.Duration
		stats.LastGameID = rec.ID
		if rec.Mode != "" {
			stats.GamesByMode[rec.Mode]++
		}

		switch {
		case !rec.Finished:
			stats.Unfinished++
		case rec.Winner == board.White:
			stats.WhiteWins++
		case rec.Winner == board.Black:
			stats.BlackWins++
		default:
			stats.NoWinner++
		}

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), data)
	})
}

// WinRate returns the share of finished games won by side, as a percentage.
func (s *Stats) WinRate(side board.Color) float64 {
	finished := s.GamesPlayed - s.Unfinished
	if finished <= 0 {
		return 0
	}
	wins := s.WhiteWins
	if side == board.Black {
		wins = s.BlackWins
	}
	return float64(wins) / float64(finished) * 100
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes key into v and leaves v untouched when the key is absent.
func (s *Storage) get(key string, v any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		return getTxn(txn, key, v)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

func getTxn(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}
