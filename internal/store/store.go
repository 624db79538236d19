// Package store persists the high score and lifetime statistics between
// sessions. Loads never fail outward: a missing or unreadable file yields
// zero values and a logged warning.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/zenith-shmup/internal/sim"
)

const (
	highScoreFile = "highscore.txt"
	statsFile     = "stats.yaml"
)

// Store reads and writes save files under one directory.
type Store struct {
	dir string
	log *slog.Logger
}

// NewLogger returns the text logger the store and hosts share, tagged with
// a component attribute.
func NewLogger(component string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("component", component)
}

// New returns a Store rooted at dir. A nil logger gets the default
// component logger.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = NewLogger("store")
	}
	return &Store{dir: dir, log: logger}
}

// Dir is the save directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// LoadHighScore returns the saved high score, or 0.
func (s *Store) LoadHighScore() int {
	data, err := os.ReadFile(s.path(highScoreFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("read high score", "err", err)
		}
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		s.log.Warn("parse high score", "content", strings.TrimSpace(string(data)))
		return 0
	}
	return n
}

// SaveHighScore writes the high score as a single decimal line.
func (s *Store) SaveHighScore(score int) error {
	return s.write(highScoreFile, []byte(strconv.Itoa(score)+"\n"))
}

// Stats is the lifetime record merged from every finished run.
type Stats struct {
	GamesPlayed   int       `yaml:"games_played"`
	HighScore     int       `yaml:"high_score"`
	TotalScore    int64     `yaml:"total_score"`
	TotalPlayTime float64   `yaml:"total_play_time"`
	MaxCombo      int       `yaml:"max_combo"`
	Kills         KillStats `yaml:"kills"`
	Captures      int       `yaml:"captures"`
	LastSession   string    `yaml:"last_session,omitempty"`
	LastPlayed    time.Time `yaml:"last_played,omitempty"`
}

// KillStats mirrors sim.KillCounts with running totals.
type KillStats struct {
	Total      int `yaml:"total"`
	Normal     int `yaml:"normal"`
	Fast       int `yaml:"fast"`
	Big        int `yaml:"big"`
	Zeniths    int `yaml:"zeniths"`
	Bosses     int `yaml:"bosses"`
	Destroyers int `yaml:"destroyers"`
	Carriers   int `yaml:"carriers"`
	Behemoths  int `yaml:"behemoths"`
}

// Record merges one finished run into the lifetime totals.
func (st *Stats) Record(session uuid.UUID, r sim.RunSummary, at time.Time) {
	st.GamesPlayed++
	st.TotalScore += int64(r.Score)
	st.TotalPlayTime += r.PlayTime
	if r.Score > st.HighScore {
		st.HighScore = r.Score
	}
	if r.MaxCombo > st.MaxCombo {
		st.MaxCombo = r.MaxCombo
	}
	k := r.Kills
	st.Kills.Normal += k.Normal
	st.Kills.Fast += k.Fast
	st.Kills.Big += k.Big
	st.Kills.Zeniths += k.Zenith
	st.Kills.Destroyers += k.Destroyers
	st.Kills.Carriers += k.Carriers
	st.Kills.Behemoths += k.Behemoths
	st.Kills.Bosses += k.Bosses()
	st.Kills.Total += k.Enemies() + k.Bosses()
	st.Captures += r.Captures
	st.LastSession = session.String()
	st.LastPlayed = at.UTC()
}

// LoadStats returns the saved statistics, or zero values.
func (s *Store) LoadStats() Stats {
	var st Stats
	data, err := os.ReadFile(s.path(statsFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("read stats", "err", err)
		}
		return st
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		s.log.Warn("parse stats", "err", err)
		return Stats{}
	}
	return st
}

// SaveStats writes the statistics file.
func (s *Store) SaveStats(st Stats) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	return s.write(statsFile, data)
}

// FinishRun records a finished run: it merges the stats, raises the saved
// high score when beaten and logs any write failure. It returns the merged
// stats.
func (s *Store) FinishRun(session uuid.UUID, r sim.RunSummary) Stats {
	st := s.LoadStats()
	st.Record(session, r, time.Now())
	if err := s.SaveStats(st); err != nil {
		s.log.Error("save stats", "err", err)
	}
	if r.Score > s.LoadHighScore() {
		if err := s.SaveHighScore(r.Score); err != nil {
			s.log.Error("save high score", "err", err)
		}
	}
	s.log.Info("run recorded", "session", session.String(), "score", r.Score, "games", st.GamesPlayed)
	return st
}

// write replaces a save file atomically via a temp file in the same directory.
func (s *Store) write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create save dir %s: %w", s.dir, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
