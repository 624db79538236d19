package store

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/zenith-shmup/internal/sim"
)

func quietStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "saves"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHighScoreMissingIsZero(t *testing.T) {
	s := quietStore(t)
	assert.Equal(t, 0, s.LoadHighScore())
}

func TestHighScoreRoundTrip(t *testing.T) {
	s := quietStore(t)
	require.NoError(t, s.SaveHighScore(12345))
	assert.Equal(t, 12345, s.LoadHighScore())

	data, err := os.ReadFile(filepath.Join(s.Dir(), highScoreFile))
	require.NoError(t, err)
	assert.Equal(t, "12345\n", string(data))
}

func TestHighScoreCorruptIsZero(t *testing.T) {
	s := quietStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), highScoreFile), []byte("lots\n"), 0o600))
	assert.Equal(t, 0, s.LoadHighScore())
}

func TestStatsCorruptIsZero(t *testing.T) {
	s := quietStore(t)
	require.NoError(t, os.MkdirAll(s.Dir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), statsFile), []byte("games_played: [\n"), 0o600))
	assert.Equal(t, Stats{}, s.LoadStats())
}

func TestStatsSaveLoadRoundTrip(t *testing.T) {
	s := quietStore(t)
	want := Stats{
		GamesPlayed:   7,
		HighScore:     12400,
		TotalScore:    58210,
		TotalPlayTime: 1834.5,
		MaxCombo:      42,
		Kills: KillStats{
			Total: 311, Normal: 180, Fast: 71, Big: 40, Zeniths: 20,
			Bosses: 6, Destroyers: 3, Carriers: 2, Behemoths: 1,
		},
		Captures:    9,
		LastSession: uuid.NewString(),
		LastPlayed:  time.Date(2026, 10, 19, 21, 4, 5, 0, time.UTC),
	}
	require.NoError(t, s.SaveStats(want))

	got := s.LoadStats()
	assert.True(t, want.LastPlayed.Equal(got.LastPlayed), "last played %v, want %v", got.LastPlayed, want.LastPlayed)
	got.LastPlayed, want.LastPlayed = time.Time{}, time.Time{}
	assert.Equal(t, want, got)
}

func TestStatsRecordMergesRuns(t *testing.T) {
	var st Stats
	id := uuid.New()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	st.Record(id, sim.RunSummary{
		Score: 800, PlayTime: 61.5, MaxCombo: 12, Captures: 2,
		Kills: sim.KillCounts{Normal: 20, Fast: 5, Zenith: 1, Carriers: 1},
	}, at)
	st.Record(id, sim.RunSummary{
		Score: 300, PlayTime: 10, MaxCombo: 4,
		Kills: sim.KillCounts{Big: 3, Behemoths: 1},
	}, at)

	assert.Equal(t, 2, st.GamesPlayed)
	assert.Equal(t, 800, st.HighScore)
	assert.EqualValues(t, 1100, st.TotalScore)
	assert.InDelta(t, 71.5, st.TotalPlayTime, 1e-9)
	assert.Equal(t, 12, st.MaxCombo)
	assert.Equal(t, 2, st.Captures)
	assert.Equal(t, KillStats{
		Total: 31, Normal: 20, Fast: 5, Big: 3, Zeniths: 1,
		Bosses: 2, Carriers: 1, Behemoths: 1,
	}, st.Kills)
	assert.Equal(t, id.String(), st.LastSession)
}

func TestFinishRunPersists(t *testing.T) {
	s := quietStore(t)
	id := uuid.New()
	s.FinishRun(id, sim.RunSummary{Score: 500, MaxCombo: 3, Kills: sim.KillCounts{Normal: 4}})
	s.FinishRun(uuid.New(), sim.RunSummary{Score: 200})

	assert.Equal(t, 500, s.LoadHighScore())
	st := s.LoadStats()
	assert.Equal(t, 2, st.GamesPlayed)
	assert.EqualValues(t, 700, st.TotalScore)
	assert.Equal(t, 4, st.Kills.Normal)
	assert.False(t, st.LastPlayed.IsZero())

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp files must not be left behind")
}
