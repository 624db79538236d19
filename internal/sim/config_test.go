package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	cases := map[string]Difficulty{
		"goober":         DifficultyGoober,
		"Standard":       DifficultyStandard,
		"ultra-violence": DifficultyUltraViolence,
		"Ultra Violence": DifficultyUltraViolence,
		"NOT_WHEN_HOW":   DifficultyNotWhenHow,
	}
	for name, want := range cases {
		got, err := ParseDifficulty(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseDifficulty("nightmare")
	assert.Error(t, err)
}

func TestDifficultyAggressiveness(t *testing.T) {
	assert.Equal(t, 0.5, DifficultyGoober.Aggressiveness())
	assert.Equal(t, 1.0, DifficultyStandard.Aggressiveness())
	assert.Equal(t, 2.0, DifficultyUltraViolence.Aggressiveness())
	assert.Equal(t, 4.0, DifficultyNotWhenHow.Aggressiveness())
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, Vec2{X: 400, Y: 550}, cfg.PlayerSpawn())
	assert.InDelta(t, 1.0, cfg.scale(), 1e-12)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.Aggressiveness = -1
	cfg.Lives = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "play area")
	assert.Contains(t, err.Error(), "aggressiveness")
	assert.Contains(t, err.Error(), "lives")
}

func TestScaleUsesSmallerRatio(t *testing.T) {
	cfg := DefaultConfig().WithPlayArea(1600, 900)
	assert.InDelta(t, 1.5, cfg.scale(), 1e-12)
	assert.InDelta(t, 30.0, cfg.scaleSize(cfg.PlayerSize), 1e-9)
	assert.InDelta(t, 3.0, cfg.areaScale(), 1e-12)
}

func TestLoadConfigFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	data := []byte("aggressiveness: 2.5\nlives: 5\ncombo_cap: 20\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfigFile(path, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Aggressiveness)
	assert.Equal(t, 5, cfg.Lives)
	assert.Equal(t, 20.0, cfg.ComboCap)
	assert.Equal(t, DefaultConfig().ComboBase, cfg.ComboBase, "absent keys keep the base value")
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"), DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("lives: [1, 2\n"), 0o600))
	_, err = LoadConfigFile(bad, DefaultConfig())
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("aggressiveness: 0\n"), 0o600))
	base := DefaultConfig()
	got, err := LoadConfigFile(invalid, base)
	assert.Error(t, err)
	assert.Equal(t, base, got, "a rejected file leaves the base untouched")
}
