package sim

import (
	"math"
	"testing"
)

// fixedRand returns the same draws every call.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func TestAggressivenessScaling(t *testing.T) {
	cases := []struct {
		d        Difficulty
		interval float64
		batch    int
		zenith   float64
		bossStep int
		powerUp  float64
	}{
		{DifficultyGoober, 1.4, 3, 0.025, 20000, 16},
		{DifficultyStandard, 0.7, 5, 0.05, 10000, 8},
		{DifficultyUltraViolence, 0.35, 10, 0.10, 5000, 4},
		{DifficultyNotWhenHow, 0.175, 20, 0.20, 2500, 2},
	}
	for _, c := range cases {
		cfg := DefaultConfig().WithDifficulty(c.d)
		if got := EnemyInterval(cfg); math.Abs(got-c.interval) > 1e-9 {
			t.Errorf("%s: enemy interval %.3f, want %.3f", c.d, got, c.interval)
		}
		if got := BatchSize(cfg); got != c.batch {
			t.Errorf("%s: batch %d, want %d", c.d, got, c.batch)
		}
		if got := ZenithChance(cfg); math.Abs(got-c.zenith) > 1e-9 {
			t.Errorf("%s: zenith chance %.3f, want %.3f", c.d, got, c.zenith)
		}
		if got := BossScoreStep(cfg); got != c.bossStep {
			t.Errorf("%s: boss step %d, want %d", c.d, got, c.bossStep)
		}
		if got := PowerUpInterval(cfg); math.Abs(got-c.powerUp) > 1e-9 {
			t.Errorf("%s: power-up interval %.2f, want %.2f", c.d, got, c.powerUp)
		}
	}
}

func TestZenithChanceCapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Aggressiveness = 100
	if got := ZenithChance(cfg); got != zenithChanceCap {
		t.Fatalf("zenith chance %.2f, want cap %.2f", got, zenithChanceCap)
	}
}

func TestBatchSizeScalesWithArea(t *testing.T) {
	cfg := DefaultConfig().WithPlayArea(1600, 1200)
	if got := BatchSize(cfg); got != 20 {
		t.Fatalf("batch at 4x area = %d, want 20", got)
	}
	tiny := DefaultConfig().WithPlayArea(100, 100)
	tiny.Aggressiveness = 0.1
	if got := BatchSize(tiny); got != 1 {
		t.Fatalf("batch floor = %d, want 1", got)
	}
}

func TestPickEnemyType(t *testing.T) {
	cfg := DefaultConfig()
	if got := pickEnemyType(cfg, fixedRand{f: 0.01}); got != EnemyZenith {
		t.Fatalf("roll under zenith chance gave %s", got)
	}
	// 60/20/20 over a table of weight 10.
	mix := []struct {
		n    int
		want EnemyType
	}{{0, EnemyNormal}, {5, EnemyNormal}, {6, EnemyFast}, {7, EnemyFast}, {8, EnemyBig}, {9, EnemyBig}}
	for _, m := range mix {
		if got := pickEnemyType(cfg, fixedRand{f: 0.99, n: m.n}); got != m.want {
			t.Errorf("roll %d gave %s, want %s", m.n, got, m.want)
		}
	}
}

func TestSpawnDirectorEnemyBatches(t *testing.T) {
	ts := NewTestSim(WithSeed(11))
	ts.RunSeconds(0.69)
	if n := len(ts.World.Enemies()); n != 0 {
		t.Fatalf("%d enemies before the first interval", n)
	}
	ts.RunSeconds(0.05)
	if n := len(ts.World.Enemies()); n != BatchSize(ts.World.Config()) {
		t.Fatalf("first batch = %d enemies, want %d", n, BatchSize(ts.World.Config()))
	}
	seen := map[EntityID]bool{}
	for _, e := range ts.World.Enemies() {
		if seen[e.ID] || e.ID == 0 {
			t.Fatalf("duplicate or zero enemy id %d", e.ID)
		}
		seen[e.ID] = true
		if e.Pos.Y >= 0 {
			t.Fatalf("%s spawned on screen at y=%.1f", e.label(), e.Pos.Y)
		}
	}
}

func TestSpawnDirectorPowerUps(t *testing.T) {
	ts := NewTestSim(WithSeed(11), WithPowerUpTimer(PowerShield, 100))
	ts.RunSeconds(8.1)
	if ts.SimLog.CountCategory("spawn", "powerup") != 1 {
		t.Fatalf("power-ups after 8.1s = %d, want 1", ts.SimLog.CountCategory("spawn", "powerup"))
	}
}

func TestBossSpawnsOnScoreThreshold(t *testing.T) {
	ts := NewTestSim(WithSeed(12))
	w := ts.World
	w.score = 9999
	ts.RunFrames(1)
	if w.Boss() != nil {
		t.Fatal("boss spawned below the threshold")
	}
	w.score = 10000
	ts.RunFrames(1)
	if w.Boss() == nil {
		t.Fatal("boss should spawn at the threshold")
	}
	if w.Timers().BossWarning != bossWarningTime {
		t.Fatalf("boss warning = %.2f, want %.1f", w.Timers().BossWarning, bossWarningTime)
	}
	first := w.Boss().ID

	// No second boss while one is live, even past the next threshold.
	w.score = 25000
	ts.RunFrames(1)
	if w.Boss().ID != first || ts.SimLog.CountCategory("spawn", "boss") != 1 {
		t.Fatal("a second boss spawned while one was live")
	}

	// Once the boss is gone the next threshold counts from the last spawn.
	w.boss.Active = false
	w.score = 19999
	ts.RunFrames(1)
	if w.Boss() != nil {
		t.Fatal("boss respawned before last spawn score + step")
	}
	w.score = 20000
	ts.RunFrames(1)
	if w.Boss() == nil || ts.SimLog.CountCategory("spawn", "boss") != 2 {
		t.Fatal("second boss should spawn at 20000")
	}
}

func TestBossDueAtHigherAggressiveness(t *testing.T) {
	cfg := DefaultConfig().WithDifficulty(DifficultyUltraViolence)
	var d SpawnDirector
	if d.bossDue(4999, false, cfg) {
		t.Fatal("boss due below 5000 at aggr 2")
	}
	if !d.bossDue(5000, false, cfg) || d.LastBossScore != 5000 {
		t.Fatalf("boss not due at 5000, last=%d", d.LastBossScore)
	}
}
