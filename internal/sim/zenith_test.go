package sim

import (
	"math"
	"testing"
)

// newTestZenith builds a Zenith enemy with a fixed idle countdown.
func newTestZenith(cfg Config, idle float64) Enemy {
	rng := NewRand(3)
	e := newEnemy(cfg, 1, EnemyZenith, 400, rng)
	e.Pos.Y = 100
	e.Zenith.Timer = idle
	return e
}

func TestZenithCycle(t *testing.T) {
	cfg := DefaultConfig()
	rng := NewRand(3)
	e := newTestZenith(cfg, 0.5)
	const dt = 0.25

	steps := []struct {
		frames int
		phase  ZenithPhase
		beam   bool
	}{
		{2, ZenithCharging, false}, // idle 0.5s
		{4, ZenithFiring, true},    // charge 1.0s
		{6, ZenithCooldown, false}, // beam 1.5s
		{4, ZenithIdle, false},     // cooldown 1.0s
	}
	for i, s := range steps {
		for f := 0; f < s.frames; f++ {
			if e.Zenith.BeamActive != (e.Zenith.Phase == ZenithFiring) {
				t.Fatalf("step %d frame %d: beam=%v in phase %s", i, f, e.Zenith.BeamActive, e.Zenith.Phase)
			}
			e.update(dt, cfg, rng)
		}
		if e.Zenith.Phase != s.phase || e.Zenith.BeamActive != s.beam {
			t.Fatalf("step %d: phase=%s beam=%v, want %s beam=%v",
				i, e.Zenith.Phase, e.Zenith.BeamActive, s.phase, s.beam)
		}
	}
	if e.Zenith.Timer < zenithIdleMin || e.Zenith.Timer > zenithIdleMax {
		t.Fatalf("new idle countdown %.2f outside [%.0f, %.0f]", e.Zenith.Timer, zenithIdleMin, zenithIdleMax)
	}
}

func TestZenithHoldsStillWhileChargingAndFiring(t *testing.T) {
	cfg := DefaultConfig()
	rng := NewRand(3)
	e := newTestZenith(cfg, 0.01)
	e.update(FrameDT, cfg, rng)
	if e.Zenith.Phase != ZenithCharging {
		t.Fatalf("phase = %s, want charging", e.Zenith.Phase)
	}
	start := e.Pos
	for i := 0; i < 60; i++ {
		e.update(FrameDT, cfg, rng)
	}
	if e.Pos != start {
		t.Fatalf("zenith moved while charging/firing: %+v → %+v", start, e.Pos)
	}
}

func TestZenithIdleDriftStaysInsidePlayArea(t *testing.T) {
	cfg := DefaultConfig()
	rng := NewRand(9)
	e := newEnemy(cfg, 1, EnemyZenith, 20, rng)
	for i := 0; i < 600 && e.Active; i++ {
		e.update(FrameDT, cfg, rng)
		half := e.Size / 2
		if e.Pos.X < half || e.Pos.X > cfg.Width-half {
			t.Fatalf("frame %d: zenith x=%.1f escaped", i, e.Pos.X)
		}
	}
}

func TestZenithBeamRectPointsDown(t *testing.T) {
	cfg := DefaultConfig()
	e := newTestZenith(cfg, 1)
	if !e.BeamRect(cfg).Empty() {
		t.Fatal("idle zenith must not project a beam")
	}
	e.Zenith.Phase = ZenithFiring
	e.Zenith.BeamActive = true
	r := e.BeamRect(cfg)
	if r.Y != e.Pos.Y+e.Size/2 || r.Bottom() != cfg.Height {
		t.Fatalf("beam spans y %.1f..%.1f, want %.1f..%.0f", r.Y, r.Bottom(), e.Pos.Y+e.Size/2, cfg.Height)
	}
	if r.W != zenithBeamWidth {
		t.Fatalf("beam width %.1f", r.W)
	}
}

// --- Capture scenarios ---

// armZenith places a Zenith already firing with the given beam time left.
func armZenith(ts *TestSim, x, y, beamLeft float64) EntityID {
	id := ts.AddEnemy(EnemyZenith, x, y)
	z := ts.Enemy(id).Zenith
	z.Phase = ZenithFiring
	z.BeamActive = true
	z.Timer = beamLeft
	return id
}

func TestZenithCaptureReleasedWhenBeamEnds(t *testing.T) {
	ts := NewTestSim(WithSeed(1), WithoutSpawns())
	id := armZenith(ts, 400, 100, 0.5)

	ts.RunFrames(1)
	if ts.World.CapturedBy() != id {
		t.Fatalf("player under an active beam should be captured, got %d", ts.World.CapturedBy())
	}
	startY := ts.World.Player().Pos.Y

	// Input is ignored while captured.
	ts.Press(ActionDown)
	ts.RunFrames(10)
	if y := ts.World.Player().Pos.Y; y >= startY {
		t.Fatalf("captured player not pulled up: %.1f → %.1f", startY, y)
	}

	ts.Release()
	ts.RunSeconds(1.0)
	if ts.World.CapturedBy() != 0 {
		t.Fatal("capture should end with the beam")
	}
	if ts.World.Lives() != 3 {
		t.Fatalf("beam ending early must not cost a life, lives=%d", ts.World.Lives())
	}
	if !ts.SimLog.HasEntry("zenith", "release", "beam_ended") {
		t.Log(ts.SimLog.Format())
		t.Fatal("missing zenith/release beam_ended")
	}
}

func TestZenithPullMovesAtFixedSpeed(t *testing.T) {
	ts := NewTestSim(WithSeed(1), WithoutSpawns())
	armZenith(ts, 400, 100, 1.5)
	ts.RunFrames(1)
	if ts.World.CapturedBy() == 0 {
		t.Fatal("expected capture")
	}

	// 220 px/s at the reference scale, one fixed step per frame.
	want := 220.0 / 60.0
	for i := 0; i < 10; i++ {
		before := ts.World.Player().Pos
		ts.RunFrames(1)
		got := ts.World.Player().Pos.Sub(before).Len()
		if math.Abs(got-want) > 1e-6 {
			t.Fatalf("frame %d: pulled %.6f px, want %.6f", i, got, want)
		}
	}
}

func TestZenithCaptureReachingZenithIsAHit(t *testing.T) {
	ts := NewTestSim(WithSeed(1), WithoutSpawns(), WithPlayerAt(400, 200))
	armZenith(ts, 400, 100, 1.5)

	frame := ts.RunUntil(func(ts *TestSim) bool { return ts.World.Lives() < 3 }, 120)
	if frame < 0 {
		t.Log(ts.SimLog.Format())
		t.Fatal("player was never pulled into the zenith")
	}
	w := ts.World
	if w.CapturedBy() != 0 {
		t.Fatal("capture should end on arrival")
	}
	if w.Player().Pos != w.Config().PlayerSpawn() {
		t.Fatalf("player should respawn, at %+v", w.Player().Pos)
	}
	if w.Player().Invincible <= 0 {
		t.Fatal("respawned player should be invincible")
	}
	if !ts.SimLog.HasEntry("player", "hit", "zenith_pull") {
		t.Fatal("missing player/hit zenith_pull")
	}
}

func TestZenithCaptureEndsWhenZenithDestroyed(t *testing.T) {
	ts := NewTestSim(WithSeed(1), WithoutSpawns())
	id := armZenith(ts, 400, 100, 1.5)
	ts.RunFrames(1)
	if ts.World.CapturedBy() != id {
		t.Fatal("expected capture")
	}
	z := ts.Enemy(id)
	ts.AddBullet(z.Pos.X, z.Pos.Y, 0, 0)
	ts.RunFrames(1)
	if ts.World.CapturedBy() != 0 {
		t.Fatal("destroying the zenith should release the player")
	}
	if ts.World.Kills().Zenith != 1 {
		t.Fatalf("zenith kills = %d", ts.World.Kills().Zenith)
	}
	if !ts.SimLog.HasEntry("zenith", "release", "zenith_destroyed") {
		t.Fatal("missing zenith/release zenith_destroyed")
	}
}

func TestZenithCannotCaptureProtectedPlayer(t *testing.T) {
	ts := NewTestSim(WithSeed(1), WithoutSpawns(), WithPowerUpTimer(PowerShield, 5))
	armZenith(ts, 400, 100, 1.0)
	ts.RunFrames(30)
	if ts.World.CapturedBy() != 0 || ts.World.Captures() != 0 {
		t.Fatal("shielded player must not be captured")
	}
}

func TestOnlyOneZenithHoldsThePlayer(t *testing.T) {
	ts := NewTestSim(WithSeed(1), WithoutSpawns())
	a := armZenith(ts, 400, 100, 1.0)
	b := armZenith(ts, 400, 200, 1.0)
	ts.RunFrames(1)
	holding := 0
	for _, e := range ts.World.Enemies() {
		if e.Zenith != nil && e.Zenith.Holding {
			holding++
		}
	}
	if holding != 1 {
		t.Fatalf("%d zeniths holding the player, want 1", holding)
	}
	if got := ts.World.CapturedBy(); got != a && got != b {
		t.Fatalf("capture handle %d is neither zenith", got)
	}
}
