package sim

import (
	"math"
	"testing"
)

func TestLaserChargeScalesDamageWidthColor(t *testing.T) {
	cfg := DefaultConfig()
	rng := NewRand(5)
	l := newLaser(cfg)
	anchor := Vec2{X: 400, Y: 550}

	if !l.StartCharging(anchor) {
		t.Fatal("idle laser should start charging")
	}
	if l.StartCharging(anchor) {
		t.Fatal("charging laser must ignore a second start")
	}

	l.update(1.0, cfg, anchor, rng)
	if math.Abs(l.Damage-125) > 1e-9 || math.Abs(l.Width-14) > 1e-9 {
		t.Fatalf("half charge: damage=%.1f width=%.1f, want 125/14", l.Damage, l.Width)
	}

	l.update(5.0, cfg, anchor, rng) // overcharge is capped
	if l.Damage != cfg.LaserDamageMax || l.Width != cfg.LaserWidthMax {
		t.Fatalf("full charge: damage=%.1f width=%.1f", l.Damage, l.Width)
	}
	if l.Color != laserColorCharged {
		t.Fatalf("full charge colour = %+v", l.Color)
	}
	l.update(0.01, cfg, anchor, rng)
	if len(l.Particles) == 0 {
		t.Fatal("charging should emit particles")
	}
}

func TestLaserReleaseFiresThenReturnsIdle(t *testing.T) {
	cfg := DefaultConfig()
	rng := NewRand(5)
	l := newLaser(cfg)
	anchor := Vec2{X: 400, Y: 550}
	l.StartCharging(anchor)
	l.update(1.0, cfg, anchor, rng)

	if !l.Release(cfg) {
		t.Fatal("release after 1s of charge should fire")
	}
	if l.Charging() || !l.Firing() {
		t.Fatalf("state = %s, want firing", l.State)
	}
	fp := l.Footprint()
	if fp.Y != 0 || fp.Bottom() != anchor.Y || math.Abs(fp.W-l.Width) > 1e-9 {
		t.Fatalf("footprint %+v should run from the top to the anchor", fp)
	}
	if l.Release(cfg) {
		t.Fatal("release while firing must be ignored")
	}

	l.update(0.25, cfg, anchor, rng)
	if !l.Firing() {
		t.Fatal("laser stopped before its fire duration")
	}
	l.update(0.25, cfg, anchor, rng)
	if l.State != LaserIdle {
		t.Fatalf("state after 0.5s = %s, want idle", l.State)
	}
	if !l.Footprint().Empty() {
		t.Fatal("idle laser must have an empty footprint")
	}
}

func TestLaserShortChargeFizzles(t *testing.T) {
	cfg := DefaultConfig()
	rng := NewRand(5)
	l := newLaser(cfg)
	l.StartCharging(Vec2{X: 10, Y: 10})
	l.update(0.1, cfg, Vec2{X: 10, Y: 10}, rng)
	if l.Release(cfg) {
		t.Fatal("a 0.1s charge should fizzle")
	}
	if l.State != LaserIdle || l.Damage != cfg.LaserDamageBase {
		t.Fatalf("fizzle should reset, state=%s damage=%.1f", l.State, l.Damage)
	}
}

// --- World-level laser ---

func TestLaserInputChargesOnPressFiresOnRelease(t *testing.T) {
	ts := NewTestSim(WithSeed(2), WithoutSpawns(), WithPowerUpTimer(PowerLaser, 10))
	id := ts.AddEnemy(EnemyBig, 400, 200)

	ts.Press(ActionLaser)
	ts.RunSeconds(1.0)
	if !ts.World.Laser().Charging() {
		t.Fatalf("laser state = %s, want charging", ts.World.Laser().State)
	}
	if ts.Enemy(id) == nil {
		t.Fatal("a charging laser must not hurt anything")
	}

	ts.Release()
	ts.RunFrames(2)
	if ts.Enemy(id) != nil {
		t.Fatal("enemy in the beam should die")
	}
	if ts.SimLog.CountCategory("laser", "fire") != 1 {
		t.Fatal("expected one laser/fire entry")
	}
	if ts.World.Score() != 30 {
		t.Fatalf("score = %d, want 30", ts.World.Score())
	}
}

func TestLaserKillScoresLikeBulletKill(t *testing.T) {
	bullet := NewTestSim(WithSeed(2), WithoutSpawns())
	bullet.AddEnemy(EnemyBig, 400, 200)
	bullet.AddBullet(400, 200, 0, 0)
	bullet.RunFrames(1)

	laser := NewTestSim(WithSeed(2), WithoutSpawns(), WithPowerUpTimer(PowerLaser, 10))
	laser.AddEnemy(EnemyBig, 400, 200)
	laser.Press(ActionLaser)
	laser.RunSeconds(1.0)
	laser.Release()
	laser.RunFrames(2)

	for name, w := range map[string]*World{"bullet": bullet.World, "laser": laser.World} {
		if w.Score() != 30 {
			t.Fatalf("%s kill score = %d, want 30", name, w.Score())
		}
		if w.Combo().Counter != 1 {
			t.Fatalf("%s kill combo = %d, want 1", name, w.Combo().Counter)
		}
		if w.Kills().Big != 1 {
			t.Fatalf("%s kill big count = %d, want 1", name, w.Kills().Big)
		}
	}
}

func TestLaserHeldKeyDoesNotRecharge(t *testing.T) {
	ts := NewTestSim(WithSeed(2), WithoutSpawns(), WithPowerUpTimer(PowerLaser, 10))
	ts.Press(ActionLaser)
	ts.RunSeconds(0.5)
	ts.Release()
	ts.RunSeconds(1.0) // fire and finish
	if ts.World.Laser().State != LaserIdle {
		t.Fatalf("state = %s, want idle", ts.World.Laser().State)
	}
	ts.Press(ActionLaser)
	ts.RunFrames(1)
	if !ts.World.Laser().Charging() {
		t.Fatal("a fresh press should start a new charge")
	}
	if ts.SimLog.CountCategory("laser", "charge") != 2 {
		t.Fatalf("charges = %d, want 2", ts.SimLog.CountCategory("laser", "charge"))
	}
}

func TestLaserQuickTapFizzles(t *testing.T) {
	ts := NewTestSim(WithSeed(2), WithoutSpawns(), WithPowerUpTimer(PowerLaser, 10))
	ts.Press(ActionLaser)
	ts.RunFrames(3)
	ts.Release()
	ts.RunFrames(1)
	if ts.World.Laser().State != LaserIdle {
		t.Fatalf("state = %s, want idle after a tap", ts.World.Laser().State)
	}
	if ts.SimLog.CountCategory("laser", "fizzle") != 1 {
		t.Fatal("expected a laser/fizzle entry")
	}
}

func TestLaserResetWhenPowerUpExpires(t *testing.T) {
	ts := NewTestSim(WithSeed(2), WithoutSpawns(), WithPowerUpTimer(PowerLaser, 0.5))
	ts.Press(ActionLaser)
	ts.RunSeconds(1.0)
	l := ts.World.Laser()
	if l.State != LaserIdle || l.Damage != DefaultConfig().LaserDamageBase {
		t.Fatalf("laser not reset on expiry: state=%s damage=%.1f", l.State, l.Damage)
	}
	if !ts.SimLog.HasEntry("laser", "expired", "") {
		t.Fatal("missing laser/expired")
	}
}

func TestLaserIgnoredWithoutPowerUp(t *testing.T) {
	ts := NewTestSim(WithSeed(2), WithoutSpawns())
	ts.Press(ActionLaser)
	ts.RunSeconds(0.5)
	if ts.World.Laser().State != LaserIdle {
		t.Fatal("laser charged without the power-up")
	}
}

// --- Scenario C: laser burns the boss by damage per second ---

func TestLaserDamagesBossPerSecond(t *testing.T) {
	ts := NewTestSim(WithSeed(4), WithoutSpawns(), WithPowerUpTimer(PowerLaser, 10))
	boss := ts.AddBoss(BossDestroyer, 400, 100)
	boss.MoveTimer = -1e6 // hold position
	boss.AttackTimer = -1e6

	ts.Press(ActionLaser)
	ts.RunSeconds(2.5) // full charge
	if boss.Health != boss.MaxHealth {
		t.Fatal("charging must not damage the boss")
	}
	ts.Release()
	ts.RunSeconds(1.0)

	dealt := boss.MaxHealth - boss.Health
	// 200 dps over a 0.5s burst, give or take one frame.
	if dealt < 200*0.5-200*FrameDT*1.5 || dealt > 200*0.5+200*FrameDT*1.5 {
		t.Fatalf("laser dealt %.1f, want about 100", dealt)
	}
	if !boss.Active || boss.Phase != 1 {
		t.Fatalf("boss active=%v phase=%d", boss.Active, boss.Phase)
	}
}
