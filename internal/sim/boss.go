package sim

import "math"

// BossType tags the boss variant.
type BossType int

const (
	BossDestroyer BossType = iota
	BossCarrier
	BossBehemoth
	bossTypeCount
)

func (t BossType) String() string {
	switch t {
	case BossDestroyer:
		return "destroyer"
	case BossCarrier:
		return "carrier"
	case BossBehemoth:
		return "behemoth"
	default:
		return "unknown"
	}
}

// --- Boss constants (reference pixels) ---

const (
	bossEntrySpeed  = 50.0  // px/s descent to the battle line
	bossBattleY     = 100.0 // battle line
	bossBulletSize  = 8.0
	bossPhase2Ratio = 0.50 // health fraction that starts phase 2
	bossPhase3Ratio = 0.25 // health fraction that starts phase 3
	bossMaxPhase    = 3
)

// bossParams bundles per-type boss parameters.
type bossParams struct {
	size        float64
	health      float64
	bonus       int        // flat score on destruction
	bulletSpeed float64    // px/s
	intervals   [3]float64 // seconds between volleys, per phase
	muzzles     []float64  // horizontal muzzle offsets from centre
}

var bossTable = [bossTypeCount]bossParams{
	BossDestroyer: {size: 60, health: 300, bonus: 1000, bulletSpeed: 200,
		intervals: [3]float64{0.8, 0.5, 0.35}, muzzles: []float64{-20, 20}},
	BossCarrier: {size: 80, health: 500, bonus: 1500, bulletSpeed: 150,
		intervals: [3]float64{1.2, 0.8, 0.6}, muzzles: []float64{-30, 0, 30}},
	BossBehemoth: {size: 100, health: 800, bonus: 2000, bulletSpeed: 180,
		intervals: [3]float64{1.0, 0.6, 0.45}, muzzles: []float64{-40, -20, 0, 20, 40}},
}

// Bonus is the flat score awarded when this boss type is destroyed.
func (t BossType) Bonus() int {
	if t < 0 || t >= bossTypeCount {
		return 0
	}
	return bossTable[t].bonus
}

// MaxHealth is the starting health of this boss type.
func (t BossType) MaxHealth() float64 {
	if t < 0 || t >= bossTypeCount {
		return 0
	}
	return bossTable[t].health
}

// Boss is the single large opponent. Phase only ever increases; health never
// drops below zero and reaching zero clears Active.
type Boss struct {
	ID            EntityID
	Pos           Vec2
	Vel           Vec2
	Size          float64
	Health        float64
	MaxHealth     float64
	Type          BossType
	Phase         int
	AttackTimer   float64 // seconds since the last volley
	AttackPattern float64 // running phase for Behemoth sweep
	MoveTimer     float64
	Active        bool
}

func newBoss(cfg Config, id EntityID, t BossType) *Boss {
	p := bossTable[t]
	size := cfg.scaleSize(p.size)
	return &Boss{
		ID:        id,
		Pos:       Vec2{X: cfg.Width / 2, Y: -size},
		Vel:       Vec2{Y: cfg.scaleSpeed(bossEntrySpeed)},
		Size:      size,
		Health:    p.health,
		MaxHealth: p.health,
		Type:      t,
		Phase:     1,
		Active:    true,
	}
}

func (b *Boss) Bounds() Rect { return RectCentered(b.Pos, b.Size) }

// HealthFraction is health over max health in [0, 1].
func (b *Boss) HealthFraction() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return clamp01(b.Health / b.MaxHealth)
}

// update moves the boss with its per-type pattern and advances its timers.
func (b *Boss) update(dt float64, cfg Config) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.AttackTimer += dt
	b.AttackPattern += dt
	b.MoveTimer += dt

	battleY := cfg.scaleSize(bossBattleY)
	if b.Pos.Y < battleY {
		b.Vel.Y = cfg.scaleSpeed(bossEntrySpeed)
	} else {
		b.Vel.Y = 0
		b.Pos.Y = battleY
	}

	switch b.Type {
	case BossDestroyer:
		// Patrol: every 2s head back toward the far side of centre.
		if b.MoveTimer > 2.0 {
			if b.Pos.X < cfg.Width/2 {
				b.Vel.X = cfg.scaleSpeed(100)
			} else {
				b.Vel.X = -cfg.scaleSpeed(100)
			}
			b.MoveTimer = 0
		}
	case BossCarrier:
		b.Vel.X = math.Sin(b.MoveTimer*0.5) * cfg.scaleSpeed(200)
	case BossBehemoth:
		if b.MoveTimer > 3.0 {
			if b.Vel.X > 0 {
				b.Vel.X = -cfg.scaleSpeed(80)
			} else {
				b.Vel.X = cfg.scaleSpeed(80)
			}
			b.MoveTimer = 0
		}
	}

	half := b.Size / 2
	b.Pos.X = clamp(b.Pos.X, half, cfg.Width-half)
}

// TakeDamage applies damage and re-evaluates the phase. It reports whether
// the phase advanced and whether this call destroyed the boss.
func (b *Boss) TakeDamage(dmg float64) (phaseChanged, destroyed bool) {
	if !b.Active || dmg <= 0 {
		return false, false
	}
	b.Health -= dmg
	if b.Health <= 0 {
		b.Health = 0
		b.Active = false
		return false, true
	}
	next := b.Phase
	switch {
	case b.Health <= b.MaxHealth*bossPhase3Ratio:
		next = 3
	case b.Health <= b.MaxHealth*bossPhase2Ratio:
		next = 2
	}
	if next > b.Phase {
		b.Phase = next
		return true, false
	}
	return false, false
}

// AttackInterval is the volley cadence for the current phase, shortened by
// aggressiveness.
func (b *Boss) AttackInterval(cfg Config) float64 {
	p := b.Phase
	if p < 1 {
		p = 1
	}
	if p > bossMaxPhase {
		p = bossMaxPhase
	}
	return bossTable[b.Type].intervals[p-1] / cfg.Aggressiveness
}

// volley computes the bullets the boss wants to fire this frame without
// touching any collection. It returns nil when the boss is not ready.
func (b *Boss) volley(cfg Config, rng randSource) []Bullet {
	if !b.Active || b.Pos.Y < 0 || b.AttackTimer < b.AttackInterval(cfg) {
		return nil
	}
	p := bossTable[b.Type]
	speed := cfg.scaleSpeed(p.bulletSpeed)
	size := cfg.scaleSize(bossBulletSize)
	out := make([]Bullet, 0, len(p.muzzles))
	for _, off := range p.muzzles {
		origin := b.Pos.Add(Vec2{X: cfg.scaleSize(off), Y: b.Size / 2})
		var vel Vec2
		switch b.Type {
		case BossDestroyer:
			if b.Phase == 1 {
				vel = Vec2{Y: speed}
			} else {
				a := randRange(rng, -0.3, 0.3)
				vel = Vec2{X: math.Sin(a) * speed, Y: math.Cos(a) * speed}
			}
		case BossCarrier:
			spread := 0.2
			if b.Phase > 1 {
				spread = 0.4
			}
			a := randRange(rng, -spread, spread)
			vel = Vec2{X: math.Sin(a) * speed, Y: math.Cos(a) * speed}
		case BossBehemoth:
			sweep := math.Sin(b.AttackPattern*2) * 0.5
			vel = Vec2{X: sweep * speed, Y: speed}
		}
		out = append(out, Bullet{Pos: origin, Vel: vel, Size: size, Active: true})
	}
	return out
}
