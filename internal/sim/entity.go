package sim

import "math"

// EntityID is a stable, never-reused handle for an entity in one World.
// Zero means "none".
type EntityID uint64

// --- Player ---

// Player is the ship the input drives.
type Player struct {
	Pos        Vec2
	Vel        Vec2
	Size       float64
	Active     bool
	Invincible float64 // seconds of hit immunity left
	Shielded   bool    // mirrors the Shield power-up timer each frame
}

func newPlayer(cfg Config) Player {
	return Player{
		Pos:    cfg.PlayerSpawn(),
		Size:   cfg.scaleSize(cfg.PlayerSize),
		Active: true,
	}
}

func (p *Player) Bounds() Rect { return RectCentered(p.Pos, p.Size) }

// Vulnerable reports whether a contact would count as a hit.
func (p *Player) Vulnerable() bool {
	return p.Active && p.Invincible <= 0 && !p.Shielded
}

func (p *Player) update(dt float64, cfg Config) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	half := p.Size / 2
	p.Pos.X = clamp(p.Pos.X, half, cfg.Width-half)
	p.Pos.Y = clamp(p.Pos.Y, half, cfg.Height-half)
}

// --- Bullet ---

// Bullet is a player or boss projectile. Velocity is fixed at spawn.
type Bullet struct {
	Pos    Vec2
	Vel    Vec2
	Size   float64
	Active bool
}

func (b *Bullet) Bounds() Rect { return RectCentered(b.Pos, b.Size) }

func (b *Bullet) update(dt float64, cfg Config) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	if b.Pos.Y < -b.Size || b.Pos.Y > cfg.Height+b.Size ||
		b.Pos.X < -b.Size || b.Pos.X > cfg.Width+b.Size {
		b.Active = false
	}
}

// --- Enemy ---

// EnemyType tags the enemy variant.
type EnemyType int

const (
	EnemyNormal EnemyType = iota
	EnemyFast
	EnemyBig
	EnemyZenith
	enemyTypeCount
)

func (t EnemyType) String() string {
	switch t {
	case EnemyNormal:
		return "normal"
	case EnemyFast:
		return "fast"
	case EnemyBig:
		return "big"
	case EnemyZenith:
		return "zenith"
	default:
		return "unknown"
	}
}

// enemyParams bundles the per-type spawn parameters (reference pixels).
type enemyParams struct {
	size  float64
	speed float64 // initial downward speed
	score int     // base kill score before the combo multiplier
}

var enemyTable = [enemyTypeCount]enemyParams{
	EnemyNormal: {size: 25, speed: 150, score: 10},
	EnemyFast:   {size: 15, speed: 300, score: 10},
	EnemyBig:    {size: 40, speed: 80, score: 30},
	EnemyZenith: {size: 30, speed: zenithDriftDown, score: 50},
}

// BaseScore is the kill score before the combo multiplier.
func (t EnemyType) BaseScore() int {
	if t < 0 || t >= enemyTypeCount {
		return 0
	}
	return enemyTable[t].score
}

// Enemy is a descending opponent. Only Zenith enemies carry Zenith state.
type Enemy struct {
	ID     EntityID
	Pos    Vec2
	Vel    Vec2
	Size   float64
	Active bool
	Type   EnemyType
	Zenith *ZenithState
}

func newEnemy(cfg Config, id EntityID, t EnemyType, x float64, rng randSource) Enemy {
	p := enemyTable[t]
	size := cfg.scaleSize(p.size)
	e := Enemy{
		ID:     id,
		Pos:    Vec2{X: x, Y: -size},
		Vel:    Vec2{Y: cfg.scaleSpeed(p.speed)},
		Size:   size,
		Active: true,
		Type:   t,
	}
	if t == EnemyZenith {
		e.Zenith = newZenithState(rng)
	}
	return e
}

func (e *Enemy) Bounds() Rect { return RectCentered(e.Pos, e.Size) }

// BeamActive reports whether this enemy currently projects a Zenith beam.
func (e *Enemy) BeamActive() bool {
	return e.Active && e.Zenith != nil && e.Zenith.BeamActive
}

// update advances one enemy. Zenith enemies run their state machine; others
// fly straight down. Leaving the bottom of the play area deactivates.
func (e *Enemy) update(dt float64, cfg Config, rng randSource) {
	if e.Zenith != nil {
		e.Zenith.update(e, dt, cfg, rng)
	}
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	if e.Zenith != nil {
		half := e.Size / 2
		e.Pos.X = clamp(e.Pos.X, half, cfg.Width-half)
	}
	if e.Pos.Y > cfg.Height+e.Size {
		e.Active = false
	}
}

// --- PowerUp ---

// PowerUpType tags which timed ability a pickup grants.
type PowerUpType int

const (
	PowerRapidFire PowerUpType = iota
	PowerTripleShot
	PowerShield
	PowerLaser
	powerUpTypeCount
)

func (t PowerUpType) String() string {
	switch t {
	case PowerRapidFire:
		return "rapid_fire"
	case PowerTripleShot:
		return "triple_shot"
	case PowerShield:
		return "shield"
	case PowerLaser:
		return "laser"
	default:
		return "unknown"
	}
}

const (
	powerUpSize      = 30.0
	powerUpFallSpeed = 100.0
	powerUpPulseRate = 3.0 // rad/s, cosmetic
)

// PowerUp is a falling pickup.
type PowerUp struct {
	Pos    Vec2
	Vel    Vec2
	Size   float64
	Type   PowerUpType
	Active bool
	Pulse  float64 // cosmetic phase
}

func newPowerUp(cfg Config, t PowerUpType, x float64) PowerUp {
	size := cfg.scaleSize(powerUpSize)
	return PowerUp{
		Pos:    Vec2{X: x, Y: -size},
		Vel:    Vec2{Y: cfg.scaleSpeed(powerUpFallSpeed)},
		Size:   size,
		Type:   t,
		Active: true,
	}
}

func (p *PowerUp) Bounds() Rect { return RectCentered(p.Pos, p.Size) }

// PulseAlpha is the cosmetic opacity in [0.4, 1.0].
func (p *PowerUp) PulseAlpha() float64 {
	return math.Sin(p.Pulse)*0.3 + 0.7
}

func (p *PowerUp) update(dt float64, cfg Config) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Pulse += dt * powerUpPulseRate
	if p.Pos.Y > cfg.Height+p.Size {
		p.Active = false
	}
}
