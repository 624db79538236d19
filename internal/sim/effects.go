package sim

import (
	"fmt"
	"image/color"
	"math"
)

// --- Effect constants ---

const (
	explosionDuration  = 0.4 // s an explosion is kept alive
	explosionParticles = 20
	particleDrag       = 0.98 // velocity retained per update
	comboTextLife      = 1.5  // s
	comboTextRise      = 50.0 // px/s initial upward drift
	deathBurstCount    = 120
	shakeDecay         = 5.0 // shake units lost per second

	shakeEnemyKill  = 0.1
	shakeBossHit    = 0.15
	shakePlayerHit  = 0.2
	shakeBossDeath  = 0.3
	bossDeathBlasts = 5
)

var explosionPalette = [...]color.RGBA{
	{R: 255, G: 204, B: 51, A: 255}, // yellow
	{R: 255, G: 102, B: 0, A: 255},  // orange
	{R: 255, G: 51, B: 0, A: 255},   // red
}

// Particle is a cosmetic mote with a finite life.
type Particle struct {
	Pos     Vec2
	Vel     Vec2
	Life    float64
	MaxLife float64
	Color   color.RGBA
	Size    float64
}

func newParticle(pos, vel Vec2, life float64, c color.RGBA, size float64) Particle {
	return Particle{Pos: pos, Vel: vel, Life: life, MaxLife: life, Color: c, Size: size}
}

func (p *Particle) Dead() bool { return p.Life <= 0 }

// Alpha is remaining life as a fraction in [0, 1].
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return clamp01(p.Life / p.MaxLife)
}

func (p *Particle) update(dt float64) {
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Vel = p.Vel.Scale(particleDrag)
	p.Life -= dt
}

// updateParticles advances every particle and drops the dead ones in place.
func updateParticles(ps []Particle, dt float64) []Particle {
	kept := ps[:0]
	for i := range ps {
		ps[i].update(dt)
		if !ps[i].Dead() {
			kept = append(kept, ps[i])
		}
	}
	return kept
}

// burst creates n particles flying outward from pos.
func burst(rng randSource, pos Vec2, n int, minSpeed, maxSpeed, minLife, maxLife float64) []Particle {
	out := make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		a := randRange(rng, 0, 2*math.Pi)
		s := randRange(rng, minSpeed, maxSpeed)
		c := explosionPalette[rng.Intn(len(explosionPalette))]
		out = append(out, newParticle(pos,
			Vec2{X: math.Cos(a) * s, Y: math.Sin(a) * s},
			randRange(rng, minLife, maxLife), c, randRange(rng, 2, 6)))
	}
	return out
}

// Explosion is a short-lived particle burst requested by combat.
type Explosion struct {
	Pos       Vec2
	Timer     float64
	Particles []Particle
}

func newExplosion(rng randSource, pos Vec2) Explosion {
	return Explosion{Pos: pos, Particles: burst(rng, pos, explosionParticles, 50, 200, 0.5, 1.5)}
}

func (e *Explosion) Done() bool { return e.Timer > explosionDuration }

// ComboText is the floating "NxM!" popup shown on chained kills.
type ComboText struct {
	Pos  Vec2
	Vel  Vec2
	Life float64
	Text string
}

func newComboText(pos Vec2, counter int, mult float64) ComboText {
	return ComboText{
		Pos:  pos,
		Vel:  Vec2{Y: -comboTextRise},
		Life: comboTextLife,
		Text: fmt.Sprintf("%dx%.1f!", counter, mult),
	}
}

// Alpha fades the popup over its life.
func (c *ComboText) Alpha() float64 { return clamp01(c.Life / comboTextLife) }

// Effects holds every cosmetic the world produces. None of it feeds back
// into scoring or collision.
type Effects struct {
	Explosions []Explosion
	ComboTexts []ComboText
	DeathBurst []Particle
	Shake      float64
}

func (fx *Effects) explode(rng randSource, pos Vec2) {
	fx.Explosions = append(fx.Explosions, newExplosion(rng, pos))
}

func (fx *Effects) shake(amount float64) {
	if amount > fx.Shake {
		fx.Shake = amount
	}
}

// ShakeOffset is a random jitter for the renderer, scaled by the shake level.
func (fx *Effects) ShakeOffset(rng randSource) Vec2 {
	if fx.Shake <= 0 {
		return Vec2{}
	}
	m := fx.Shake * 10
	return Vec2{X: randRange(rng, -m, m), Y: randRange(rng, -m, m)}
}

func (fx *Effects) update(dt float64) {
	tickDown(&fx.Shake, dt*shakeDecay)

	kept := fx.Explosions[:0]
	for i := range fx.Explosions {
		e := &fx.Explosions[i]
		e.Timer += dt
		e.Particles = updateParticles(e.Particles, dt)
		if !e.Done() {
			kept = append(kept, *e)
		}
	}
	fx.Explosions = kept

	texts := fx.ComboTexts[:0]
	for i := range fx.ComboTexts {
		c := &fx.ComboTexts[i]
		c.Pos = c.Pos.Add(c.Vel.Scale(dt))
		c.Vel.Y -= 20 * dt
		c.Life -= dt
		if c.Life > 0 {
			texts = append(texts, *c)
		}
	}
	fx.ComboTexts = texts

	fx.DeathBurst = updateParticles(fx.DeathBurst, dt)
}
