package sim

import (
	"image/color"
	"math"
)

// LaserState is the charge/fire cycle of the laser weapon.
type LaserState int

const (
	LaserIdle LaserState = iota
	LaserCharging
	LaserFiring
)

func (s LaserState) String() string {
	switch s {
	case LaserIdle:
		return "idle"
	case LaserCharging:
		return "charging"
	case LaserFiring:
		return "firing"
	default:
		return "unknown"
	}
}

var (
	laserColorBase    = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	laserColorCharged = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

const laserParticleDelay = 0.1 // s of charge before particles start

// Laser is the player's charge-and-release beam weapon. Charging and firing
// are mutually exclusive by construction: both derive from State.
type Laser struct {
	State           LaserState
	ChargeElapsed   float64
	FireElapsed     float64
	MaxFireDuration float64
	Damage          float64 // per second while firing
	Width           float64
	Color           color.RGBA
	Anchor          Vec2
	Particles       []Particle
}

func newLaser(cfg Config) Laser {
	return Laser{
		State:           LaserIdle,
		MaxFireDuration: cfg.LaserFireTime,
		Damage:          cfg.LaserDamageBase,
		Width:           cfg.scaleSize(cfg.LaserWidthBase),
		Color:           laserColorBase,
	}
}

func (l *Laser) Charging() bool { return l.State == LaserCharging }
func (l *Laser) Firing() bool { return l.State == LaserFiring }

// Reset returns the weapon to its defaults regardless of state.
func (l *Laser) Reset(cfg Config) {
	*l = newLaser(cfg)
}

// StartCharging begins a charge at anchor. Ignored unless idle.
func (l *Laser) StartCharging(anchor Vec2) bool {
	if l.State != LaserIdle {
		return false
	}
	l.State = LaserCharging
	l.ChargeElapsed = 0
	l.Anchor = anchor
	l.Particles = l.Particles[:0]
	return true
}

// Release handles the fire signal. A charge shorter than the minimum fizzles
// back to idle with no beam.
func (l *Laser) Release(cfg Config) (fired bool) {
	if l.State != LaserCharging {
		return false
	}
	if l.ChargeElapsed < cfg.LaserMinCharge {
		l.Reset(cfg)
		return false
	}
	l.State = LaserFiring
	l.FireElapsed = 0
	return true
}

// ChargeProgress is elapsed charge over full charge time, capped at 1.
func (l *Laser) ChargeProgress(cfg Config) float64 {
	return math.Min(l.ChargeElapsed/cfg.LaserChargeTime, 1)
}

func (l *Laser) applyCharge(cfg Config) {
	t := l.ChargeProgress(cfg)
	l.Damage = lerp(cfg.LaserDamageBase, cfg.LaserDamageMax, t)
	l.Width = cfg.scaleSize(lerp(cfg.LaserWidthBase, cfg.LaserWidthMax, t))
	l.Color = lerpRGBA(laserColorBase, laserColorCharged, t)
}

// update advances the weapon; anchor is the player's current position.
func (l *Laser) update(dt float64, cfg Config, anchor Vec2, rng randSource) {
	switch l.State {
	case LaserCharging:
		l.ChargeElapsed += dt
		l.Anchor = anchor
		l.applyCharge(cfg)
		if l.ChargeElapsed > laserParticleDelay {
			l.spawnChargeParticles(rng)
		}
	case LaserFiring:
		l.Anchor = anchor
		l.FireElapsed += dt
		if l.FireElapsed >= l.MaxFireDuration {
			l.State = LaserIdle
			l.FireElapsed = 0
			l.ChargeElapsed = 0
		}
	}
	l.Particles = updateParticles(l.Particles, dt)
}

// spawnChargeParticles adds two motes converging on the anchor.
func (l *Laser) spawnChargeParticles(rng randSource) {
	for i := 0; i < 2; i++ {
		a := randRange(rng, 0, 2*math.Pi)
		d := randRange(rng, 20, 40)
		pos := l.Anchor.Add(Vec2{X: math.Cos(a) * d, Y: math.Sin(a) * d})
		vel := l.Anchor.Sub(pos).Normalize().Scale(randRange(rng, 50, 150))
		l.Particles = append(l.Particles, newParticle(pos, vel, randRange(rng, 0.3, 0.8), l.Color, randRange(rng, 2, 6)))
	}
}

// Footprint is the vertical strip from the anchor to the top of the play
// area. Empty unless firing.
func (l *Laser) Footprint() Rect {
	if l.State != LaserFiring {
		return Rect{}
	}
	return Rect{X: l.Anchor.X - l.Width/2, Y: 0, W: l.Width, H: l.Anchor.Y}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(lerp(float64(x), float64(y), t)))
	}
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}
