package sim

import "math"

// ZenithPhase is the beam cycle state of a Zenith enemy.
type ZenithPhase int

const (
	ZenithIdle ZenithPhase = iota
	ZenithCharging
	ZenithFiring
	ZenithCooldown
)

func (p ZenithPhase) String() string {
	switch p {
	case ZenithIdle:
		return "idle"
	case ZenithCharging:
		return "charging"
	case ZenithFiring:
		return "firing"
	case ZenithCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// --- Zenith constants (reference pixels) ---

const (
	zenithIdleMin     = 2.0   // s, shortest idle drift
	zenithIdleMax     = 4.0   // s, longest idle drift
	zenithZigZagSpeed = 120.0 // px/s peak horizontal drift
	zenithZigZagRate  = 3.0   // rad/s phase advance
	zenithDriftDown   = 20.0  // px/s while idle or cooling down
	zenithEntrySpeed  = 120.0 // px/s until fully on screen
	zenithBeamWidth   = 24.0
)

// ZenithState is the extension record only Zenith enemies carry.
// BeamActive is true exactly while Phase == ZenithFiring.
type ZenithState struct {
	Phase      ZenithPhase
	Timer      float64 // countdown to the next phase
	ZigZag     float64 // drift phase angle
	BeamActive bool
	Holding    bool // this Zenith's beam has captured the player
}

func newZenithState(rng randSource) *ZenithState {
	return &ZenithState{
		Phase:  ZenithIdle,
		Timer:  randRange(rng, zenithIdleMin, zenithIdleMax),
		ZigZag: randRange(rng, 0, 2*math.Pi),
	}
}

// update drives the drift and the phase countdown. It sets e.Vel; the
// caller integrates position.
func (z *ZenithState) update(e *Enemy, dt float64, cfg Config, rng randSource) {
	switch z.Phase {
	case ZenithIdle, ZenithCooldown:
		z.ZigZag += dt * zenithZigZagRate
		down := zenithDriftDown
		if e.Pos.Y < e.Size {
			down = zenithEntrySpeed
		}
		e.Vel = Vec2{
			X: math.Sin(z.ZigZag) * cfg.scaleSpeed(zenithZigZagSpeed),
			Y: cfg.scaleSpeed(down),
		}
	case ZenithCharging, ZenithFiring:
		e.Vel = Vec2{}
	}

	z.Timer -= dt
	if z.Timer <= 0 {
		z.advance(cfg, rng)
	}
}

// advance moves to the next phase of the cycle
// Idle -> Charging -> Firing -> Cooldown -> Idle.
func (z *ZenithState) advance(cfg Config, rng randSource) {
	switch z.Phase {
	case ZenithIdle:
		z.Phase = ZenithCharging
		z.Timer = cfg.ZenithChargeTime
	case ZenithCharging:
		z.Phase = ZenithFiring
		z.Timer = cfg.ZenithBeamTime
	case ZenithFiring:
		z.Phase = ZenithCooldown
		z.Timer = cfg.ZenithCooldown
	default:
		z.Phase = ZenithIdle
		z.Timer = randRange(rng, zenithIdleMin, zenithIdleMax)
	}
	z.BeamActive = z.Phase == ZenithFiring
	if !z.BeamActive {
		z.Holding = false
	}
}

// BeamRect is the downward strip the beam covers, from the Zenith's lower
// edge to the bottom of the play area. Empty when the beam is off.
func (e *Enemy) BeamRect(cfg Config) Rect {
	if !e.BeamActive() {
		return Rect{}
	}
	w := cfg.scaleSize(zenithBeamWidth)
	top := e.Pos.Y + e.Size/2
	return Rect{X: e.Pos.X - w/2, Y: top, W: w, H: cfg.Height - top}
}
