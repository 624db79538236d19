package sim

import "math/rand"

// TestSim is a headless harness used by tests. It wraps a World with
// deterministic seeding, scripted input and a shared SimLog.
type TestSim struct {
	World  *World
	SimLog *SimLog
	Input  Input

	cfg     Config
	rng     *rand.Rand
	noSpawn bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // config, seed, verbose: applied before the world exists
	simOptEntity                      // entities and timers: applied to the built world
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig replaces the default config.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.cfg = cfg }}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-frame verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithoutSpawns stops the spawn director so tests control every entity.
func WithoutSpawns() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.noSpawn = true }}
}

// WithLives sets the ships remaining.
func WithLives(n int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) { ts.World.lives = n }}
}

// WithPlayerAt moves the player.
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) { ts.World.player.Pos = Vec2{X: x, Y: y} }}
}

// WithEnemy places a stationary enemy of type t.
func WithEnemy(t EnemyType, x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) { ts.AddEnemy(t, x, y) }}
}

// WithBoss places a boss already on its battle line.
func WithBoss(t BossType, x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) { ts.AddBoss(t, x, y) }}
}

// WithPowerUpTimer starts a power-up as if just collected.
func WithPowerUpTimer(p PowerUpType, seconds float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.timers.PowerUps[p] = seconds
		if p == PowerShield {
			ts.World.player.Shielded = seconds > 0
		}
	}}
}

// WithScore sets the running score and combo as if earned.
func WithScore(score, combo int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		w := ts.World
		w.score = score
		w.director.LastBossScore = score
		for i := 0; i < combo; i++ {
			w.combo.Register(w.cfg)
		}
	}}
}

// NewTestSim constructs a TestSim in two ordered passes: infrastructure, then
// world contents. Pass WithoutSpawns to keep the director from adding entities.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:    DefaultConfig(),
		SimLog: NewSimLog(false),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.World = NewWorld(ts.cfg, ts.rng, LogTo(ts.SimLog))
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	return ts
}

// AddEnemy places a stationary enemy and returns its handle.
func (ts *TestSim) AddEnemy(t EnemyType, x, y float64) EntityID {
	w := ts.World
	e := newEnemy(w.cfg, w.newID(), t, x, w.rng)
	e.Pos.Y = y
	e.Vel = Vec2{}
	w.enemies = append(w.enemies, e)
	return e.ID
}

// AddBoss places a boss and returns it.
func (ts *TestSim) AddBoss(t BossType, x, y float64) *Boss {
	w := ts.World
	b := newBoss(w.cfg, w.newID(), t)
	b.Pos = Vec2{X: x, Y: y}
	b.Vel = Vec2{}
	w.boss = b
	return b
}

// AddBullet places a player bullet with the given velocity.
func (ts *TestSim) AddBullet(x, y, vx, vy float64) {
	w := ts.World
	w.bullets = append(w.bullets, Bullet{
		Pos: Vec2{X: x, Y: y}, Vel: Vec2{X: vx, Y: vy},
		Size: w.cfg.scaleSize(w.cfg.BulletSize), Active: true,
	})
}

// AddBossBullet places a boss bullet with the given velocity.
func (ts *TestSim) AddBossBullet(x, y, vx, vy float64) {
	w := ts.World
	w.bossBullets = append(w.bossBullets, Bullet{
		Pos: Vec2{X: x, Y: y}, Vel: Vec2{X: vx, Y: vy},
		Size: w.cfg.scaleSize(bossBulletSize), Active: true,
	})
}

// AddPowerUp places a pickup at rest.
func (ts *TestSim) AddPowerUp(t PowerUpType, x, y float64) {
	w := ts.World
	p := newPowerUp(w.cfg, t, x)
	p.Pos.Y = y
	p.Vel = Vec2{}
	w.powerUps = append(w.powerUps, p)
}

// Enemy looks up a live enemy by handle.
func (ts *TestSim) Enemy(id EntityID) *Enemy { return ts.World.enemyByID(id) }

// Press sets held actions for subsequent frames, replacing the previous set.
func (ts *TestSim) Press(actions ...Action) { ts.Input = InputOf(actions...) }

// Release clears all held actions.
func (ts *TestSim) Release() { ts.Input = Input{} }

// RunFrames advances n fixed frames with the current input.
func (ts *TestSim) RunFrames(n int) {
	for i := 0; i < n; i++ {
		ts.step()
	}
}

// RunSeconds advances whole frames covering d seconds.
func (ts *TestSim) RunSeconds(d float64) {
	ts.RunFrames(int(d/FrameDT + 0.5))
}

// RunUntil advances up to maxFrames, stopping early if predicate returns
// true. Returns the frame at which it was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		ts.step()
		if predicate(ts) {
			return ts.World.frame
		}
	}
	return -1
}

func (ts *TestSim) step() {
	if ts.noSpawn {
		ts.World.director.EnemyTimer = -1e9
		ts.World.director.PowerUpTimer = -1e9
		ts.World.director.LastBossScore = ts.World.score
	}
	ts.World.Step(FrameDT, ts.Input)
}
