package sim

import "fmt"

// laserInstructionTime is how long the laser how-to banner stays up after
// the first pickup of a Laser power-up.
const laserInstructionTime = 5.0

// Timers groups every countdown the world owns. All clamp at zero.
type Timers struct {
	PowerUps         [powerUpTypeCount]float64
	FireCooldown     float64
	BossWarning      float64
	LaserInstruction float64
	DeathExplosion   float64
	GameOverReveal   float64
}

// PowerUp returns the remaining seconds of a power-up.
func (t Timers) PowerUp(p PowerUpType) float64 {
	if p < 0 || p >= powerUpTypeCount {
		return 0
	}
	return t.PowerUps[p]
}

// KillCounts tallies destroyed opponents by type for one run.
type KillCounts struct {
	Normal     int
	Fast       int
	Big        int
	Zenith     int
	Destroyers int
	Carriers   int
	Behemoths  int
}

func (k *KillCounts) addEnemy(t EnemyType) {
	switch t {
	case EnemyNormal:
		k.Normal++
	case EnemyFast:
		k.Fast++
	case EnemyBig:
		k.Big++
	case EnemyZenith:
		k.Zenith++
	}
}

func (k *KillCounts) addBoss(t BossType) {
	switch t {
	case BossDestroyer:
		k.Destroyers++
	case BossCarrier:
		k.Carriers++
	case BossBehemoth:
		k.Behemoths++
	}
}

// Enemies is the number of non-boss kills.
func (k KillCounts) Enemies() int { return k.Normal + k.Fast + k.Big + k.Zenith }

// Bosses is the number of boss kills.
func (k KillCounts) Bosses() int { return k.Destroyers + k.Carriers + k.Behemoths }

// World is the whole simulation state for one session. It is not safe for
// concurrent use; the host steps it from a single goroutine.
type World struct {
	cfg   Config
	rng   randSource
	log   *SimLog
	frame int

	nextID  EntityID
	elapsed float64 // seconds of live play this run

	player      Player
	lives       int
	bullets     []Bullet
	bossBullets []Bullet
	enemies     []Enemy
	boss        *Boss
	powerUps    []PowerUp
	laser       Laser

	combo     Combo
	rank      string // last logged rank label
	score     int
	highScore int
	kills     KillCounts
	captures  int
	hits      int // hits taken this run
	pickups   int
	shots     int // laser beams fired

	timers   Timers
	director SpawnDirector
	fx       Effects

	capture       EntityID // Zenith currently pulling the player, 0 if none
	prevLaserHeld bool
	dying         bool
	gameOver      bool
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// LogTo records simulation events into l.
func LogTo(l *SimLog) WorldOption {
	return func(w *World) { w.log = l }
}

// StartHighScore seeds the high score loaded by the host.
func StartHighScore(n int) WorldOption {
	return func(w *World) { w.highScore = n }
}

// NewWorld builds a fresh session. cfg is copied and never changed; rng is
// the only randomness the world draws from.
func NewWorld(cfg Config, rng randSource, opts ...WorldOption) *World {
	if rng == nil {
		rng = NewRand(0)
	}
	w := &World{cfg: cfg, rng: rng, log: NewSimLog(false)}
	for _, o := range opts {
		o(w)
	}
	w.reset()
	return w
}

// reset reinitialises everything a run owns. Config, rng, log and the high
// score survive.
func (w *World) reset() {
	w.frame = 0
	w.nextID = 0
	w.elapsed = 0
	w.player = newPlayer(w.cfg)
	w.lives = w.cfg.Lives
	w.bullets = nil
	w.bossBullets = nil
	w.enemies = nil
	w.boss = nil
	w.powerUps = nil
	w.laser = newLaser(w.cfg)
	w.combo = newCombo()
	w.rank = ""
	w.score = 0
	w.kills = KillCounts{}
	w.captures = 0
	w.hits = 0
	w.pickups = 0
	w.shots = 0
	w.timers = Timers{}
	w.director = SpawnDirector{}
	w.fx = Effects{}
	w.capture = 0
	w.prevLaserHeld = false
	w.dying = false
	w.gameOver = false
}

// Restart begins a new run, keeping the high score. The log is cleared so it
// only ever holds the current run.
func (w *World) Restart() {
	if w.score > w.highScore {
		w.highScore = w.score
	}
	w.reset()
	w.log.Clear()
	w.log.Add(w.frame, "session", "restart", "", float64(w.highScore))
}

func (w *World) newID() EntityID {
	w.nextID++
	return w.nextID
}

// FrameDT is the fixed step hosts advance by, in seconds.
const FrameDT = 1.0 / 60.0

// Step advances the world by dt seconds with the given held input.
func (w *World) Step(dt float64, in Input) {
	if dt <= 0 {
		return
	}
	w.frame++
	if w.gameOver {
		tickDown(&w.timers.DeathExplosion, dt)
		w.fx.update(dt)
		return
	}
	if !w.dying {
		w.elapsed += dt
	}

	// 1. TIMERS: countdowns, combo lapse, power-up expiry.
	w.tickTimers(dt)

	// 2. MOVE: held directions become player velocity.
	w.applyMovement(in)

	// 3. FIRE: bullets on cooldown.
	w.resolveFire(in)

	// 4. LASER: charge on press, release on let-go.
	w.resolveLaserIntent(in)

	// 5. ADVANCE: every entity, then the Zenith pull.
	w.advanceEntities(dt)
	w.applyCapturePull(dt)

	// 6. SPAWN.
	w.runSpawnDirector(dt)

	// 7. COMBAT.
	w.resolveCombat(dt)

	// 8. CLEANUP: drop inactive entities.
	w.cleanup()

	// 9. DEATH SEQUENCE: reveal game over once the delay has run.
	w.advanceDeathSequence()
}

func (w *World) tickTimers(dt float64) {
	tickDown(&w.player.Invincible, dt)
	for i := range w.timers.PowerUps {
		tickDown(&w.timers.PowerUps[i], dt)
	}
	tickDown(&w.timers.FireCooldown, dt)
	tickDown(&w.timers.BossWarning, dt)
	tickDown(&w.timers.LaserInstruction, dt)
	tickDown(&w.timers.DeathExplosion, dt)
	tickDown(&w.timers.GameOverReveal, dt)

	if w.combo.tick(dt) {
		w.log.Add(w.frame, "combo", "reset", "timeout", 0)
		w.rank = ""
	}
	w.player.Shielded = w.timers.PowerUps[PowerShield] > 0

	if w.timers.PowerUps[PowerLaser] <= 0 && (w.laser.State != LaserIdle || len(w.laser.Particles) > 0) {
		w.laser.Reset(w.cfg)
		w.log.Add(w.frame, "laser", "expired", "", 0)
	}
	w.fx.update(dt)
}

func (w *World) applyMovement(in Input) {
	if w.dying || !w.player.Active || w.capture != 0 {
		w.player.Vel = Vec2{}
		return
	}
	speed := w.cfg.scaleSpeed(w.cfg.PlayerSpeed)
	v := in.moveDir().Scale(speed)
	if v.Len() > speed {
		v = v.Normalize().Scale(speed)
	}
	w.player.Vel = v
}

// FireCooldownFor is the delay after a shot, shortened while rapid fire runs.
func FireCooldownFor(cfg Config, rapid bool) float64 {
	cd := 1.0 / cfg.FireRate
	if rapid {
		cd *= cfg.RapidFireFactor
	}
	return cd
}

func (w *World) resolveFire(in Input) {
	if w.dying || !w.player.Active || !in.Held(ActionFire) || w.timers.FireCooldown > 0 {
		return
	}
	w.shoot()
	w.timers.FireCooldown = FireCooldownFor(w.cfg, w.timers.PowerUps[PowerRapidFire] > 0)
}

// shoot spawns one bullet, or three with triple shot.
func (w *World) shoot() {
	speed := w.cfg.scaleSpeed(w.cfg.BulletSpeed)
	size := w.cfg.scaleSize(w.cfg.BulletSize)
	mk := func(vx float64) Bullet {
		return Bullet{Pos: w.player.Pos, Vel: Vec2{X: vx, Y: -speed}, Size: size, Active: true}
	}
	w.bullets = append(w.bullets, mk(0))
	if w.timers.PowerUps[PowerTripleShot] > 0 {
		side := w.cfg.scaleSpeed(100)
		w.bullets = append(w.bullets, mk(-side), mk(side))
	}
}

func (w *World) resolveLaserIntent(in Input) {
	held := in.Held(ActionLaser)
	defer func() { w.prevLaserHeld = held }()
	if w.timers.PowerUps[PowerLaser] <= 0 || w.dying || !w.player.Active {
		return
	}
	switch {
	case held && !w.prevLaserHeld:
		if w.laser.StartCharging(w.player.Pos) {
			w.log.Add(w.frame, "laser", "charge", "", 0)
		}
	case !held && w.prevLaserHeld && w.laser.Charging():
		charge := w.laser.ChargeElapsed
		if w.laser.Release(w.cfg) {
			w.shots++
			w.log.Add(w.frame, "laser", "fire", fmt.Sprintf("damage=%.0f width=%.1f", w.laser.Damage, w.laser.Width), charge)
		} else {
			w.log.Add(w.frame, "laser", "fizzle", "", charge)
		}
	}
}

func (w *World) advanceEntities(dt float64) {
	if w.player.Active && !w.dying && w.capture == 0 {
		w.player.update(dt, w.cfg)
	}
	for i := range w.bullets {
		w.bullets[i].update(dt, w.cfg)
	}
	for i := range w.enemies {
		e := &w.enemies[i]
		prev := ZenithIdle
		if e.Zenith != nil {
			prev = e.Zenith.Phase
		}
		e.update(dt, w.cfg, w.rng)
		if e.Zenith != nil && e.Zenith.Phase != prev {
			w.log.Add(w.frame, "zenith", "state", fmt.Sprintf("%s %s → %s", e.label(), prev, e.Zenith.Phase), 0)
		}
	}
	if w.boss != nil && w.boss.Active {
		w.boss.update(dt, w.cfg)
		// Plan the volley from boss state, then apply it to the collection.
		if volley := w.boss.volley(w.cfg, w.rng); volley != nil {
			w.bossBullets = append(w.bossBullets, volley...)
			w.boss.AttackTimer = 0
		}
	}
	for i := range w.bossBullets {
		w.bossBullets[i].update(dt, w.cfg)
	}
	for i := range w.powerUps {
		w.powerUps[i].update(dt, w.cfg)
	}
	if w.timers.PowerUps[PowerLaser] > 0 {
		w.laser.update(dt, w.cfg, w.player.Pos, w.rng)
	}
	w.log.AddVerbose(w.frame, "move", "position", fmt.Sprintf("(%.1f,%.1f)", w.player.Pos.X, w.player.Pos.Y), 0)
}

// applyCapturePull drags a captured player toward the capturing Zenith.
// Reaching its lower edge or the top of the play area is a hit; losing the
// beam first releases with no penalty.
func (w *World) applyCapturePull(dt float64) {
	if w.capture == 0 {
		return
	}
	z := w.enemyByID(w.capture)
	if z == nil || !z.BeamActive() || !w.player.Active || w.dying {
		w.releaseCapture("beam_ended")
		return
	}
	to := z.Pos.Sub(w.player.Pos)
	step := w.cfg.scaleSpeed(w.cfg.ZenithPullSpeed) * dt
	if d := to.Len(); d <= step {
		w.player.Pos = z.Pos
	} else {
		w.player.Pos = w.player.Pos.Add(to.Normalize().Scale(step))
	}
	w.player.Vel = Vec2{}

	top := w.player.Pos.Y - w.player.Size/2
	if top <= z.Pos.Y+z.Size/2 || top <= 0 {
		w.releaseCapture("reached")
		w.hitPlayer("zenith_pull")
	}
}

func (w *World) releaseCapture(reason string) {
	if w.capture == 0 {
		return
	}
	if z := w.enemyByID(w.capture); z != nil && z.Zenith != nil {
		z.Zenith.Holding = false
	}
	w.log.Add(w.frame, "zenith", "release", reason, float64(w.capture))
	w.capture = 0
}

// enemyByID finds a live enemy by handle, or nil.
func (w *World) enemyByID(id EntityID) *Enemy {
	if id == 0 {
		return nil
	}
	for i := range w.enemies {
		if w.enemies[i].ID == id && w.enemies[i].Active {
			return &w.enemies[i]
		}
	}
	return nil
}

// hitPlayer applies a hit: lose a ship and respawn, or start the death
// sequence on the last one. It is a no-op while the player is protected.
func (w *World) hitPlayer(cause string) bool {
	if w.dying || !w.player.Vulnerable() {
		return false
	}
	w.releaseCapture("player_hit")
	if w.combo.Counter > 0 {
		w.log.Add(w.frame, "combo", "reset", "player_hit", float64(w.combo.Counter))
	}
	w.combo.Reset()
	w.rank = ""
	w.lives--
	w.hits++
	w.log.Add(w.frame, "player", "hit", cause, float64(w.lives))
	if w.lives > 0 {
		w.player.Pos = w.cfg.PlayerSpawn()
		w.player.Vel = Vec2{}
		w.player.Invincible = w.cfg.InvincibleTime
		w.fx.shake(shakePlayerHit)
		return true
	}
	w.startDeathSequence()
	return true
}

func (w *World) startDeathSequence() {
	w.lives = 0
	w.dying = true
	w.player.Active = false
	w.player.Vel = Vec2{}
	w.laser.Reset(w.cfg)
	w.fx.DeathBurst = append(w.fx.DeathBurst, burst(w.rng, w.player.Pos, deathBurstCount, 80, 400, 1.0, 3.0)...)
	w.fx.explode(w.rng, w.player.Pos)
	w.fx.shake(shakeBossDeath)
	w.timers.DeathExplosion = w.cfg.DeathExplosionTime
	w.timers.GameOverReveal = w.cfg.GameOverDelay
	w.log.Add(w.frame, "player", "death_sequence", "", float64(w.score))
}

func (w *World) advanceDeathSequence() {
	if !w.dying || w.gameOver || w.timers.GameOverReveal > 0 {
		return
	}
	w.gameOver = true
	if w.score > w.highScore {
		w.highScore = w.score
	}
	w.log.Add(w.frame, "player", "game_over", "", float64(w.score))
}

// cleanup drops every inactive entity and any capture that no longer
// points at a live, firing Zenith.
func (w *World) cleanup() {
	w.bullets = retainBullets(w.bullets)
	w.bossBullets = retainBullets(w.bossBullets)

	enemies := w.enemies[:0]
	for _, e := range w.enemies {
		if e.Active {
			enemies = append(enemies, e)
		}
	}
	w.enemies = enemies

	powerUps := w.powerUps[:0]
	for _, p := range w.powerUps {
		if p.Active {
			powerUps = append(powerUps, p)
		}
	}
	w.powerUps = powerUps

	if w.boss != nil && !w.boss.Active {
		w.boss = nil
	}
	if w.capture != 0 {
		if z := w.enemyByID(w.capture); z == nil {
			w.releaseCapture("zenith_gone")
		} else if !z.BeamActive() {
			w.releaseCapture("beam_ended")
		}
	}
}

func retainBullets(bs []Bullet) []Bullet {
	kept := bs[:0]
	for _, b := range bs {
		if b.Active {
			kept = append(kept, b)
		}
	}
	return kept
}

func (e *Enemy) label() string {
	return fmt.Sprintf("%s#%d", e.Type, e.ID)
}
