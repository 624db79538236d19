package sim

import "math"

// --- Spawn director constants ---

const (
	enemySpawnInterval   = 0.7  // s between enemy batches at aggressiveness 1
	enemyBatchBase       = 5    // enemies per batch at aggressiveness 1, reference area
	powerUpSpawnInterval = 8.0  // s between power-ups at aggressiveness 1
	zenithChancePerAggr  = 0.05 // Zenith probability per unit of aggressiveness
	zenithChanceCap      = 0.20
	bossWarningTime      = 3.0 // s the boss warning banner is shown
)

// Non-Zenith enemy mix: 60% normal, 20% fast, 20% big.
var enemyMix = []weighted[EnemyType]{
	{value: EnemyNormal, weight: 6},
	{value: EnemyFast, weight: 2},
	{value: EnemyBig, weight: 2},
}

// SpawnDirector decides when and what to create. It only owns timers; the
// World turns its decisions into entities.
type SpawnDirector struct {
	EnemyTimer    float64 // seconds since the last enemy batch
	PowerUpTimer  float64 // seconds since the last power-up
	LastBossScore int     // score at the last boss spawn
}

// EnemyInterval is the batch cadence after aggressiveness scaling.
func EnemyInterval(cfg Config) float64 {
	return enemySpawnInterval / cfg.Aggressiveness
}

// PowerUpInterval is the power-up cadence after aggressiveness scaling.
func PowerUpInterval(cfg Config) float64 {
	return powerUpSpawnInterval / cfg.Aggressiveness
}

// BatchSize is how many enemies one batch creates: it grows with
// aggressiveness and with play area relative to the reference resolution.
func BatchSize(cfg Config) int {
	n := int(math.Round(enemyBatchBase * cfg.Aggressiveness * cfg.areaScale()))
	if n < 1 {
		n = 1
	}
	return n
}

// ZenithChance is the per-enemy probability of a Zenith.
func ZenithChance(cfg Config) float64 {
	return math.Min(zenithChancePerAggr*cfg.Aggressiveness, zenithChanceCap)
}

// BossScoreStep is the score gap between boss spawns.
func BossScoreStep(cfg Config) int {
	step := int(float64(cfg.BossSpawnStep) / cfg.Aggressiveness)
	if step < 1 {
		step = 1
	}
	return step
}

// pickEnemyType rolls the Zenith chance first, then the fixed mix.
func pickEnemyType(cfg Config, rng randSource) EnemyType {
	if rng.Float64() < ZenithChance(cfg) {
		return EnemyZenith
	}
	return chooseWeighted(rng, enemyMix)
}

func pickPowerUpType(rng randSource) PowerUpType {
	return PowerUpType(rng.Intn(int(powerUpTypeCount)))
}

func pickBossType(rng randSource) BossType {
	return BossType(rng.Intn(int(bossTypeCount)))
}

// enemyBatchDue advances the enemy timer and reports whether a batch fires.
func (d *SpawnDirector) enemyBatchDue(dt float64, cfg Config) bool {
	d.EnemyTimer += dt
	if d.EnemyTimer < EnemyInterval(cfg) {
		return false
	}
	d.EnemyTimer = 0
	return true
}

// powerUpDue advances the power-up timer and reports whether one spawns.
func (d *SpawnDirector) powerUpDue(dt float64, cfg Config) bool {
	d.PowerUpTimer += dt
	if d.PowerUpTimer < PowerUpInterval(cfg) {
		return false
	}
	d.PowerUpTimer = 0
	return true
}

// bossDue reports whether the score has cleared the next boss threshold while
// no boss is live. It records the spawn score when it fires.
func (d *SpawnDirector) bossDue(score int, bossLive bool, cfg Config) bool {
	if bossLive || score < d.LastBossScore+BossScoreStep(cfg) {
		return false
	}
	d.LastBossScore = score
	return true
}

// spawnEnemies creates one batch across the top edge.
func (w *World) spawnEnemies() {
	n := BatchSize(w.cfg)
	for i := 0; i < n; i++ {
		t := pickEnemyType(w.cfg, w.rng)
		margin := w.cfg.scaleSize(enemyTable[t].size)
		x := randRange(w.rng, margin, w.cfg.Width-margin)
		e := newEnemy(w.cfg, w.newID(), t, x, w.rng)
		w.enemies = append(w.enemies, e)
		if t == EnemyZenith {
			w.log.Add(w.frame, "spawn", "zenith", e.label(), 0)
		}
	}
}

func (w *World) spawnPowerUp() {
	t := pickPowerUpType(w.rng)
	margin := w.cfg.scaleSize(50)
	x := randRange(w.rng, margin, w.cfg.Width-margin)
	w.powerUps = append(w.powerUps, newPowerUp(w.cfg, t, x))
	w.log.Add(w.frame, "spawn", "powerup", t.String(), 0)
}

func (w *World) spawnBoss() {
	t := pickBossType(w.rng)
	w.boss = newBoss(w.cfg, w.newID(), t)
	w.timers.BossWarning = bossWarningTime
	w.log.Add(w.frame, "spawn", "boss", t.String(), float64(w.score))
}

// runSpawnDirector is phase 6 of Step.
func (w *World) runSpawnDirector(dt float64) {
	if w.director.enemyBatchDue(dt, w.cfg) {
		w.spawnEnemies()
	}
	if w.director.powerUpDue(dt, w.cfg) {
		w.spawnPowerUp()
	}
	if w.director.bossDue(w.score, w.boss != nil && w.boss.Active, w.cfg) {
		w.spawnBoss()
	}
}
