package sim

import "fmt"

const playerBulletDamage = 10.0 // boss health per player bullet

// resolveCombat runs every overlap test for the frame in a fixed order. Each
// pass only sees entities still active after the passes before it.
func (w *World) resolveCombat(dt float64) {
	w.resolveBulletsVsEnemies()
	w.resolveBulletsVsBoss()
	w.resolveLaser(dt)
	w.acquireCapture()
	w.resolvePickups()
	w.resolvePlayerHits()
}

// resolveBulletsVsEnemies consumes each bullet on the first enemy it touches.
func (w *World) resolveBulletsVsEnemies() {
	for bi := range w.bullets {
		b := &w.bullets[bi]
		if !b.Active {
			continue
		}
		bb := b.Bounds()
		for ei := range w.enemies {
			e := &w.enemies[ei]
			if !e.Active || !bb.Overlaps(e.Bounds()) {
				continue
			}
			b.Active = false
			w.killEnemy(e, "bullet")
			break
		}
	}
}

func (w *World) resolveBulletsVsBoss() {
	for bi := range w.bullets {
		if w.boss == nil || !w.boss.Active {
			return
		}
		b := &w.bullets[bi]
		if !b.Active || !b.Bounds().Overlaps(w.boss.Bounds()) {
			continue
		}
		b.Active = false
		w.fx.explode(w.rng, b.Pos)
		w.damageBoss(playerBulletDamage, "bullet")
	}
}

// resolveLaser kills every enemy in the beam and burns the boss for
// damage-per-second times dt.
func (w *World) resolveLaser(dt float64) {
	if !w.laser.Firing() {
		return
	}
	fp := w.laser.Footprint()
	for ei := range w.enemies {
		e := &w.enemies[ei]
		if e.Active && fp.Overlaps(e.Bounds()) {
			w.killEnemy(e, "laser")
		}
	}
	if w.boss != nil && w.boss.Active && fp.Overlaps(w.boss.Bounds()) {
		w.damageBoss(w.laser.Damage*dt, "laser")
	}
}

// acquireCapture lets one firing Zenith grab a vulnerable player.
func (w *World) acquireCapture() {
	if w.capture != 0 || w.dying || !w.player.Vulnerable() {
		return
	}
	pb := w.player.Bounds()
	for ei := range w.enemies {
		e := &w.enemies[ei]
		if !e.BeamActive() || !e.BeamRect(w.cfg).Overlaps(pb) {
			continue
		}
		w.capture = e.ID
		e.Zenith.Holding = true
		w.captures++
		w.log.Add(w.frame, "zenith", "capture", e.label(), float64(e.ID))
		return
	}
}

func (w *World) resolvePickups() {
	if !w.player.Active || w.dying {
		return
	}
	pb := w.player.Bounds()
	for pi := range w.powerUps {
		p := &w.powerUps[pi]
		if !p.Active || !pb.Overlaps(p.Bounds()) {
			continue
		}
		p.Active = false
		w.pickups++
		w.timers.PowerUps[p.Type] = w.cfg.PowerUpDuration
		switch p.Type {
		case PowerShield:
			w.player.Shielded = true
		case PowerLaser:
			w.timers.LaserInstruction = laserInstructionTime
		}
		w.log.Add(w.frame, "powerup", "pickup", p.Type.String(), w.cfg.PowerUpDuration)
	}
}

// resolvePlayerHits applies at most one hit per frame from enemy bodies or
// boss bullets. A boss bullet is consumed by the hit; an enemy body is not.
func (w *World) resolvePlayerHits() {
	if w.dying || !w.player.Vulnerable() {
		return
	}
	pb := w.player.Bounds()
	for ei := range w.enemies {
		e := &w.enemies[ei]
		if e.Active && pb.Overlaps(e.Bounds()) {
			w.hitPlayer("enemy:" + e.Type.String())
			return
		}
	}
	for bi := range w.bossBullets {
		b := &w.bossBullets[bi]
		if b.Active && pb.Overlaps(b.Bounds()) {
			b.Active = false
			w.hitPlayer("boss_bullet")
			return
		}
	}
}

// killEnemy scores a kill at the pre-kill multiplier, then extends the combo.
func (w *World) killEnemy(e *Enemy, cause string) {
	e.Active = false
	gained := w.combo.Award(e.Type.BaseScore())
	w.score += gained
	w.combo.Register(w.cfg)
	w.kills.addEnemy(e.Type)

	w.fx.explode(w.rng, e.Pos)
	w.fx.shake(shakeEnemyKill)
	if w.combo.Counter > 1 {
		w.fx.ComboTexts = append(w.fx.ComboTexts, newComboText(e.Pos, w.combo.Counter, w.combo.Multiplier))
	}
	w.applyRankEffect(e.Pos)

	if w.capture == e.ID {
		w.releaseCapture("zenith_destroyed")
	}
	w.log.Add(w.frame, "combat", "enemy_killed", fmt.Sprintf("%s by %s", e.label(), cause), float64(gained))
}

// applyRankEffect logs tier changes and adds the top-tier shake and sparks.
func (w *World) applyRankEffect(at Vec2) {
	r := w.combo.Rank()
	if r.Label != w.rank {
		w.rank = r.Label
		w.log.Add(w.frame, "combo", "rank", r.Label, float64(w.combo.Counter))
	}
	if r.Intensity <= 0 {
		return
	}
	w.fx.shake(shakeEnemyKill + r.Intensity)
	n := int(r.Intensity * 100)
	if len(w.fx.Explosions) > 0 {
		last := &w.fx.Explosions[len(w.fx.Explosions)-1]
		last.Particles = append(last.Particles, burst(w.rng, at, n, 100, 300, 0.5, 1.2)...)
	}
}

// damageBoss applies damage and handles phase changes and destruction.
func (w *World) damageBoss(dmg float64, source string) {
	b := w.boss
	phaseChanged, destroyed := b.TakeDamage(dmg)
	w.fx.shake(shakeBossHit)
	w.log.Add(w.frame, "combat", "boss_hit", source, b.Health)
	if phaseChanged {
		w.log.Add(w.frame, "boss", "phase_change", fmt.Sprintf("%s → phase %d", b.Type, b.Phase), float64(b.Phase))
	}
	if destroyed {
		w.destroyBoss()
	}
}

func (w *World) destroyBoss() {
	b := w.boss
	bonus := b.Type.Bonus()
	w.score += bonus
	w.kills.addBoss(b.Type)
	w.fx.shake(shakeBossDeath)
	half := b.Size / 2
	for i := 0; i < bossDeathBlasts; i++ {
		off := Vec2{X: randRange(w.rng, -half, half), Y: randRange(w.rng, -half, half)}
		w.fx.explode(w.rng, b.Pos.Add(off))
	}
	w.log.Add(w.frame, "boss", "destroyed", b.Type.String(), float64(bonus))
}
