package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/zenith-shmup/internal/sim"
)

var (
	colorBackground = color.RGBA{R: 4, G: 4, B: 12, A: 255}
	colorPlayer     = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	colorShield     = color.RGBA{R: 60, G: 130, B: 255, A: 200}
	colorBullet     = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	colorBossBullet = color.RGBA{R: 255, G: 70, B: 70, A: 255}
	colorBeam       = color.RGBA{R: 170, G: 90, B: 255, A: 255}
	colorHealthBack = color.RGBA{R: 60, G: 0, B: 0, A: 220}
	colorHealth     = color.RGBA{R: 230, G: 40, B: 40, A: 255}
)

var enemyColors = map[sim.EnemyType]color.RGBA{
	sim.EnemyNormal: {R: 230, G: 60, B: 60, A: 255},
	sim.EnemyFast:   {R: 255, G: 150, B: 40, A: 255},
	sim.EnemyBig:    {R: 160, G: 40, B: 120, A: 255},
	sim.EnemyZenith: {R: 120, G: 60, B: 220, A: 255},
}

var bossColors = map[sim.BossType]color.RGBA{
	sim.BossDestroyer: {R: 200, G: 50, B: 50, A: 255},
	sim.BossCarrier:   {R: 90, G: 90, B: 200, A: 255},
	sim.BossBehemoth:  {R: 150, G: 40, B: 150, A: 255},
}

var powerUpStyle = map[sim.PowerUpType]struct {
	color  color.RGBA
	letter string
}{
	sim.PowerRapidFire:  {color.RGBA{R: 50, G: 255, B: 50, A: 255}, "R"},
	sim.PowerTripleShot: {color.RGBA{R: 255, G: 130, B: 0, A: 255}, "T"},
	sim.PowerShield:     {color.RGBA{R: 50, G: 130, B: 255, A: 255}, "S"},
	sim.PowerLaser:      {color.RGBA{R: 255, G: 50, B: 50, A: 255}, "L"},
}

// fade scales a premultiplied colour by a in [0, 1].
func fade(c color.RGBA, a float64) color.RGBA {
	if a <= 0 {
		return color.RGBA{}
	}
	if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// --- Starfield ---

// star is a background point that scrolls down and wraps.
type star struct {
	x, y       float64
	speed      float64
	brightness float64
	pulse      float64
}

func newStarfield(rng *rand.Rand, w, h float64) []star {
	stars := make([]star, 120)
	for i := range stars {
		stars[i] = star{
			x:          rng.Float64() * w,
			y:          rng.Float64() * h,
			speed:      20 + rng.Float64()*60,
			brightness: 0.3 + rng.Float64()*0.7,
			pulse:      rng.Float64() * 2 * math.Pi,
		}
	}
	return stars
}

func (g *Game) updateStars(dt float64) {
	h := float64(g.fieldH)
	for i := range g.stars {
		s := &g.stars[i]
		s.y += s.speed * dt
		s.pulse += dt * 2
		if s.y > h {
			s.y -= h
			s.x = g.fxRand.Float64() * float64(g.fieldW)
		}
	}
}

// --- Field ---

// drawField renders every entity and effect, offset by the screen shake.
func (g *Game) drawField(screen *ebiten.Image, shake sim.Vec2) {
	ox, oy := float32(shake.X), float32(shake.Y)
	w := g.world

	for _, s := range g.stars {
		a := (math.Sin(s.pulse)*0.3 + 0.7) * s.brightness * 0.7
		vector.FillCircle(screen, float32(s.x)+ox, float32(s.y)+oy, 1.5, fade(color.RGBA{R: 255, G: 255, B: 255, A: 255}, a), false)
	}

	if w.GameOver() {
		g.drawParticles(screen, w.Effects().DeathBurst, ox, oy)
		return
	}

	g.drawBeams(screen, ox, oy)
	g.drawLaser(screen, ox, oy)
	g.drawPlayer(screen, ox, oy)

	for _, b := range w.Bullets() {
		r := b.Bounds()
		vector.FillRect(screen, float32(r.X)+ox, float32(r.Y)+oy, float32(r.W), float32(r.H), colorBullet, false)
	}
	for _, e := range w.Enemies() {
		g.drawEnemy(screen, e, ox, oy)
	}
	for _, p := range w.PowerUps() {
		st := powerUpStyle[p.Type]
		r := p.Bounds()
		vector.FillRect(screen, float32(r.X)+ox, float32(r.Y)+oy, float32(r.W), float32(r.H), fade(st.color, p.PulseAlpha()), false)
		vector.StrokeRect(screen, float32(r.X)+ox, float32(r.Y)+oy, float32(r.W), float32(r.H), 1.5, color.White, false)
		text.Draw(screen, st.letter, basicfont.Face7x13, int(p.Pos.X+float64(ox))-3, int(p.Pos.Y+float64(oy))+4, color.White)
	}
	if b := w.Boss(); b != nil {
		g.drawBoss(screen, b, ox, oy)
	}
	for _, b := range w.BossBullets() {
		vector.FillCircle(screen, float32(b.Pos.X)+ox, float32(b.Pos.Y)+oy, float32(b.Size/2), colorBossBullet, false)
	}

	fx := w.Effects()
	for _, e := range fx.Explosions {
		g.drawParticles(screen, e.Particles, ox, oy)
	}
	g.drawParticles(screen, fx.DeathBurst, ox, oy)
	for _, c := range fx.ComboTexts {
		text.Draw(screen, c.Text, basicfont.Face7x13, int(c.Pos.X)+int(ox), int(c.Pos.Y)+int(oy),
			fade(color.RGBA{R: 255, G: 210, B: 40, A: 255}, c.Alpha()))
	}
}

func (g *Game) drawParticles(screen *ebiten.Image, ps []sim.Particle, ox, oy float32) {
	for _, p := range ps {
		if p.Dead() {
			continue
		}
		vector.FillCircle(screen, float32(p.Pos.X)+ox, float32(p.Pos.Y)+oy, float32(p.Size/2), fade(p.Color, p.Alpha()), false)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, ox, oy float32) {
	p := g.world.Player()
	if !p.Active || g.world.Dying() {
		return
	}
	// Blink while invincible.
	if p.Invincible > 0 && int(p.Invincible*10)%2 == 0 {
		return
	}
	x, y, half := float32(p.Pos.X)+ox, float32(p.Pos.Y)+oy, float32(p.Size/2)

	var path vector.Path
	path.MoveTo(x, y-half)
	path.LineTo(x+half, y+half)
	path.LineTo(x, y+half*0.5)
	path.LineTo(x-half, y+half)
	path.Close()
	opts := &vector.DrawPathOptions{AntiAlias: true}
	opts.ColorScale.ScaleWithColor(colorPlayer)
	vector.FillPath(screen, &path, &vector.FillOptions{}, opts)

	if p.Shielded {
		vector.StrokeCircle(screen, x, y, half*1.8, 2, colorShield, true)
	}
	if g.world.CapturedBy() != 0 {
		vector.StrokeRect(screen, x-half-3, y-half-3, half*2+6, half*2+6, 1.5, colorBeam, false)
	}
}

func (g *Game) drawEnemy(screen *ebiten.Image, e sim.Enemy, ox, oy float32) {
	r := e.Bounds()
	clr := enemyColors[e.Type]
	vector.FillRect(screen, float32(r.X)+ox, float32(r.Y)+oy, float32(r.W), float32(r.H), clr, false)
	if e.Zenith == nil {
		return
	}
	cx, cy := float32(e.Pos.X)+ox, float32(e.Pos.Y)+oy
	switch e.Zenith.Phase {
	case sim.ZenithCharging:
		// Charge glow grows as the countdown runs out.
		grow := float32(1 - e.Zenith.Timer)
		if grow < 0 {
			grow = 0
		}
		vector.StrokeCircle(screen, cx, cy, float32(e.Size/2)*(1+grow), 2, colorBeam, true)
	case sim.ZenithCooldown:
		vector.StrokeRect(screen, float32(r.X)+ox, float32(r.Y)+oy, float32(r.W), float32(r.H), 1, color.RGBA{R: 90, G: 90, B: 90, A: 255}, false)
	}
}

// drawBeams renders active Zenith beams beneath everything else.
func (g *Game) drawBeams(screen *ebiten.Image, ox, oy float32) {
	cfg := g.world.Config()
	for _, e := range g.world.Enemies() {
		beam := e.BeamRect(cfg)
		if beam.Empty() {
			continue
		}
		a := 0.35
		if e.Zenith.Holding {
			a = 0.6
		}
		vector.FillRect(screen, float32(beam.X)+ox, float32(beam.Y)+oy, float32(beam.W), float32(beam.H), fade(colorBeam, a), false)
		vector.StrokeLine(screen, float32(e.Pos.X)+ox, float32(beam.Y)+oy, float32(e.Pos.X)+ox, float32(beam.Bottom())+oy, 2, fade(color.RGBA{R: 230, G: 200, B: 255, A: 255}, a+0.2), false)
	}
}

func (g *Game) drawLaser(screen *ebiten.Image, ox, oy float32) {
	l := g.world.Laser()
	g.drawParticles(screen, l.Particles, ox, oy)
	switch l.State {
	case sim.LaserCharging:
		progress := float32(l.ChargeProgress(g.world.Config()))
		vector.StrokeCircle(screen, float32(l.Anchor.X)+ox, float32(l.Anchor.Y)+oy, 6+progress*14, 2, l.Color, true)
	case sim.LaserFiring:
		f := l.Footprint()
		vector.FillRect(screen, float32(f.X)+ox, float32(f.Y)+oy, float32(f.W), float32(f.H), fade(l.Color, 0.85), false)
		core := float32(f.W) / 3
		vector.FillRect(screen, float32(f.X)+ox+core, float32(f.Y)+oy, core, float32(f.H), color.RGBA{R: 255, G: 255, B: 255, A: 220}, false)
	}
}

func (g *Game) drawBoss(screen *ebiten.Image, b *sim.Boss, ox, oy float32) {
	r := b.Bounds()
	clr := bossColors[b.Type]
	vector.FillRect(screen, float32(r.X)+ox, float32(r.Y)+oy, float32(r.W), float32(r.H), clr, false)
	vector.StrokeRect(screen, float32(r.X)+ox, float32(r.Y)+oy, float32(r.W), float32(r.H), float32(b.Phase), color.White, false)

	// Health bar above the hull.
	barY := float32(r.Y) + oy - 10
	vector.FillRect(screen, float32(r.X)+ox, barY, float32(r.W), 5, colorHealthBack, false)
	vector.FillRect(screen, float32(r.X)+ox, barY, float32(r.W*b.HealthFraction()), 5, colorHealth, false)
}
