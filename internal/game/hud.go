package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/zenith-shmup/internal/sim"
)

const (
	hudLineH = 16
	hudCharW = 7 // basicfont.Face7x13 advance
)

var (
	colorText    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorHigh    = color.RGBA{R: 255, G: 230, B: 60, A: 255}
	colorCombo   = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	colorWarning = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	colorLife    = color.RGBA{R: 255, G: 50, B: 75, A: 255}
)

var powerUpLabels = map[sim.PowerUpType]string{
	sim.PowerRapidFire:  "Rapid Fire",
	sim.PowerTripleShot: "Triple Shot",
	sim.PowerShield:     "Shield",
	sim.PowerLaser:      "Laser",
}

func drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(screen, s, basicfont.Face7x13, x, y, clr)
}

func drawCentered(screen *ebiten.Image, s string, cx, y int, clr color.Color) {
	drawText(screen, s, cx-len(s)*hudCharW/2, y, clr)
}

// drawHUD renders score, lives, combo, timers and banners over the field.
func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.world
	if w.GameOver() {
		g.drawGameOver(screen)
		g.drawNotice(screen)
		return
	}

	drawText(screen, fmt.Sprintf("Score: %d", w.Score()), 10, 20, colorText)
	drawText(screen, fmt.Sprintf("High Score: %d", w.HighScore()), 10, 20+hudLineH, colorHigh)

	y := 20 + hudLineH*3
	timers := w.Timers()
	for _, p := range []sim.PowerUpType{sim.PowerRapidFire, sim.PowerTripleShot, sim.PowerShield, sim.PowerLaser} {
		left := timers.PowerUp(p)
		if left <= 0 {
			continue
		}
		drawText(screen, fmt.Sprintf("%s: %.1fs", powerUpLabels[p], left), 10, y, powerUpStyle[p].color)
		y += hudLineH
	}

	// Lives as dots, top right.
	for i := 0; i < w.Lives(); i++ {
		x := float32(g.fieldW) - 20 - float32(i)*26
		vector.FillCircle(screen, x, 40, 9, colorLife, true)
	}

	g.drawCombo(screen)
	g.drawBossBar(screen)

	if timers.BossWarning > 0 && int(timers.BossWarning*4)%2 == 0 {
		label := "BOSS"
		if b := w.Boss(); b != nil {
			label = strings.ToUpper(b.Type.String())
		}
		drawCentered(screen, fmt.Sprintf("WARNING: %s APPROACHING", label), g.fieldW/2, g.fieldH/3, colorWarning)
	}
	if timers.LaserInstruction > 0 {
		drawCentered(screen, "HOLD L TO CHARGE THE LASER, RELEASE TO FIRE", g.fieldW/2, g.fieldH-60, powerUpStyle[sim.PowerLaser].color)
	}
	if l := w.Laser(); l.Charging() {
		g.drawChargeBar(screen, l.ChargeProgress(w.Config()), l.Color)
	}
	if g.paused {
		vector.FillRect(screen, 0, 0, float32(g.fieldW), float32(g.fieldH), color.RGBA{A: 120}, false)
		drawCentered(screen, "PAUSED", g.fieldW/2, g.fieldH/2, colorText)
		drawCentered(screen, "P to resume", g.fieldW/2, g.fieldH/2+hudLineH, colorText)
	}
	g.drawNotice(screen)
}

func (g *Game) drawCombo(screen *ebiten.Image) {
	c := g.world.Combo()
	if c.Counter <= 0 {
		return
	}
	x := g.fieldW - 200
	drawText(screen, fmt.Sprintf("Combo: %dx%.1f", c.Counter, c.Multiplier), x, 70, colorCombo)
	drawText(screen, fmt.Sprintf("Timer: %.1fs", c.Timer), x, 70+hudLineH, color.RGBA{R: 255, G: 130, B: 0, A: 255})
	drawText(screen, fmt.Sprintf("Max Combo: %d", c.Max), x, 70+hudLineH*2, colorHigh)
	if r := c.Rank(); r.Label != "" {
		drawText(screen, r.Label, x, 70+hudLineH*3, r.Color)
	}
}

func (g *Game) drawBossBar(screen *ebiten.Image) {
	b := g.world.Boss()
	if b == nil {
		return
	}
	const barW, barH = 300, 8
	x := float32(g.fieldW-barW) / 2
	vector.FillRect(screen, x, 8, barW, barH, colorHealthBack, false)
	vector.FillRect(screen, x, 8, float32(barW*b.HealthFraction()), barH, colorHealth, false)
	vector.StrokeRect(screen, x, 8, barW, barH, 1, colorText, false)
	drawCentered(screen, fmt.Sprintf("%s  phase %d", strings.ToUpper(b.Type.String()), b.Phase), g.fieldW/2, 32, colorText)
}

func (g *Game) drawChargeBar(screen *ebiten.Image, progress float64, clr color.RGBA) {
	const barW, barH = 120, 6
	x := float32(g.fieldW-barW) / 2
	y := float32(g.fieldH - 30)
	vector.FillRect(screen, x, y, barW, barH, color.RGBA{R: 30, G: 30, B: 30, A: 200}, false)
	vector.FillRect(screen, x, y, float32(barW*progress), barH, clr, false)
}

func (g *Game) drawNotice(screen *ebiten.Image) {
	if g.noticeTimer <= 0 || g.notice == "" {
		return
	}
	drawCentered(screen, g.notice, g.fieldW/2, g.fieldH-12, colorHigh)
}

// drawGameOver renders the final score, the kill breakdown and, when the
// store is wired, the lifetime totals.
func (g *Game) drawGameOver(screen *ebiten.Image) {
	w := g.world
	k := w.Kills()
	cx := g.fieldW / 2
	y := 70

	drawCentered(screen, fmt.Sprintf("SCORE: %d", w.Score()), cx, y, colorText)
	y += hudLineH * 2
	drawCentered(screen, "GAME OVER", cx, y, colorWarning)
	y += hudLineH * 2

	lines := []string{
		"Stats:",
		fmt.Sprintf("  Behemoths killed: %d", k.Behemoths),
		fmt.Sprintf("  Destroyers killed: %d", k.Destroyers),
		fmt.Sprintf("  Carriers killed: %d", k.Carriers),
		fmt.Sprintf("  Normal enemies killed: %d", k.Normal),
		fmt.Sprintf("  Fast enemies killed: %d", k.Fast),
		fmt.Sprintf("  Big enemies killed: %d", k.Big),
		fmt.Sprintf("  Zeniths killed: %d", k.Zenith),
		fmt.Sprintf("  Max combo: %d   Captures: %d", w.Combo().Max, w.Captures()),
	}
	for _, l := range lines {
		drawText(screen, l, 60, y, colorText)
		y += hudLineH
	}
	if g.hasStats {
		y += hudLineH / 2
		drawText(screen, fmt.Sprintf("Lifetime: %d games, %d kills, %d bosses, %.0f min played",
			g.stats.GamesPlayed, g.stats.Kills.Total, g.stats.Kills.Bosses, g.stats.TotalPlayTime/60), 60, y, colorHigh)
		y += hudLineH
	}
	y += hudLineH
	drawCentered(screen, fmt.Sprintf("High Score: %d", w.HighScore()), cx, y, colorHigh)
	y += hudLineH * 2
	drawCentered(screen, "Press R to restart", cx, y, colorText)
}

// drawHelp renders the key legend in the side panel.
func (g *Game) drawHelp(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 8, G: 8, B: 16, A: 235}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 110, A: 255}, false)
	lines := []string{
		"KEYS",
		"",
		"arrows / WASD  move",
		"space          fire",
		"L (hold)       charge laser",
		"L (release)    fire laser",
		"P              pause",
		"R              restart (game over)",
		"F8             copy run report",
		"H              events / keys",
		"",
		fmt.Sprintf("aggressiveness %.2f", g.cfg.Aggressiveness),
		"session " + g.session.String()[:8],
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, panelX+10, 6+i*14)
	}
}
