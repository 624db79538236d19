package sim

import (
	"image/color"
	"math"
)

// Combo tracks the consecutive-kill streak and its score multiplier.
// Multiplier is always min(base*Counter, cap), or 1.0 when Counter is 0.
type Combo struct {
	Counter    int
	Timer      float64 // seconds until the streak lapses
	Multiplier float64
	Max        int // longest streak this run
}

func newCombo() Combo {
	return Combo{Multiplier: 1.0}
}

// multiplierFor is the capped multiplier for a streak length.
func multiplierFor(counter int, cfg Config) float64 {
	if counter <= 0 {
		return 1.0
	}
	return math.Min(cfg.ComboBase*float64(counter), cfg.ComboCap)
}

// Award returns the score for a kill worth base points at the current
// multiplier, rounded down.
func (c *Combo) Award(base int) int {
	return int(math.Floor(float64(base) * c.Multiplier))
}

// Register extends the streak by one kill and re-arms the timeout.
func (c *Combo) Register(cfg Config) {
	c.Counter++
	c.Timer = cfg.ComboTimeout
	c.Multiplier = multiplierFor(c.Counter, cfg)
	if c.Counter > c.Max {
		c.Max = c.Counter
	}
}

// Reset drops the streak. Max is kept.
func (c *Combo) Reset() {
	c.Counter = 0
	c.Multiplier = 1.0
	c.Timer = 0
}

// tick counts the timeout down and resets on expiry. It reports whether a
// live streak lapsed this call.
func (c *Combo) tick(dt float64) bool {
	if c.Timer <= 0 {
		return false
	}
	c.Timer -= dt
	if c.Timer > 0 {
		return false
	}
	lapsed := c.Counter > 0
	c.Reset()
	return lapsed
}

// Rank returns the display tier for the current streak.
func (c *Combo) Rank() Rank { return RankFor(c.Counter) }

// --- Rank tiers ---

// Rank is a display-only label derived from the streak length. Intensity
// drives the extra shake/particle effect at the top tiers; zero below them.
type Rank struct {
	Label     string
	Min       int // lowest counter in this tier
	Color     color.RGBA
	Intensity float64
}

// rankTiers is ordered by Min ascending.
var rankTiers = [...]Rank{
	{Label: "NICE", Min: 1, Color: color.RGBA{R: 200, G: 200, B: 200, A: 255}},
	{Label: "GREAT", Min: 3, Color: color.RGBA{R: 120, G: 220, B: 120, A: 255}},
	{Label: "AWESOME", Min: 5, Color: color.RGBA{R: 80, G: 200, B: 255, A: 255}},
	{Label: "EXCELLENT", Min: 7, Color: color.RGBA{R: 90, G: 120, B: 255, A: 255}},
	{Label: "INCREDIBLE", Min: 10, Color: color.RGBA{R: 170, G: 90, B: 255, A: 255}},
	{Label: "UNSTOPPABLE", Min: 15, Color: color.RGBA{R: 255, G: 90, B: 220, A: 255}},
	{Label: "GODLIKE", Min: 20, Color: color.RGBA{R: 255, G: 200, B: 40, A: 255}, Intensity: 0.05},
	{Label: "LEGENDARY", Min: 30, Color: color.RGBA{R: 255, G: 150, B: 30, A: 255}, Intensity: 0.08},
	{Label: "MYTHIC", Min: 40, Color: color.RGBA{R: 255, G: 100, B: 20, A: 255}, Intensity: 0.11},
	{Label: "TRANSCENDENT", Min: 50, Color: color.RGBA{R: 255, G: 60, B: 20, A: 255}, Intensity: 0.14},
	{Label: "COSMIC", Min: 60, Color: color.RGBA{R: 255, G: 30, B: 60, A: 255}, Intensity: 0.17},
	{Label: "ETERNAL", Min: 80, Color: color.RGBA{R: 255, G: 20, B: 120, A: 255}, Intensity: 0.20},
	{Label: "OMNIPOTENT", Min: 100, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}, Intensity: 0.25},
	{Label: "BEYOND", Min: 150, Color: color.RGBA{R: 255, G: 255, B: 160, A: 255}, Intensity: 0.30},
}

// RankFor maps a streak length to its tier. Zero counters get the zero Rank.
func RankFor(counter int) Rank {
	var r Rank
	for _, t := range rankTiers {
		if counter < t.Min {
			break
		}
		r = t
	}
	return r
}
