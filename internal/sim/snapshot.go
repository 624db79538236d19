package sim

// Read-only accessors for renderers and reports. Slices and pointers returned
// here alias world state; callers must not modify them. Use Snapshot for a
// copy that outlives the next Step.

func (w *World) Config() Config { return w.cfg }
func (w *World) Log() *SimLog { return w.log }
func (w *World) Frame() int { return w.frame }
func (w *World) Elapsed() float64 { return w.elapsed }
func (w *World) Player() Player { return w.player }
func (w *World) Bullets() []Bullet { return w.bullets }
func (w *World) BossBullets() []Bullet { return w.bossBullets }
func (w *World) Enemies() []Enemy { return w.enemies }
func (w *World) PowerUps() []PowerUp { return w.powerUps }
func (w *World) Boss() *Boss { return w.boss }
func (w *World) Laser() *Laser { return &w.laser }
func (w *World) Effects() *Effects { return &w.fx }
func (w *World) Timers() Timers { return w.timers }
func (w *World) Combo() Combo { return w.combo }
func (w *World) Score() int { return w.score }
func (w *World) Lives() int { return w.lives }
func (w *World) Kills() KillCounts { return w.kills }
func (w *World) Captures() int { return w.captures }
func (w *World) CapturedBy() EntityID { return w.capture }
func (w *World) Dying() bool { return w.dying }
func (w *World) GameOver() bool { return w.gameOver }

// HighScore is the best of the stored high score and the live score.
func (w *World) HighScore() int {
	if w.score > w.highScore {
		return w.score
	}
	return w.highScore
}

// Snapshot is a deep copy of the world state at one frame.
type Snapshot struct {
	Frame       int
	Elapsed     float64
	Score       int
	HighScore   int
	Lives       int
	Combo       Combo
	Rank        string
	Player      Player
	Bullets     []Bullet
	BossBullets []Bullet
	Enemies     []Enemy
	Boss        *Boss
	PowerUps    []PowerUp
	Laser       LaserState
	LaserCharge float64
	Timers      Timers
	CapturedBy  EntityID
	Kills       KillCounts
	Dying       bool
	GameOver    bool
}

// Snapshot copies the current state. Zenith extension records are cloned so
// later steps do not show through.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Frame:       w.frame,
		Elapsed:     w.elapsed,
		Score:       w.score,
		HighScore:   w.HighScore(),
		Lives:       w.lives,
		Combo:       w.combo,
		Rank:        w.combo.Rank().Label,
		Player:      w.player,
		Bullets:     append([]Bullet(nil), w.bullets...),
		BossBullets: append([]Bullet(nil), w.bossBullets...),
		Enemies:     make([]Enemy, len(w.enemies)),
		PowerUps:    append([]PowerUp(nil), w.powerUps...),
		Laser:       w.laser.State,
		LaserCharge: w.laser.ChargeProgress(w.cfg),
		Timers:      w.timers,
		CapturedBy:  w.capture,
		Kills:       w.kills,
		Dying:       w.dying,
		GameOver:    w.gameOver,
	}
	for i, e := range w.enemies {
		if e.Zenith != nil {
			z := *e.Zenith
			e.Zenith = &z
		}
		s.Enemies[i] = e
	}
	if w.boss != nil {
		b := *w.boss
		s.Boss = &b
	}
	return s
}
