// Package game hosts the simulation in an ebiten window. It polls the
// keyboard, steps the world once per tick, draws the result and records
// finished runs through the store.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/zenith-shmup/internal/sim"
	"github.com/Garsondee/zenith-shmup/internal/store"
)

const noticeDuration = 2.5 // s a host notice stays on screen

// Options configures a Game.
type Options struct {
	Config sim.Config
	Seed   int64        // 0 seeds from the clock
	Store  *store.Store // nil disables persistence
	Logger *slog.Logger
}

// Game implements ebiten.Game around one sim.World.
type Game struct {
	cfg   sim.Config
	world *sim.World
	store *store.Store
	log   *slog.Logger

	session  uuid.UUID
	feed     *EventFeed
	stars    []star
	fxRand   *rand.Rand // cosmetic only; never shared with the world
	prevKeys map[ebiten.Key]bool

	paused   bool
	showHelp bool
	recorded bool // the finished run has been handed to the store
	stats    store.Stats
	hasStats bool

	notice      string
	noticeTimer float64

	fieldW int
	fieldH int
}

// New builds a Game and starts the first run.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = store.NewLogger("game")
	}
	high := 0
	if opts.Store != nil {
		high = opts.Store.LoadHighScore()
	}

	g := &Game{
		cfg:      opts.Config,
		store:    opts.Store,
		log:      logger,
		session:  uuid.New(),
		feed:     NewEventFeed(),
		fxRand:   sim.NewRand(opts.Seed + 1),
		prevKeys: map[ebiten.Key]bool{},
		fieldW:   int(opts.Config.Width),
		fieldH:   int(opts.Config.Height),
	}
	g.world = sim.NewWorld(opts.Config, sim.NewRand(opts.Seed), sim.StartHighScore(high))
	g.stars = newStarfield(g.fxRand, opts.Config.Width, opts.Config.Height)
	g.feed.Add(0, "session", "start "+g.session.String()[:8])

	g.log.Info("session started",
		"session", g.session.String(),
		"high_score", high,
		"aggressiveness", opts.Config.Aggressiveness)
	return g
}

// World exposes the running simulation.
func (g *Game) World() *sim.World { return g.world }

func (g *Game) Update() error {
	in := g.handleInput()
	if g.noticeTimer > 0 {
		g.noticeTimer -= sim.FrameDT
	}

	// Paused: the field freezes, only host UI keeps running.
	if g.paused {
		return nil
	}

	g.world.Step(sim.FrameDT, in)
	g.feed.Pull(g.world.Log())
	g.updateStars(sim.FrameDT)

	if g.world.GameOver() && !g.recorded {
		g.finishRun()
	}
	return nil
}

// finishRun hands the finished run to the store exactly once.
func (g *Game) finishRun() {
	g.recorded = true
	r := g.world.Summary()
	g.log.Info("run finished",
		"session", g.session.String(),
		"score", r.Score,
		"play_time", r.PlayTime,
		"kills", r.Kills.Enemies(),
		"bosses", r.Kills.Bosses())
	if g.store == nil {
		return
	}
	g.stats = g.store.FinishRun(g.session, r)
	g.hasStats = true
}

func (g *Game) restart() {
	g.world.Restart()
	g.session = uuid.New()
	g.recorded = false
	g.paused = false
	g.feed.Pull(g.world.Log())
	g.log.Info("session restarted", "session", g.session.String(), "high_score", g.world.HighScore())
}

func (g *Game) notify(msg string) {
	g.notice = msg
	g.noticeTimer = noticeDuration
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	shake := g.world.Effects().ShakeOffset(g.fxRand)
	g.drawField(screen, shake)
	g.drawHUD(screen)

	panelX := g.fieldW
	if g.showHelp {
		g.drawHelp(screen, panelX, g.fieldH)
	} else {
		g.feed.Draw(screen, panelX, g.fieldH)
	}
}

// Layout keeps a fixed logical screen: the play field plus the side panel.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.fieldW + feedPanelWidth, g.fieldH
}

// WindowSize is the unscaled window size for this configuration.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}
