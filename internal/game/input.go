package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/zenith-shmup/internal/sim"
)

// binding ties a simulation action to the keys that hold it.
type binding struct {
	action sim.Action
	keys   []ebiten.Key
}

var bindings = []binding{
	{sim.ActionLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{sim.ActionRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
	{sim.ActionUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{sim.ActionDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{sim.ActionFire, []ebiten.Key{ebiten.KeySpace}},
	{sim.ActionLaser, []ebiten.Key{ebiten.KeyL}},
}

// pollInput builds the held-action snapshot from a key query. The world does
// its own edge detection for the laser, so only held state is passed on.
func pollInput(pressed func(ebiten.Key) bool) sim.Input {
	var in sim.Input
	for _, b := range bindings {
		for _, k := range b.keys {
			if pressed(k) {
				in.Set(b.action, true)
				break
			}
		}
	}
	return in
}

// handleInput runs the host's edge-triggered commands and returns this
// frame's gameplay input.
func (g *Game) handleInput() sim.Input {
	currentKeys := map[ebiten.Key]bool{}
	justPressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// P: pause/resume. Ignored once the run is over.
	if justPressed(ebiten.KeyP) && !g.world.GameOver() {
		g.paused = !g.paused
	}

	// R: restart, only when the game-over screen is showing.
	if justPressed(ebiten.KeyR) && g.world.GameOver() {
		g.restart()
	}

	// H: swap the side panel between the event feed and the key legend.
	if justPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}

	// F8: copy a run report to the clipboard.
	if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
		g.copyReport()
	}

	g.prevKeys = currentKeys

	if g.paused {
		return sim.Input{}
	}
	return pollInput(ebiten.IsKeyPressed)
}
