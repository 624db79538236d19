package sim

// Action is a logical input the simulation reacts to.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionFire
	ActionLaser
	actionCount
)

// Input is the per-frame snapshot of held actions. The host fills it from
// whatever device it polls; the simulation only queries it.
type Input struct {
	held [actionCount]bool
}

// InputOf builds a snapshot with the given actions held.
func InputOf(actions ...Action) Input {
	var in Input
	for _, a := range actions {
		in.Set(a, true)
	}
	return in
}

// Set marks an action held or released.
func (in *Input) Set(a Action, held bool) {
	if a < 0 || a >= actionCount {
		return
	}
	in.held[a] = held
}

// Held reports whether the action is held this frame.
func (in Input) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return in.held[a]
}

// moveDir converts held movement actions into an unnormalised direction.
func (in Input) moveDir() Vec2 {
	var d Vec2
	if in.Held(ActionLeft) {
		d.X--
	}
	if in.Held(ActionRight) {
		d.X++
	}
	if in.Held(ActionUp) {
		d.Y--
	}
	if in.Held(ActionDown) {
		d.Y++
	}
	return d
}
