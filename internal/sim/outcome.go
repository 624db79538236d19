package sim

import (
	"fmt"
	"strings"
)

type RunOutcome int

const (
	OutcomeRunning RunOutcome = iota
	OutcomeDying
	OutcomeGameOver
)

func (o RunOutcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeDying:
		return "dying"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// RunSummary is the end-of-run (or so-far) report for one session.
type RunSummary struct {
	Outcome     RunOutcome
	Frames      int
	PlayTime    float64 // seconds of live play
	Score       int
	HighScore   int
	MaxCombo    int
	Kills       KillCounts
	Captures    int
	HitsTaken   int
	LivesLeft   int
	PowerUps    int
	LaserShots  int
	Description string
}

// Summary reports the run so far. Counts cover the current run only.
func (w *World) Summary() RunSummary {
	r := RunSummary{
		Outcome:    OutcomeRunning,
		Frames:     w.frame,
		PlayTime:   w.elapsed,
		Score:      w.score,
		HighScore:  w.HighScore(),
		MaxCombo:   w.combo.Max,
		Kills:      w.kills,
		Captures:   w.captures,
		HitsTaken:  w.hits,
		LivesLeft:  w.lives,
		PowerUps:   w.pickups,
		LaserShots: w.shots,
	}
	switch {
	case w.gameOver:
		r.Outcome = OutcomeGameOver
	case w.dying:
		r.Outcome = OutcomeDying
	}
	r.Description = describeRun(r)
	return r
}

func describeRun(r RunSummary) string {
	switch {
	case r.Outcome == OutcomeRunning && r.HitsTaken == 0:
		return "untouched"
	case r.Outcome == OutcomeRunning:
		return fmt.Sprintf("alive_after_%d_hits", r.HitsTaken)
	case r.Kills.Bosses() > 0:
		return fmt.Sprintf("fell_after_%d_bosses", r.Kills.Bosses())
	default:
		return "fell_before_first_boss"
	}
}

// String renders the summary as a short multi-line block.
func (r RunSummary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "outcome=%s (%s) frames=%d time=%.1fs\n", r.Outcome, r.Description, r.Frames, r.PlayTime)
	fmt.Fprintf(&sb, "score=%d high=%d max_combo=%d lives=%d hits=%d\n",
		r.Score, r.HighScore, r.MaxCombo, r.LivesLeft, r.HitsTaken)
	k := r.Kills
	fmt.Fprintf(&sb, "kills: total=%d normal=%d fast=%d big=%d zenith=%d\n",
		k.Enemies(), k.Normal, k.Fast, k.Big, k.Zenith)
	fmt.Fprintf(&sb, "bosses: total=%d destroyer=%d carrier=%d behemoth=%d\n",
		k.Bosses(), k.Destroyers, k.Carriers, k.Behemoths)
	fmt.Fprintf(&sb, "captures=%d powerups=%d laser_shots=%d\n", r.Captures, r.PowerUps, r.LaserShots)
	return sb.String()
}
