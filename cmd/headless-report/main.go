package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Garsondee/zenith-shmup/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64

	firstKillFrame    int
	firstCaptureFrame int
	firstBossFrame    int
	firstHitFrame     int
	deathFrame        int

	bossesSpawned int
	phaseChanges  int
	zenithCharges int
	comboResets   int
	rankUps       int
	laserFizzles  int

	lastHitCause string
	deathWindow  string // log lines leading up to the death sequence

	summary sim.RunSummary
}

// deathWindowFrames is how far back the report looks before a death.
const deathWindowFrames = 120

// traceFrame is one record of the msgpack trace stream.
type traceFrame struct {
	Run      int          `msgpack:"run"`
	Seed     int64        `msgpack:"seed"`
	Snapshot sim.Snapshot `msgpack:"snap"`
}

func main() {
	var runs int
	var frames int
	var seedBase int64
	var seedStep int64
	var difficulty string
	var configPath string
	var tracePath string
	var traceEvery int

	flag.IntVar(&runs, "runs", 5, "number of headless sessions")
	flag.IntVar(&frames, "frames", 7200, "frames per session (60 per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&difficulty, "difficulty", "standard", "difficulty preset")
	flag.StringVar(&configPath, "config", "", "optional YAML tuning file")
	flag.StringVar(&tracePath, "trace", "", "write a msgpack snapshot trace to this file")
	flag.IntVar(&traceEvery, "trace-every", 30, "frames between trace snapshots")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}
	if traceEvery <= 0 {
		traceEvery = 1
	}

	cfg, err := buildConfig(difficulty, configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	var trace *msgpack.Encoder
	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			fmt.Printf("error: create trace: %v\n", err)
			return
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()
		trace = msgpack.NewEncoder(w)
	}

	fmt.Printf("=== Headless Session Report ===\n")
	fmt.Printf("difficulty=%s aggressiveness=%.2f runs=%d frames=%d seed_base=%d seed_step=%d\n\n",
		difficulty, cfg.Aggressiveness, runs, frames, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runSession(cfg, i+1, seed, frames, trace, traceEvery)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, rs)
		printRun(os.Stdout, rs)
	}

	printAggregate(os.Stdout, all)
}

func buildConfig(difficulty, configPath string) (sim.Config, error) {
	d, err := sim.ParseDifficulty(difficulty)
	if err != nil {
		return sim.Config{}, err
	}
	cfg := sim.DefaultConfig().WithDifficulty(d)
	if configPath == "" {
		return cfg, nil
	}
	return sim.LoadConfigFile(configPath, cfg)
}

// runSession plays one seeded session with the autopilot until the frame
// budget runs out or the game-over screen would show.
func runSession(cfg sim.Config, runIndex int, seed int64, frames int, trace *msgpack.Encoder, traceEvery int) (runStats, error) {
	log := sim.NewSimLog(false)
	w := sim.NewWorld(cfg, sim.NewRand(seed), sim.LogTo(log))

	for f := 0; f < frames && !w.GameOver(); f++ {
		w.Step(sim.FrameDT, autopilot(w))
		if trace != nil && w.Frame()%traceEvery == 0 {
			if err := trace.Encode(traceFrame{Run: runIndex, Seed: seed, Snapshot: w.Snapshot()}); err != nil {
				return runStats{}, fmt.Errorf("encode trace frame %d: %w", w.Frame(), err)
			}
		}
	}

	return collectStats(runIndex, seed, log, w.Summary()), nil
}

func collectStats(runIndex int, seed int64, log *sim.SimLog, summary sim.RunSummary) runStats {
	entries := log.Entries()
	rs := runStats{
		runIndex:          runIndex,
		seed:              seed,
		firstKillFrame:    firstTick(entries, "combat", "enemy_killed", ""),
		firstCaptureFrame: firstTick(entries, "zenith", "capture", ""),
		firstBossFrame:    firstTick(entries, "spawn", "boss", ""),
		firstHitFrame:     firstTick(entries, "player", "hit", ""),
		deathFrame:        firstTick(entries, "player", "death_sequence", ""),
		bossesSpawned:     log.CountCategory("spawn", "boss"),
		phaseChanges:      log.CountCategory("boss", "phase_change"),
		zenithCharges:     countContaining(entries, "zenith", "state", "→ charging"),
		comboResets:       log.CountCategory("combo", "reset"),
		rankUps:           log.CountCategory("combo", "rank"),
		laserFizzles:      log.CountCategory("laser", "fizzle"),
		summary:           summary,
	}
	if e, ok := log.LastOf("player", "hit"); ok {
		rs.lastHitCause = e.Value
	}
	if rs.deathFrame >= 0 {
		rs.deathWindow = log.FormatRange(rs.deathFrame-deathWindowFrames, rs.deathFrame)
	}
	return rs
}

// autopilot is a scripted pilot: it tracks the lowest enemy, sidesteps boss
// bullets closing in from above, fires constantly and cycles the laser.
func autopilot(w *sim.World) sim.Input {
	in := sim.InputOf(sim.ActionFire)
	p := w.Player()

	target := p.Pos.X
	lowest := math.Inf(-1)
	for _, e := range w.Enemies() {
		if e.Pos.Y < p.Pos.Y && e.Pos.Y > lowest {
			lowest = e.Pos.Y
			target = e.Pos.X
		}
	}
	if b := w.Boss(); b != nil && lowest == math.Inf(-1) {
		target = b.Pos.X
	}

	for _, b := range w.BossBullets() {
		dy := p.Pos.Y - b.Pos.Y
		dx := p.Pos.X - b.Pos.X
		if dy > 0 && dy < 90 && math.Abs(dx) < 30 {
			if dx >= 0 {
				target = p.Pos.X + 60
			} else {
				target = p.Pos.X - 60
			}
			break
		}
	}

	const deadZone = 6
	switch {
	case target < p.Pos.X-deadZone:
		in.Set(sim.ActionLeft, true)
	case target > p.Pos.X+deadZone:
		in.Set(sim.ActionRight, true)
	}
	if p.Pos.Y < w.Config().Height*0.8 {
		in.Set(sim.ActionDown, true)
	}

	// Hold the laser for 100 frames out of every 150.
	in.Set(sim.ActionLaser, w.Frame()%150 < 100)
	return in
}

func firstTick(entries []sim.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func countContaining(entries []sim.SimLogEntry, category, key, contains string) int {
	n := 0
	for _, e := range entries {
		if e.Category == category && e.Key == key && strings.Contains(e.Value, contains) {
			n++
		}
	}
	return n
}

func printRun(out io.Writer, rs runStats) {
	s := rs.summary
	fmt.Fprintf(out, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(out, "phase_markers: first_kill=%d first_capture=%d first_boss=%d first_hit=%d death=%d\n",
		rs.firstKillFrame, rs.firstCaptureFrame, rs.firstBossFrame, rs.firstHitFrame, rs.deathFrame)
	fmt.Fprintf(out, "event_totals: bosses_spawned=%d phase_changes=%d zenith_charges=%d combo_resets=%d rank_ups=%d laser_fizzles=%d\n",
		rs.bossesSpawned, rs.phaseChanges, rs.zenithCharges, rs.comboResets, rs.rankUps, rs.laserFizzles)
	if rs.lastHitCause != "" {
		fmt.Fprintf(out, "last_hit: %s\n", rs.lastHitCause)
	}
	fmt.Fprint(out, s.String())
	if rs.deathWindow != "" {
		fmt.Fprintf(out, "death_window (%d frames):\n%s", deathWindowFrames, rs.deathWindow)
	}
	fmt.Fprintln(out)
}

func printAggregate(out io.Writer, all []runStats) {
	var score, kills, bosses, captures, maxCombo, hits, frames int
	var killTicks, bossTicks, deathTicks []int
	survived := 0
	best := 0

	for _, rs := range all {
		s := rs.summary
		score += s.Score
		kills += s.Kills.Enemies()
		bosses += s.Kills.Bosses()
		captures += s.Captures
		maxCombo += s.MaxCombo
		hits += s.HitsTaken
		frames += s.Frames
		if s.Score > best {
			best = s.Score
		}
		if s.Outcome == sim.OutcomeRunning {
			survived++
		}
		if rs.firstKillFrame >= 0 {
			killTicks = append(killTicks, rs.firstKillFrame)
		}
		if rs.firstBossFrame >= 0 {
			bossTicks = append(bossTicks, rs.firstBossFrame)
		}
		if rs.deathFrame >= 0 {
			deathTicks = append(deathTicks, rs.deathFrame)
		}
	}

	n := len(all)
	fmt.Fprintln(out, "=== Aggregate ===")
	fmt.Fprintf(out, "runs=%d survived=%d best_score=%d\n", n, survived, best)
	fmt.Fprintf(out, "avg_per_run: score=%.1f kills=%.1f bosses=%.2f captures=%.2f max_combo=%.1f hits=%.2f frames=%.0f\n",
		avg(score, n), avg(kills, n), avg(bosses, n), avg(captures, n), avg(maxCombo, n), avg(hits, n), avg(frames, n))
	fmt.Fprintf(out, "phase_marker_avg_frames: first_kill=%s first_boss=%s death=%s\n",
		avgTickString(killTicks), avgTickString(bossTicks), avgTickString(deathTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
