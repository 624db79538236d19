package game

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Garsondee/zenith-shmup/internal/sim"
)

func TestRunReportIncludesSummaryAndTail(t *testing.T) {
	ts := sim.NewTestSim(sim.WithSeed(7), sim.WithoutSpawns(), sim.WithVerbose(true))
	ts.AddEnemy(sim.EnemyNormal, 400, 300)
	ts.AddBullet(400, 310, 0, 0)
	ts.RunFrames(3)

	id := uuid.New()
	report := runReport(id, ts.World, 0)

	for _, want := range []string{
		"--- zenith-shmup run report ---",
		"session=" + id.String(),
		"outcome=running",
		"enemy_killed",
		"== last ",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
	tail := report[strings.Index(report, "== last "):]
	if strings.Contains(tail, " move ") {
		t.Fatalf("movement entries leaked into the tail:\n%s", tail)
	}
}

func TestRunReportLimitsTail(t *testing.T) {
	log := sim.NewSimLog(false)
	w := sim.NewWorld(sim.DefaultConfig(), sim.NewRand(1), sim.LogTo(log))
	for i := 0; i < 10; i++ {
		log.Add(i, "combo", "reset", "timeout", 0)
	}
	report := runReport(uuid.New(), w, 4)
	if !strings.Contains(report, "== last 4 events ==") {
		t.Fatalf("tail not limited:\n%s", report)
	}
}
