package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/Garsondee/zenith-shmup/internal/sim"
)

const reportTailEvents = 120

// runReport renders the session summary followed by the most recent
// non-movement events.
func runReport(session uuid.UUID, w *sim.World, lastEvents int) string {
	if lastEvents <= 0 {
		lastEvents = reportTailEvents
	}
	cfg := w.Config()

	var b strings.Builder
	fmt.Fprintf(&b, "--- zenith-shmup run report ---\n")
	fmt.Fprintf(&b, "session=%s frame=%d aggressiveness=%.2f area=%.0fx%.0f\n\n",
		session, w.Frame(), cfg.Aggressiveness, cfg.Width, cfg.Height)
	b.WriteString(w.Summary().String())
	b.WriteByte('\n')
	b.WriteString(w.Log().Summary(w))

	var tail []sim.SimLogEntry
	for _, e := range w.Log().Entries() {
		if e.Category != "move" {
			tail = append(tail, e)
		}
	}
	if len(tail) > lastEvents {
		tail = tail[len(tail)-lastEvents:]
	}
	fmt.Fprintf(&b, "\n== last %d events ==\n", len(tail))
	if len(tail) == 0 {
		b.WriteString("(none recorded yet)\n")
	}
	for _, e := range tail {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// copyReport puts the run report on the system clipboard.
func (g *Game) copyReport() {
	report := runReport(g.session, g.world, reportTailEvents)
	if err := clipboard.WriteAll(report); err != nil {
		g.log.Warn("copy report", "err", err)
		g.notify("clipboard unavailable")
		return
	}
	g.log.Info("report copied", "bytes", len(report))
	g.notify("report copied to clipboard")
}
