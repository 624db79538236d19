package sim

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Category string  // combat, boss, spawn, zenith, player, powerup, laser, combo, session, move
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] zenith   capture         zenith#17
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-8s %-15s %s", e.Tick, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. Unlike the host's event feed (a UI ring
// buffer), SimLog keeps every entry of the current run and is machine-readable.
// World.Restart clears it.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-frame player positions
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry. A nil log drops it.
func (sl *SimLog) Add(tick int, category, key, value string, numVal float64) {
	if sl == nil {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if sl == nil || !sl.verbose {
		return
	}
	sl.Add(tick, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Clear drops every entry. Hosts call it between runs so the log only
// covers the current one.
func (sl *SimLog) Clear() {
	if sl == nil {
		return
	}
	sl.entries = sl.entries[:0]
}

// Len is the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Since returns the entries recorded after the first n. Hosts use it to
// tail the log frame by frame.
func (sl *SimLog) Since(n int) []SimLogEntry {
	if n < 0 {
		n = 0
	}
	if n >= len(sl.entries) {
		return nil
	}
	return sl.entries[n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries with fromTick <= Tick <= toTick. Ticks
// restart at zero with each run, so the window covers the current run only
// after the log has been cleared.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick < fromTick || e.Tick > toTick {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category and key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if e := sl.entries[i]; e.Category == category && e.Key == key {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange renders the window [fromTick, toTick] one entry per line,
// leaving out per-frame movement.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		if e.Category == "move" {
			continue
		}
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable state summary for test output.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%04d ---\n", w.frame)
	fmt.Fprintf(&sb, "score=%d high=%d lives=%d combo=%d (max %d)\n",
		w.score, w.highScore, w.lives, w.combo.Counter, w.combo.Max)
	fmt.Fprintf(&sb, "entities: enemies=%d bullets=%d boss_bullets=%d powerups=%d\n",
		len(w.enemies), len(w.bullets), len(w.bossBullets), len(w.powerUps))
	if w.boss != nil {
		fmt.Fprintf(&sb, "boss: %s phase=%d health=%.0f/%.0f\n",
			w.boss.Type, w.boss.Phase, w.boss.Health, w.boss.MaxHealth)
	}
	k := w.kills
	fmt.Fprintf(&sb, "kills: normal=%d fast=%d big=%d zenith=%d bosses=%d\n",
		k.Normal, k.Fast, k.Big, k.Zenith, k.Bosses())
	fmt.Fprintf(&sb, "events: kills=%d captures=%d hits=%d\n",
		sl.CountCategory("combat", "enemy_killed"),
		sl.CountCategory("zenith", "capture"),
		sl.CountCategory("player", "hit"))
	return sb.String()
}
