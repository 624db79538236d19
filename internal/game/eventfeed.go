package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/zenith-shmup/internal/sim"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 12
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick     int
	Category string
	Message  string
}

// EventFeed is a ring buffer of recent simulation events rendered as a side
// panel. It tails a SimLog; per-frame movement entries are skipped.
type EventFeed struct {
	entries []FeedEntry
	head    int
	count   int
	cursor  int // SimLog entries already consumed
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (f *EventFeed) Add(tick int, category, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Category: category, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Pull consumes every SimLog entry recorded since the last call.
func (f *EventFeed) Pull(log *sim.SimLog) int {
	if log == nil {
		return 0
	}
	if f.cursor > log.Len() {
		f.cursor = 0
	}
	added := 0
	for _, e := range log.Since(f.cursor) {
		f.cursor++
		if e.Category == "move" {
			continue
		}
		msg := e.Key
		if e.Value != "" {
			msg = fmt.Sprintf("%s %s", e.Key, e.Value)
		}
		f.Add(e.Tick, e.Category, msg)
		added++
	}
	return added
}

// Len is the number of buffered entries.
func (f *EventFeed) Len() int { return f.count }

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func categoryColor(category string) color.RGBA {
	switch category {
	case "combat":
		return color.RGBA{R: 230, G: 160, B: 60, A: 255}
	case "boss", "spawn":
		return color.RGBA{R: 220, G: 70, B: 70, A: 255}
	case "zenith":
		return color.RGBA{R: 170, G: 90, B: 255, A: 255}
	case "player":
		return color.RGBA{R: 80, G: 200, B: 255, A: 255}
	case "powerup", "laser":
		return color.RGBA{R: 90, G: 230, B: 90, A: 255}
	case "combo":
		return color.RGBA{R: 255, G: 210, B: 40, A: 255}
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
}

// Draw renders the feed panel with its left edge at panelX.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 8, G: 8, B: 16, A: 235}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 110, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 20, G: 20, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+feedPanelWidth), 16, 1.0, color.RGBA{R: 60, G: 60, B: 110, A: 200}, false)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const highlighted = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-highlighted {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 30, G: 30, B: 55, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, categoryColor(e.Category), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y-2)
		y += feedLineHeight
	}
}
