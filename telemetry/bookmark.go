package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkCollisionSurge   BookmarkType = "collision_surge"
	BookmarkPenetrationSpike BookmarkType = "penetration_spike"
	BookmarkMassDespawn      BookmarkType = "mass_despawn"
	BookmarkSettled          BookmarkType = "settled"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        uint64       `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags windows that stand out from recent history.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	settledWindows int // consecutive windows with no overlapping pairs
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkCollisionSurge(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkPenetrationSpike(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := checkMassDespawn(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkCollisionSurge fires when the collision count is over twice the
// rolling average.
func (bd *BookmarkDetector) checkCollisionSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Collisions
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Collisions) > avg*2 && stats.Collisions >= 10 {
		return &Bookmark{
			Type:        BookmarkCollisionSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d collisions is %.1fx average (%.1f)", stats.Collisions, float64(stats.Collisions)/avg, avg),
		}
	}
	return nil
}

// checkPenetrationSpike fires when the worst residual overlap is over twice
// the rolling average of p90 depths.
func (bd *BookmarkDetector) checkPenetrationSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.PenetrationP90
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.PenetrationMax > avg*2 {
		return &Bookmark{
			Type:        BookmarkPenetrationSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Max penetration %.3f is %.1fx average p90 (%.3f)", stats.PenetrationMax, stats.PenetrationMax/avg, avg),
		}
	}
	return nil
}

// checkMassDespawn fires when a window removes a fifth or more of the bodies
// it started with.
func checkMassDespawn(stats WindowStats) *Bookmark {
	before := stats.Bodies + stats.Despawned
	if before == 0 || stats.Despawned < 3 {
		return nil
	}
	frac := float64(stats.Despawned) / float64(before)
	if frac >= 0.2 {
		return &Bookmark{
			Type:        BookmarkMassDespawn,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d of %d bodies despawned (%.0f%%)", stats.Despawned, before, frac*100),
		}
	}
	return nil
}

// checkSettled fires once after five consecutive windows without overlap.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.Overlapping > 0 || stats.Bodies == 0 {
		bd.settledWindows = 0
		return nil
	}
	bd.settledWindows++
	if bd.settledWindows == 5 {
		return &Bookmark{
			Type:        BookmarkSettled,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("No overlapping pairs among %d bodies for 5 windows", stats.Bodies),
		}
	}
	return nil
}
