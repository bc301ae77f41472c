// Package analytics keeps an in-memory log of ad click events. Nothing is
// persisted; events exist only for the process lifetime.
package analytics

import (
	"sync"

	"chatads/internal/models"
)

const (
	// DefaultMaxEvents bounds the log; the oldest event is dropped first.
	DefaultMaxEvents = 1000

	// recentClicks is how many events the summary returns.
	recentClicks = 20
)

// ClickLog is a bounded FIFO of click events. Safe for concurrent use.
type ClickLog struct {
	mu     sync.Mutex
	events []models.ClickEvent
	max    int
}

// NewClickLog creates a ClickLog holding at most max events. Non-positive
// max falls back to the default.
func NewClickLog(max int) *ClickLog {
	if max <= 0 {
		max = DefaultMaxEvents
	}
	return &ClickLog{max: max}
}

// Record appends an event, dropping the oldest when the log is full.
func (l *ClickLog) Record(ev models.ClickEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, ev)
	if len(l.events) > l.max {
		l.events = l.events[1:]
	}
}

// Summary returns the total click count, per-advertiser counts, and the
// most recent events (newest last).
func (l *ClickLog) Summary() models.ClickSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	byAdvertiser := make(map[string]int, len(l.events))
	for _, ev := range l.events {
		byAdvertiser[ev.Advertiser]++
	}

	recent := l.events
	if len(recent) > recentClicks {
		recent = recent[len(recent)-recentClicks:]
	}
	out := make([]models.ClickEvent, len(recent))
	copy(out, recent)

	return models.ClickSummary{
		TotalClicks:        len(l.events),
		ClicksByAdvertiser: byAdvertiser,
		RecentClicks:       out,
	}
}
