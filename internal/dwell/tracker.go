package dwell

import (
	"sync"
	"time"
)

// Tracker keeps per-class presence timestamps and decides when sustained
// presence in the restricted zone should escalate into a violation.
type Tracker struct {
	threshold time.Duration
	mu        sync.Mutex
	entries   map[string]time.Time
}

func NewTracker(threshold time.Duration) *Tracker {
	return &Tracker{
		threshold: threshold,
		entries:   make(map[string]time.Time),
	}
}

// Evaluate records presence of the class at the given time and reports
// whether this call should escalate. The first sighting only arms the timer.
// Once the threshold elapses the timer re-arms, so a class that stays in the
// zone escalates once per threshold interval rather than once per entry.
//
// Entries are intentionally not cleared when a class misses a frame, so a
// momentary detection dropout does not reset the dwell timer. StopTracking
// or Reset clear state explicitly.
func (t *Tracker) Evaluate(class string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[class]
	if !ok {
		t.entries[class] = now
		return false
	}

	if now.Sub(entry) >= t.threshold {
		t.entries[class] = now
		return true
	}

	return false
}

// StopTracking removes a single class from the tracker.
func (t *Tracker) StopTracking(class string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, class)
}

// Reset clears all dwell state, used when the camera stops.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]time.Time)
}

// Tracked returns the number of classes currently being tracked.
func (t *Tracker) Tracked() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
