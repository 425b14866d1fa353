package tui

import (
	"time"

	"github.com/vovakirdan/carpetrun/internal/carpet"
)

// HoldTracker emulates key release for terminals that only report presses.
// A direction stays held while auto-repeat keeps refreshing it and is released
// once no press has arrived for the hold window.
type HoldTracker struct {
	hold time.Duration
	last map[carpet.Direction]time.Time
}

// NewHoldTracker creates a tracker with the given hold window.
func NewHoldTracker(hold time.Duration) *HoldTracker {
	return &HoldTracker{
		hold: hold,
		last: make(map[carpet.Direction]time.Time, 2),
	}
}

// Press records a press of d. The opposite direction is released at once, since
// the terminal only repeats the most recent key.
func (h *HoldTracker) Press(d carpet.Direction, now time.Time) {
	h.last[d] = now
	delete(h.last, opposite(d))
}

// Held reports whether d is still considered held at now.
func (h *HoldTracker) Held(d carpet.Direction, now time.Time) bool {
	t, ok := h.last[d]
	return ok && now.Sub(t) < h.hold
}

// ReleaseAll forgets every press.
func (h *HoldTracker) ReleaseAll() {
	clear(h.last)
}

func opposite(d carpet.Direction) carpet.Direction {
	if d == carpet.DirUp {
		return carpet.DirDown
	}
	return carpet.DirUp
}
