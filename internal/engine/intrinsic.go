package engine

import "github.com/zappabad/crowdcraft/internal/window"

// Tracker maintains the long-horizon intrinsic value the price process
// reverts toward. It is recomputed once per simulated day, never per tick.
type Tracker struct {
	value float64
}

// NewTracker pins the intrinsic value at the initial price.
func NewTracker(initial float64) *Tracker {
	return &Tracker{value: initial}
}

// Update recomputes the intrinsic value from the anchor window's mean. Until
// the window is full the value stays pinned where it started.
func (t *Tracker) Update(w *window.Window) {
	if !w.Full() {
		return
	}
	if m, err := w.Mean(); err == nil {
		t.value = m
	}
}

// Value returns the current intrinsic value.
func (t *Tracker) Value() float64 { return t.value }
