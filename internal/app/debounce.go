package app

import (
	"sync"
	"time"
)

// PageFlipInterval is the minimum spacing between accepted page-flip
// keystrokes when a key is held down.
const PageFlipInterval = 80 * time.Millisecond

// Debouncer coalesces bursts of triggers into a single invocation after a
// quiet window. Only the last call within the window executes.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger schedules fn, cancelling any previously pending invocation.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Throttler admits at most one call per interval; the rest are dropped.
type Throttler struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{interval: interval}
}

func (t *Throttler) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	if now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
