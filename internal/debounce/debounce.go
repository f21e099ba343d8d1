// Package debounce coalesces bursts of calls into the last one.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs only the most recent function passed to Trigger, after delay
// has elapsed with no newer Trigger.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// New creates a debouncer. A non-positive delay runs functions synchronously.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, superseding any pending call.
func (d *Debouncer) Trigger(fn func()) {
	if d.delay <= 0 {
		d.mu.Lock()
		d.gen++
		d.mu.Unlock()
		fn()
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.gen == gen
		d.mu.Unlock()
		// a Stop that lost the race with the timer firing is caught here
		if current {
			fn()
		}
	})
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
