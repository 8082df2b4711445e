package debounce

import (
	"sync"
	"time"
)

// Debouncer defers a function until a quiet period with no further triggers
// has elapsed. At most one run is pending at a time; a new Trigger replaces
// the pending one.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, replacing any pending run.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops any pending run without executing it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a run is currently scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
