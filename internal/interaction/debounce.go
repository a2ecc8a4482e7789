package interaction

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a resize re-renders
const DefaultDebounce = 150 * time.Millisecond

// Timer is the part of *time.Timer the debouncer needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc
type AfterFunc func(d time.Duration, f func()) Timer

// StdAfterFunc schedules through the runtime timer
func StdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer coalesces bursts of triggers into one call of fn,
// made once no trigger arrived for the delay. Last trigger wins.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	after AfterFunc
	timer Timer
	// gen invalidates callbacks of timers that fired while being stopped
	gen uint64
}

// NewDebouncer creates a debouncer; a nil after uses StdAfterFunc
func NewDebouncer(delay time.Duration, fn func(), after AfterFunc) *Debouncer {
	if after == nil {
		after = StdAfterFunc
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay, fn: fn, after: after}
}

// Trigger restarts the quiet period
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Cancel drops a pending call
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Pending reports whether a call is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
