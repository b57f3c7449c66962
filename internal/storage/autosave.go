package storage

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiet period before a scheduled save runs
const DefaultAutosaveDelay = time.Second

// Autosaver is a trailing debounce around a save function. Every Schedule
// restarts the timer; save runs once the calls stop for the full delay.
type Autosaver struct {
	mu      sync.Mutex
	delay   time.Duration
	save    func()
	timer   *time.Timer
	gen     uint64
	pending bool
	stopped bool
	detach  func()
}

// NewAutosaver creates an idle Autosaver. A non-positive delay uses
// DefaultAutosaveDelay.
func NewAutosaver(delay time.Duration, save func()) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{delay: delay, save: save}
}

// Schedule (re)starts the countdown to the next save
func (a *Autosaver) Schedule() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.pending = true
	a.timer = time.AfterFunc(a.delay, func() { a.fire(gen) })
}

func (a *Autosaver) fire(gen uint64) {
	a.mu.Lock()
	// A timer that lost the race with Schedule, Flush or Stop is stale
	if gen != a.gen || a.stopped || !a.pending {
		a.mu.Unlock()
		return
	}
	a.pending = false
	a.timer = nil
	a.mu.Unlock()

	a.save()
}

// Flush runs a pending save now. It does nothing when no save is pending.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if !a.pending {
		a.mu.Unlock()
		return
	}
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
	a.pending = false
	a.mu.Unlock()

	a.save()
}

// Stop cancels any pending save and ignores later Schedule calls
func (a *Autosaver) Stop() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
	a.pending = false
	a.stopped = true
	detach := a.detach
	a.detach = nil
	a.mu.Unlock()

	if detach != nil {
		detach()
	}
}

// Pending reports whether a save is scheduled
func (a *Autosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}
