package debounce

import (
	"sync"
	"time"
)

// State of the debouncer: Idle until the first Submit, Pending while a value
// waits out the window, Committed once a value has been handed to the
// callback.
type State int

const (
	StateIdle State = iota
	StatePending
	StateCommitted
)

// Debouncer commits the last submitted value once it has been stable for the
// whole window. Every Submit restarts the window, so of a burst of values
// only the final one commits.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	commit  func(string)
	timer   *time.Timer
	state   State
	pending string
	// generation increments on every Submit; a timer only commits when its
	// own generation is still current, so a stale timer racing a fresh
	// Submit cannot commit the fresh value before its window has elapsed.
	generation uint64
}

func New(window time.Duration, commit func(string)) *Debouncer {
	return &Debouncer{
		window: window,
		commit: commit,
	}
}

func (d *Debouncer) Submit(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = value
	d.state = StatePending
	d.generation++
	gen := d.generation
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.state != StatePending || gen != d.generation {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.state = StateCommitted
	d.mu.Unlock()

	d.commit(value)
}

// Stop cancels any pending value without committing it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.state = StateIdle
}

func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}
