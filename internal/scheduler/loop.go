// Package scheduler provides a repeating timer driven by an external clock.
// Hosts advance it from their frame loop, so firing is deterministic and
// never concurrent with the rest of the game.
package scheduler

import "time"

// Loop calls a callback once every Period while running.
type Loop struct {
	Period   time.Duration
	callback func()

	running bool
	next    time.Duration
	fired   int
}

// NewLoop creates a stopped loop.
func NewLoop(period time.Duration, callback func()) *Loop {
	return &Loop{
		Period:   period,
		callback: callback,
	}
}

// Start arms the loop so the first call happens one period after now.
// Starting a running loop re-arms it.
func (l *Loop) Start(now time.Duration) {
	l.running = true
	l.next = now + l.Period
}

// Stop disarms the loop. Takes effect immediately, including from inside
// the callback.
func (l *Loop) Stop() {
	l.running = false
}

// Running reports whether the loop is armed.
func (l *Loop) Running() bool {
	return l.running
}

// Fired returns how many times the callback has run.
func (l *Loop) Fired() int {
	return l.fired
}

// Advance runs the callback once for every period boundary at or before now.
// Returns the number of calls made.
func (l *Loop) Advance(now time.Duration) int {
	if l.Period <= 0 {
		return 0
	}

	calls := 0
	for l.running && now >= l.next {
		l.next += l.Period
		l.fired++
		calls++
		if l.callback != nil {
			l.callback()
		}
	}
	return calls
}
