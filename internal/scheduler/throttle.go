package scheduler

import (
	"sync"
	"time"
)

// Throttle lets one event through per window. The first event always passes;
// later events inside the window are rejected and reported by Pending so the
// caller can replay the last one once the window closes.
type Throttle struct {
	clock   Clock
	limit   time.Duration
	mu      sync.Mutex
	last    time.Time
	fired   bool
	pending bool
}

// NewThrottle creates a throttle. A zero limit lets every event through.
func NewThrottle(clock Clock, limit time.Duration) *Throttle {
	if clock == nil {
		clock = RealClock{}
	}
	return &Throttle{clock: clock, limit: limit}
}

// Allow reports whether an event arriving now should be handled.
func (t *Throttle) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()
	if t.limit <= 0 || !t.fired || now.Sub(t.last) >= t.limit {
		t.last = now
		t.fired = true
		t.pending = false
		return true
	}
	t.pending = true
	return false
}

// Pending reports whether an event was rejected since the last one allowed.
func (t *Throttle) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}
