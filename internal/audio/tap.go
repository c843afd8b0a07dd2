package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap passes a stream through unchanged while keeping the last samples it
// played, downmixed to mono, in a ring for the analyser.
type Tap struct {
	beep.Streamer

	mu   sync.RWMutex
	ring []float64
	head int // next slot to write
	n    int // slots written, capped at len(ring)
}

// NewTap creates a tap remembering ringSize samples of src.
func NewTap(src beep.Streamer, ringSize int) *Tap {
	return &Tap{
		Streamer: src,
		ring:     make([]float64, max(ringSize, 1)),
	}
}

// Stream fills samples from the wrapped streamer and records what it played.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Streamer.Stream(samples)
	if n == 0 {
		return n, ok
	}
	t.mu.Lock()
	for _, s := range samples[:n] {
		t.ring[t.head] = (s[0] + s[1]) / 2
		t.head = (t.head + 1) % len(t.ring)
	}
	t.n = min(t.n+n, len(t.ring))
	t.mu.Unlock()
	return n, ok
}

// Snapshot returns up to the last n mono samples, oldest first. Slots never
// written yet read as silence.
func (t *Tap) Snapshot(n int) []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, len(t.ring))
	out := make([]float64, n)
	start := t.head - n
	if start < 0 {
		start += len(t.ring)
	}
	// The window may straddle the end of the ring.
	k := copy(out, t.ring[start:])
	copy(out[k:], t.ring)
	return out
}

// Written reports how many samples the ring currently holds.
func (t *Tap) Written() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.n
}
