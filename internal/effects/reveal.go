package effects

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	revealStagger  = 0.1
	revealDuration = 0.8
	revealDistance = 50
)

// Reveal fades an element in and slides it up into place the first time it
// becomes visible. Elements later in the page wait 100 ms per index.
type Reveal struct {
	delay     float64
	triggered bool
	alpha     float64
	offset    float64
	alphaTw   *gween.Tween
	offsetTw  *gween.Tween
}

// NewReveal creates a hidden element at the given stagger index.
func NewReveal(index int) *Reveal {
	return &Reveal{
		delay:  float64(index) * revealStagger,
		offset: revealDistance,
	}
}

// Trigger starts the reveal. Only the first call has any effect.
func (r *Reveal) Trigger() {
	if r.triggered {
		return
	}
	r.triggered = true
	r.alphaTw = gween.New(0, 1, revealDuration, ease.Linear)
	r.offsetTw = gween.New(revealDistance, 0, revealDuration, ease.OutBack)
}

// Update advances the reveal by dt seconds.
func (r *Reveal) Update(dt float64) {
	if !r.triggered || r.alphaTw == nil {
		return
	}
	if r.delay > 0 {
		r.delay -= dt
		if r.delay > 0 {
			return
		}
		dt = -r.delay
		r.delay = 0
	}
	a, doneA := r.alphaTw.Update(float32(dt))
	o, doneO := r.offsetTw.Update(float32(dt))
	r.alpha, r.offset = float64(a), float64(o)
	if doneA && doneO {
		r.alpha, r.offset = 1, 0
		r.alphaTw, r.offsetTw = nil, nil
	}
}

// Alpha returns the current opacity in [0,1].
func (r *Reveal) Alpha() float64 {
	return r.alpha
}

// Offset returns how far below its resting place the element is drawn.
func (r *Reveal) Offset() float64 {
	return r.offset
}

// Triggered reports whether the element has been seen.
func (r *Reveal) Triggered() bool {
	return r.triggered
}
