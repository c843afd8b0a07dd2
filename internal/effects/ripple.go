package effects

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	rippleDuration = 0.6
	rippleScale    = 4
	rippleAlpha    = 0.3
)

// Ripple is one expanding circle.
type Ripple struct {
	X, Y  float64
	Scale float64
	Alpha float64
	tw    *gween.Tween
}

// Ripples tracks the ripples spawned on hover. Each grows from nothing to four
// times its base size while fading out, then is dropped.
type Ripples struct {
	items []*Ripple
}

// Spawn starts a ripple at (x, y).
func (r *Ripples) Spawn(x, y float64) {
	r.items = append(r.items, &Ripple{
		X:     x,
		Y:     y,
		Alpha: rippleAlpha,
		tw:    gween.New(0, 1, rippleDuration, ease.Linear),
	})
}

// Update advances every ripple by dt seconds and removes finished ones.
func (r *Ripples) Update(dt float64) {
	live := r.items[:0]
	for _, rp := range r.items {
		t, done := rp.tw.Update(float32(dt))
		if done {
			continue
		}
		rp.Scale = rippleScale * float64(t)
		rp.Alpha = rippleAlpha * (1 - float64(t))
		live = append(live, rp)
	}
	clear(r.items[len(live):])
	r.items = live
}

// Items returns the live ripples.
func (r *Ripples) Items() []*Ripple {
	return r.items
}
