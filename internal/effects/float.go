package effects

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	FloatLift     = 20
	FloatScale    = 1.05
	floatDuration = 0.5
)

// Float raises a card while the pointer is over it and settles it back on
// leave. Both directions ease with a slight overshoot.
type Float struct {
	hovered bool
	amount  float64 // 0 resting, 1 raised
	tw      *gween.Tween
}

// SetHover starts the raise or settle when the hover state changes.
func (f *Float) SetHover(hovered bool) {
	if hovered == f.hovered {
		return
	}
	f.hovered = hovered
	to := float32(0)
	if hovered {
		to = 1
	}
	f.tw = gween.New(float32(f.amount), to, floatDuration, ease.OutBack)
}

// Update advances the running tween by dt seconds.
func (f *Float) Update(dt float64) {
	if f.tw == nil {
		return
	}
	v, done := f.tw.Update(float32(dt))
	f.amount = float64(v)
	if done {
		f.tw = nil
	}
}

// Offset is the vertical shift in pixels; negative is up.
func (f *Float) Offset() float64 {
	return -FloatLift * f.amount
}

// Scale is the size factor around the card centre.
func (f *Float) Scale() float64 {
	return 1 + (FloatScale-1)*f.amount
}
