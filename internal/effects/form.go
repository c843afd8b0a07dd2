package effects

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	labelLift     = -10
	labelScale    = 0.9
	labelDuration = 0.3
	shakeDuration = 0.5
	shakeAmount   = 5
)

// FloatingLabel lifts a form label while its input is focused or holds text,
// and shakes the input briefly on focus.
type FloatingLabel struct {
	focused bool
	value   string

	lift    float64 // 0 resting, 1 lifted
	liftTw  *gween.Tween
	shakeAt float64 // seconds left in the shake, 0 when idle
}

// Focus lifts the label and starts the shake.
func (f *FloatingLabel) Focus() {
	if f.focused {
		return
	}
	f.focused = true
	f.animate(1)
	f.shakeAt = shakeDuration
}

// Blur drops the label unless the input still holds text.
func (f *FloatingLabel) Blur() {
	if !f.focused {
		return
	}
	f.focused = false
	if f.value == "" {
		f.animate(0)
	}
}

// SetValue records the input contents.
func (f *FloatingLabel) SetValue(v string) {
	f.value = v
}

// Value returns the input contents.
func (f *FloatingLabel) Value() string {
	return f.value
}

// Focused reports whether the input has focus.
func (f *FloatingLabel) Focused() bool {
	return f.focused
}

func (f *FloatingLabel) animate(to float64) {
	f.liftTw = gween.New(float32(f.lift), float32(to), labelDuration, ease.OutQuad)
}

// Update advances the label and shake by dt seconds.
func (f *FloatingLabel) Update(dt float64) {
	if f.liftTw != nil {
		v, done := f.liftTw.Update(float32(dt))
		f.lift = float64(v)
		if done {
			f.liftTw = nil
		}
	}
	if f.shakeAt > 0 {
		f.shakeAt = max(f.shakeAt-dt, 0)
	}
}

// Label returns the label's vertical offset and scale.
func (f *FloatingLabel) Label() (dy, scale float64) {
	return labelLift * f.lift, 1 + (labelScale-1)*f.lift
}

// Highlighted reports whether the label is drawn in the accent colour. It
// stays highlighted after blur while the input holds text.
func (f *FloatingLabel) Highlighted() bool {
	return f.focused || f.value != ""
}

// Shake returns the input's horizontal offset: 0, -5, +5, 0 across the shake.
func (f *FloatingLabel) Shake() float64 {
	if f.shakeAt <= 0 {
		return 0
	}
	p := 1 - f.shakeAt/shakeDuration
	switch {
	case p < 0.25:
		return -shakeAmount * p / 0.25
	case p < 0.75:
		return -shakeAmount + 2*shakeAmount*(p-0.25)/0.5
	}
	return shakeAmount * (1 - p) / 0.25
}
