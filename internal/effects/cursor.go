// Package effects holds the small frame-driven page effects layered around the
// particle overlay: custom cursor, morphing blobs, typewriter text, scroll
// reveals, hover ripples, parallax and tilt, the load screen and floating
// form labels. Each effect is advanced by Update(dt) and read back for drawing.
package effects

import (
	"image/color"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/portfolio-fx/internal/config"
)

var (
	cursorColor      = color.NRGBA{R: 52, G: 152, B: 219, A: 128}
	cursorHoverColor = color.NRGBA{R: 231, G: 76, B: 60, A: 204}
	ringColor        = color.NRGBA{R: 52, G: 152, B: 219, A: 77}
)

// Cursor is a dot pinned to the pointer plus a ring that eases after it.
type Cursor struct {
	cfg config.CursorConfig

	x, y   float64
	fx, fy float64

	hovered bool
	mix     float64 // 0 idle, 1 hovered
	ring    float64
	mixTw   *gween.Tween
	ringTw  *gween.Tween
}

// NewCursor creates a cursor at the origin.
func NewCursor(cfg config.CursorConfig) *Cursor {
	return &Cursor{cfg: cfg, ring: cfg.RingSize}
}

// MoveTo pins the dot to the pointer.
func (c *Cursor) MoveTo(x, y float64) {
	c.x, c.y = x, y
}

// SetHover grows the dot and ring while the pointer is over something
// interactive.
func (c *Cursor) SetHover(hovered bool) {
	if hovered == c.hovered {
		return
	}
	c.hovered = hovered
	mixTo, ringTo := 0.0, c.cfg.RingSize
	if hovered {
		mixTo, ringTo = 1, c.cfg.RingHover
	}
	c.mixTw = gween.New(float32(c.mix), float32(mixTo), 0.2, ease.OutQuad)
	c.ringTw = gween.New(float32(c.ring), float32(ringTo), 0.4, ease.OutQuad)
}

// Update moves the ring a fixed fraction of the way to the pointer and
// advances the hover tweens by dt seconds.
func (c *Cursor) Update(dt float64) {
	c.fx += (c.x - c.fx) * c.cfg.FollowFactor
	c.fy += (c.y - c.fy) * c.cfg.FollowFactor

	if c.mixTw != nil {
		v, done := c.mixTw.Update(float32(dt))
		c.mix = float64(v)
		if done {
			c.mixTw = nil
		}
	}
	if c.ringTw != nil {
		v, done := c.ringTw.Update(float32(dt))
		c.ring = float64(v)
		if done {
			c.ringTw = nil
		}
	}
}

// Dot returns the dot centre, diameter and colour.
func (c *Cursor) Dot() (x, y, size float64, clr color.NRGBA) {
	scale := 1 + 0.5*c.mix
	return c.x, c.y, c.cfg.DotSize * scale, lerpNRGBA(cursorColor, cursorHoverColor, c.mix)
}

// Ring returns the follower centre, diameter and colour.
func (c *Cursor) Ring() (x, y, size float64, clr color.NRGBA) {
	return c.fx, c.fy, c.ring, ringColor
}

// Hovered reports the current hover state.
func (c *Cursor) Hovered() bool {
	return c.hovered
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	l := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.NRGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}
