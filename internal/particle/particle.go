// Package particle simulates the background particle field: a fixed-size pool
// of drifting points on a toroidal surface, joined by fading lines when two
// points come within the link distance of each other.
package particle

import (
	"image/color"

	"github.com/iburimskiy/portfolio-fx/internal/config"
)

// Source is the random number source used when seeding particles.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Particle is one simulated point. Only the position changes after creation.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  color.NRGBA
}

// draw returns a value in [r.Min, r.Max).
func draw(src Source, r config.Range) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + src.Float64()*r.Span()
}

// channel converts a tint draw to a colour channel, saturating at the ends.
func channel(v float64) uint8 {
	return uint8(min(max(v, 0), 255))
}

// newParticle draws a particle in the order position, radius, velocity, tint.
func newParticle(src Source, cfg config.ParticleConfig, w, h float64) Particle {
	p := Particle{
		X: src.Float64() * w,
		Y: src.Float64() * h,
	}
	p.Radius = draw(src, cfg.Radius)
	p.VX = draw(src, cfg.Speed)
	p.VY = draw(src, cfg.Speed)
	p.Color = color.NRGBA{
		R: channel(draw(src, cfg.Tint)),
		G: channel(draw(src, cfg.Tint)),
		B: 255,
		A: uint8(cfg.Alpha * 255),
	}
	return p
}
