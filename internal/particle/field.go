package particle

import (
	"math"

	"github.com/iburimskiy/portfolio-fx/internal/config"
)

// Field is the simulation context for one overlay surface. It owns its
// particles; callers only read them through Particles.
type Field struct {
	cfg       config.ParticleConfig
	src       Source
	particles []Particle
	width     float64
	height    float64

	links []Link
	grid  *linkGrid
}

// NewField creates an empty field. Call Reseed once the surface size is known.
func NewField(cfg config.ParticleConfig, src Source) *Field {
	f := &Field{cfg: cfg, src: src}
	if cfg.UseGrid {
		f.grid = newLinkGrid(cfg.LinkDistance)
	}
	return f
}

// Reseed discards every particle and builds n new ones spread uniformly over
// [0,w)×[0,h). Negative n or sizes are treated as zero.
func (f *Field) Reseed(n int, w, h float64) {
	n = max(n, 0)
	f.width = math.Max(w, 0)
	f.height = math.Max(h, 0)

	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = newParticle(f.src, f.cfg, f.width, f.height)
	}
	f.particles = particles
}

// Tick advances every particle by its velocity and wraps it back onto the
// surface at the opposite edge.
func (f *Field) Tick() {
	for i := range f.particles {
		p := &f.particles[i]
		p.X = wrap(p.X+p.VX, f.width)
		p.Y = wrap(p.Y+p.VY, f.height)
	}
}

// Particles returns the current pool. The slice is replaced, never mutated in
// place, on Reseed.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Len returns the pool size.
func (f *Field) Len() int {
	return len(f.particles)
}

// Bounds returns the surface size the pool was seeded for.
func (f *Field) Bounds() (w, h float64) {
	return f.width, f.height
}

// Config returns the tunables the field was created with.
func (f *Field) Config() config.ParticleConfig {
	return f.cfg
}

// wrap maps v onto [0, upper). Overshoot carries across the edge.
func wrap(v, upper float64) float64 {
	if upper <= 0 {
		return 0
	}
	if v >= 0 && v < upper {
		return v
	}
	v = math.Mod(v, upper)
	if v < 0 {
		v += upper
	}
	// -ε + upper can round up to upper.
	if v >= upper {
		v = 0
	}
	return v
}
