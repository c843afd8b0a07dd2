package effects

import (
	"math"

	"github.com/aquilax/go-perlin"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/portfolio-fx/internal/config"
)

// Source is the random source for effects. *math/rand/v2.Rand satisfies it.
type Source interface {
	Float64() float64
}

// morph is one morph target: offset, rotation, scale and the eight
// border-radius percentages (four horizontal, four vertical).
type morph struct {
	tx, ty float64
	rot    float64
	scale  float64
	radii  [8]float64
}

const morphFields = 12

func (m morph) fields() [morphFields]float64 {
	var f [morphFields]float64
	f[0], f[1], f[2], f[3] = m.tx, m.ty, m.rot, m.scale
	copy(f[4:], m.radii[:])
	return f
}

func morphFrom(f [morphFields]float64) morph {
	m := morph{tx: f[0], ty: f[1], rot: f[2], scale: f[3]}
	copy(m.radii[:], f[4:])
	return m
}

// Shape is one blurred gradient blob.
type Shape struct {
	// Left and Top are fractions of the viewport.
	Left, Top float64
	W, H      float64
	From, To  colorful.Color

	cur    morph
	tweens [morphFields]*gween.Tween
}

// Shapes animates the background blobs. Every interval each blob picks a new
// random target and eases to it; a slow noise drift is added on top.
type Shapes struct {
	cfg      config.ShapeConfig
	src      Source
	noise    *perlin.Perlin
	shapes   []*Shape
	elapsed  float64
	sinceNew float64
}

// NewShapes creates cfg.Count blobs and starts their first morph.
func NewShapes(cfg config.ShapeConfig, src Source, seed int64) *Shapes {
	s := &Shapes{
		cfg:   cfg,
		src:   src,
		noise: perlin.NewPerlin(2, 2, 3, seed),
	}
	for range cfg.Count {
		sh := &Shape{
			W:    cfg.Size.Min + src.Float64()*cfg.Size.Span(),
			H:    cfg.Size.Min + src.Float64()*cfg.Size.Span(),
			Left: src.Float64(),
			Top:  src.Float64(),
			From: colorful.Hsl(src.Float64()*360, 0.7, 0.6),
			To:   colorful.Hsl(src.Float64()*360, 0.7, 0.6),
		}
		sh.cur = morph{scale: 1, radii: s.randomRadii()}
		s.shapes = append(s.shapes, sh)
		s.retarget(sh)
	}
	return s
}

func (s *Shapes) randomRadii() [8]float64 {
	var r [8]float64
	for i := range r {
		r[i] = s.src.Float64() * 50
	}
	return r
}

func (s *Shapes) retarget(sh *Shape) {
	target := morph{
		tx:    s.src.Float64()*100 - 50,
		ty:    s.src.Float64()*100 - 50,
		rot:   s.src.Float64() * 360,
		scale: s.src.Float64()*0.5 + 0.75,
		radii: s.randomRadii(),
	}
	from, to := sh.cur.fields(), target.fields()
	for i := range sh.tweens {
		sh.tweens[i] = gween.New(float32(from[i]), float32(to[i]), float32(s.cfg.MorphInterval), ease.InOutCubic)
	}
}

// Update advances every morph by dt seconds.
func (s *Shapes) Update(dt float64) {
	s.elapsed += dt
	s.sinceNew += dt
	if s.sinceNew >= s.cfg.MorphInterval {
		s.sinceNew -= s.cfg.MorphInterval
		for _, sh := range s.shapes {
			s.retarget(sh)
		}
	}
	for _, sh := range s.shapes {
		f := sh.cur.fields()
		for i, tw := range sh.tweens {
			if tw == nil {
				continue
			}
			v, _ := tw.Update(float32(dt))
			f[i] = float64(v)
		}
		sh.cur = morphFrom(f)
	}
}

// Shapes returns the blobs.
func (s *Shapes) Shapes() []*Shape {
	return s.shapes
}

// Placement is where a blob is drawn this frame.
type Placement struct {
	CX, CY   float64
	Rotation float64 // radians
	Scale    float64
}

// Place resolves the blob's centre in a viewport of the given size, including
// the current morph offset and noise drift.
func (s *Shapes) Place(i int, viewW, viewH float64) Placement {
	sh := s.shapes[i]
	drift := 20 * s.noise.Noise2D(s.elapsed*0.1, float64(i))
	return Placement{
		CX:       sh.Left*viewW + sh.W/2 + sh.cur.tx + drift,
		CY:       sh.Top*viewH + sh.H/2 + sh.cur.ty - drift,
		Rotation: sh.cur.rot * math.Pi / 180,
		Scale:    sh.cur.scale,
	}
}

// Outline returns segments points around the blob centred on the origin,
// before rotation and scale. Each quadrant blends between the bounding box and
// the inscribed ellipse according to its border-radius percentage, 50% being
// fully round.
func (sh *Shape) Outline(segments int) [][2]float64 {
	hw, hh := sh.W/2, sh.H/2
	pts := make([][2]float64, 0, segments)
	for i := range segments {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		cos, sin := math.Cos(theta), math.Sin(theta)

		ex, ey := hw*cos, hh*sin
		box := 1 / math.Max(math.Abs(cos)/hw, math.Abs(sin)/hh)
		bx, by := box*cos, box*sin

		q := quadrant(cos, sin)
		round := (sh.cur.radii[q] + sh.cur.radii[q+4]) / 100
		pts = append(pts, [2]float64{bx + (ex-bx)*round, by + (ey-by)*round})
	}
	return pts
}

// quadrant maps a direction to the CSS corner order: top-left, top-right,
// bottom-right, bottom-left (y grows downwards).
func quadrant(cos, sin float64) int {
	switch {
	case cos < 0 && sin < 0:
		return 0
	case cos >= 0 && sin < 0:
		return 1
	case cos >= 0:
		return 2
	}
	return 3
}

// ColorAt returns the 45° gradient colour at a point of the outline, From at
// the bottom-left corner and To at the top-right.
func (sh *Shape) ColorAt(x, y float64) colorful.Color {
	t := ((x-y)/(sh.W/2+sh.H/2) + 1) / 2
	t = math.Min(math.Max(t, 0), 1)
	return sh.From.BlendLab(sh.To, t).Clamped()
}
