package particle

import "image/color"

// LinkColor is the stroke colour of proximity links before alpha is applied.
var LinkColor = color.NRGBA{R: 100, G: 100, B: 255}

// Canvas is a 2D drawing surface.
type Canvas interface {
	FillCircle(x, y, r float64, c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// Render draws each particle followed by its links to higher-index particles,
// so later fills sit on top of earlier links.
func (f *Field) Render(c Canvas) {
	links := f.Links()
	next := 0
	for i, p := range f.particles {
		c.FillCircle(p.X, p.Y, p.Radius, p.Color)
		for ; next < len(links) && links[next].A == i; next++ {
			l := links[next]
			q := f.particles[l.B]
			stroke := LinkColor
			stroke.A = uint8(l.Alpha * 255)
			c.StrokeLine(p.X, p.Y, q.X, q.Y, f.cfg.LinkWidth, stroke)
		}
	}
}
