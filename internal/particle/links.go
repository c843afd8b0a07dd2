package particle

import (
	"cmp"
	"math"
	"slices"
)

// Link is a proximity line between particles A and B, with A < B.
type Link struct {
	A, B     int
	Distance float64
	Alpha    float64
}

// LinkAlpha returns the stroke alpha for a pair at distance d. It falls
// linearly from base at d=0 to 0 at d=threshold and is 0 beyond.
func LinkAlpha(d, threshold, base float64) float64 {
	if threshold <= 0 || d >= threshold {
		return 0
	}
	return base * (1 - d/threshold)
}

// Links returns every unordered pair closer than the link distance, sorted by
// (A, B). The result is reused by the next call.
func (f *Field) Links() []Link {
	f.links = f.links[:0]
	if f.grid != nil {
		f.links = f.grid.links(f.links, f.particles, f.cfg.LinkDistance, f.cfg.LinkAlpha)
	} else {
		f.links = bruteLinks(f.links, f.particles, f.cfg.LinkDistance, f.cfg.LinkAlpha)
	}
	return f.links
}

// bruteLinks compares every pair once. Self pairs are skipped.
func bruteLinks(dst []Link, ps []Particle, threshold, base float64) []Link {
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dst = appendLink(dst, ps, i, j, threshold, base)
		}
	}
	return dst
}

func appendLink(dst []Link, ps []Particle, i, j int, threshold, base float64) []Link {
	d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
	if d >= threshold {
		return dst
	}
	return append(dst, Link{A: i, B: j, Distance: d, Alpha: LinkAlpha(d, threshold, base)})
}

type cellKey struct{ cx, cy int }

// linkGrid buckets particles into square cells one link distance wide so only
// neighbouring cells need comparing.
type linkGrid struct {
	size  float64
	cells map[cellKey][]int
}

func newLinkGrid(size float64) *linkGrid {
	return &linkGrid{size: size, cells: make(map[cellKey][]int)}
}

func (g *linkGrid) key(p Particle) cellKey {
	return cellKey{int(math.Floor(p.X / g.size)), int(math.Floor(p.Y / g.size))}
}

func (g *linkGrid) links(dst []Link, ps []Particle, threshold, base float64) []Link {
	if g.size <= 0 {
		return bruteLinks(dst, ps, threshold, base)
	}
	for k, bucket := range g.cells {
		g.cells[k] = bucket[:0]
	}
	for i := range ps {
		k := g.key(ps[i])
		g.cells[k] = append(g.cells[k], i)
	}

	for i := range ps {
		k := g.key(ps[i])
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				for _, j := range g.cells[cellKey{k.cx + dx, k.cy + dy}] {
					if j <= i {
						continue
					}
					dst = appendLink(dst, ps, i, j, threshold, base)
				}
			}
		}
	}

	slices.SortFunc(dst, func(a, b Link) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})
	return dst
}
