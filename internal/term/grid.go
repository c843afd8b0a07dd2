// Package term draws the particle overlay into a terminal with tcell. Each
// cell stands for a CellWidth×CellHeight block of pixels, so the field keeps
// the proportions and link distance it has in a window.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/portfolio-fx/internal/surface"
)

const (
	CellWidth  = 8
	CellHeight = 16

	particleRune = '•'
	linkRune     = '·'
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellLink
	cellParticle
)

type cell struct {
	kind  cellKind
	color color.NRGBA
}

// gridBackend allocates cell grids.
type gridBackend struct{}

func (gridBackend) NewBuffer(w, h int) (surface.Buffer, error) {
	g := &grid{}
	g.Resize(w, h)
	return g, nil
}

// grid is a surface.Buffer of terminal cells. Particles claim their cell;
// links fill the cells they cross unless a particle sits there, keeping the
// strongest link per cell.
type grid struct {
	w, h       int
	cols, rows int
	cells      []cell
}

func (g *grid) Resize(w, h int) {
	g.w, g.h = w, h
	g.cols, g.rows = w/CellWidth, h/CellHeight
	g.cells = make([]cell, g.cols*g.rows)
}

func (g *grid) Size() (int, int) { return g.w, g.h }

func (g *grid) Clear() { clear(g.cells) }

func (g *grid) cellAt(col, row int) *cell {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return nil
	}
	return &g.cells[row*g.cols+col]
}

func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func (g *grid) FillCircle(x, y, _ float64, c color.Color) {
	if cl := g.cellAt(toCell(x, y)); cl != nil {
		cl.kind = cellParticle
		cl.color = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
}

// StrokeLine walks the cells between both ends with Bresenham's algorithm.
func (g *grid) StrokeLine(x0, y0, x1, y1, _ float64, c color.Color) {
	clr := color.NRGBAModel.Convert(c).(color.NRGBA)
	c0, r0 := toCell(x0, y0)
	c1, r1 := toCell(x1, y1)

	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		if cl := g.cellAt(c0, r0); cl != nil && cl.kind != cellParticle {
			if cl.kind == cellEmpty || clr.A > cl.color.A {
				cl.kind = cellLink
				cl.color = clr
			}
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// draw copies the grid to screen. Particles are shaded by their own alpha;
// links by their alpha relative to linkAlpha, the strongest a link can be.
func (g *grid) draw(screen tcell.Screen, linkAlpha float64) {
	for row := range g.rows {
		for col := range g.cols {
			cl := g.cells[row*g.cols+col]
			switch cl.kind {
			case cellParticle:
				screen.SetContent(col, row, particleRune, nil, shade(cl.color, float64(cl.color.A)/255))
			case cellLink:
				k := 1.0
				if linkAlpha > 0 {
					k = math.Min(float64(cl.color.A)/255/linkAlpha, 1)
				}
				screen.SetContent(col, row, linkRune, nil, shade(cl.color, k))
			default:
				screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
			}
		}
	}
}

func shade(c color.NRGBA, k float64) tcell.Style {
	scale := func(v uint8) int32 { return int32(math.Round(float64(v) * k)) }
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(scale(c.R), scale(c.G), scale(c.B)))
}
