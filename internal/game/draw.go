package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/portfolio-fx/internal/config"
	"github.com/iburimskiy/portfolio-fx/internal/effects"
)

const (
	shapeSegments = 64
	rippleRadius  = 20
	loaderDotSize = 8
	bodySize      = 14
)

var (
	textColor  = color.NRGBA{R: 230, G: 235, B: 245, A: 255}
	mutedColor = color.NRGBA{R: 150, G: 160, B: 180, A: 255}
	labelHot   = color.NRGBA{R: 52, G: 152, B: 219, A: 255}
)

func (g *Game) drawBackground(screen *ebiten.Image) {
	// Slow vertical gradient, drawn in 4 px bands.
	for y := 0; y < g.h; y += 4 {
		ratio := float64(y) / float64(g.h)
		r := uint8(10 + 8*math.Sin(g.time*0.5+ratio*math.Pi))
		gv := uint8(12 + 6*math.Cos(g.time*0.3+ratio*math.Pi))
		b := uint8(24 + 10*math.Sin(g.time*0.7+ratio*math.Pi))
		vector.DrawFilledRect(screen, 0, float32(y), float32(g.w), 4, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

// scratch returns img if it matches the screen size, or a fresh image.
func (g *Game) scratch(img *ebiten.Image) *ebiten.Image {
	if img != nil && img.Bounds().Dx() == g.w && img.Bounds().Dy() == g.h {
		img.Clear()
		return img
	}
	if img != nil {
		img.Deallocate()
	}
	return ebiten.NewImage(max(g.w, 1), max(g.h, 1))
}

func (g *Game) white() *ebiten.Image {
	if g.whiteImg == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		g.whiteImg = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return g.whiteImg
}

// drawShapes renders the morphing blobs opaque into a layer and composites
// the layer at the configured opacity.
func (g *Game) drawShapes(screen *ebiten.Image) {
	g.shapesImg = g.scratch(g.shapesImg)
	for i, sh := range g.shapes.Shapes() {
		g.fillShape(sh, g.shapes.Place(i, float64(g.w), float64(g.h)))
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(g.cfg.Shapes.Opacity))
	screen.DrawImage(g.shapesImg, op)
}

// fillShape fans triangles out from the blob centre, colouring each vertex
// from the blob's gradient.
func (g *Game) fillShape(sh *effects.Shape, pl effects.Placement) {
	sin, cos := math.Sincos(pl.Rotation)
	g.vertices = g.vertices[:0]
	add := func(lx, ly float64) {
		c := sh.ColorAt(lx, ly)
		g.vertices = append(g.vertices, ebiten.Vertex{
			DstX:   float32((lx*cos-ly*sin)*pl.Scale + pl.CX),
			DstY:   float32((lx*sin+ly*cos)*pl.Scale + pl.CY),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(c.R),
			ColorG: float32(c.G),
			ColorB: float32(c.B),
			ColorA: 1,
		})
	}
	add(0, 0)
	pts := sh.Outline(shapeSegments)
	for _, p := range pts {
		add(p[0], p[1])
	}

	g.indices = g.indices[:0]
	n := uint16(len(pts))
	for i := range n {
		g.indices = append(g.indices, 0, i+1, (i+1)%n+1)
	}
	g.shapesImg.DrawTriangles(g.vertices, g.indices, g.white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	buf, ok := g.manager.Buffer().(*imageBuffer)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(g.manager.Presentation().Opacity))
	screen.DrawImage(buf.img, op)
}

func newFontSource() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return src, nil
}

func (g *Game) face(size float64) *text.GoTextFace {
	f, ok := g.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: g.font, Size: size}
		g.faces[size] = f
	}
	return f
}

// drawText draws s with its top-left corner at (x, y).
func (g *Game) drawText(dst *ebiten.Image, s string, x, y, size float64, clr color.NRGBA) {
	if s == "" || clr.A == 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, g.face(size), op)
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * clamp01(alpha))
	return c
}

func (g *Game) drawPage(screen *ebiten.Image) {
	p := g.page

	hero := p.sections[0]
	heroY := hero.top - p.scroll + hero.height/2 - 40 + p.heroOffset()
	g.drawText(screen, hero.title, sectionPad, heroY, 56, textColor)
	g.drawText(screen, p.hero.Text(), sectionPad, heroY+80, 22, mutedColor)

	for si, s := range p.sections[1:] {
		top := s.top - p.scroll
		if top > float64(g.h) || top+s.height < 0 {
			continue
		}
		alpha, offset := s.reveal.Alpha(), s.reveal.Offset()
		g.drawText(screen, s.title, sectionPad, top+sectionPad+offset-10, 28, fade(textColor, alpha))

		// Sections rotate about their vertical axis; in 2D that narrows
		// them around the page centre.
		squeeze := math.Cos(s.tilt * math.Pi / 180)
		cx := float64(g.w) / 2
		for ci, c := range s.cards {
			a, off := c.reveal.Alpha(), c.reveal.Offset()
			if a == 0 {
				continue
			}
			b := c.lifted()
			x := cx + (b.x-cx)*squeeze
			y := b.y - p.scroll + off
			w := b.w * squeeze
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(b.h), color.NRGBA{R: 30, G: 36, B: 52, A: uint8(220 * a)}, true)
			border := accent(si*4+ci, a*0.6)
			if c.hovered {
				border = accent(si*4+ci, a)
			}
			vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(b.h), 2, border, true)
			g.drawText(screen, c.title, x+16, y+16, bodySize, fade(textColor, a))
		}
	}

	for _, rp := range p.ripples.Items() {
		vector.DrawFilledCircle(screen, float32(rp.X), float32(rp.Y-p.scroll), float32(rippleRadius*rp.Scale),
			color.NRGBA{R: 255, G: 255, B: 255, A: uint8(rp.Alpha * 255)}, true)
	}

	g.drawForm(screen)
}

func (g *Game) drawForm(screen *ebiten.Image) {
	p := g.page
	in := p.input
	x := in.x + p.label.Shake()
	y := in.y - p.scroll
	if y > float64(g.h) || y+in.h < 0 {
		return
	}
	border := mutedColor
	if p.label.Focused() {
		border = labelHot
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(in.w), float32(in.h), color.NRGBA{R: 20, G: 24, B: 34, A: 230}, true)
	vector.StrokeRect(screen, float32(x), float32(y), float32(in.w), float32(in.h), 1, border, true)

	dy, scale := p.label.Label()
	labelClr := mutedColor
	if p.label.Highlighted() {
		labelClr = labelHot
	}
	// The resting label sits inside the input; lifted, it rides on the border.
	g.drawText(screen, "Your email", x+10, y+4+dy*1.6, bodySize*scale, labelClr)
	g.drawText(screen, p.label.Value(), x+10, y+20, bodySize, textColor)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255}
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255}
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	}
	vector.DrawFilledRect(screen, float32(buttonX), float32(buttonY), float32(buttonWidth), float32(buttonHeight), bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(buttonX), float32(buttonY), float32(buttonWidth), float32(buttonHeight), 2, borderColor, false)

	label := "Open File"
	textWidth, textHeight := text.Measure(label, g.face(bodySize), 0)
	textX := buttonX + (buttonWidth-textWidth)/2
	textY := buttonY + (buttonHeight-textHeight)/2
	g.drawText(screen, label, textX, textY, bodySize, textColor)
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	pos, total := g.player.Progress()
	if total == 0 {
		return
	}
	bar := g.progressRect()
	x, y := float32(bar.Min.X), float32(bar.Min.Y)
	w, h := float32(bar.Dx()), float32(bar.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)

	progress := clamp01(float64(pos) / float64(total))
	r, gv, b := hsvToRgb(g.time*20+progress*180, 0.8, 0.9)
	vector.DrawFilledRect(screen, x, y, w*float32(progress), h, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
}

// drawVisualizer draws the frequency strip along the bottom edge while audio
// is playing.
func (g *Game) drawVisualizer(screen *ebiten.Image) {
	if !g.player.Playing() {
		return
	}
	top := float64(g.h - config.VisualizerHeight)
	alpha := uint8(math.Round(config.VisualizerOpacity * 255))
	for _, bar := range g.viz.Bars(float64(g.w), config.VisualizerHeight) {
		// Bars taller than the strip are clipped at its top edge.
		y := max(bar.Y, 0)
		h := bar.H - (y - bar.Y)
		c := color.NRGBA{R: bar.Color.R, G: bar.Color.G, B: bar.Color.B, A: alpha}
		vector.DrawFilledRect(screen, float32(bar.X), float32(top+y), float32(bar.W), float32(h), c, false)
	}
}

func (g *Game) drawCursor(screen *ebiten.Image) {
	rx, ry, ring, ringClr := g.cursor.Ring()
	vector.StrokeCircle(screen, float32(rx), float32(ry), float32(ring/2), 2, ringClr, true)
	x, y, size, clr := g.cursor.Dot()
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(size/2), clr, true)
}

func (g *Game) drawLoader(screen *ebiten.Image) {
	if g.loader.Done() {
		return
	}
	alpha := g.loader.Opacity()
	vector.DrawFilledRect(screen, 0, 0, float32(g.w), float32(g.h), color.NRGBA{R: 10, G: 12, B: 20, A: uint8(alpha * 255)}, false)
	cx, cy := float64(g.w)/2, float64(g.h)/2
	for i := range effects.LoaderDots {
		x := cx + float64(i-1)*loaderDotSize*3
		r := loaderDotSize * g.loader.DotScale(i)
		vector.DrawFilledCircle(screen, float32(x), float32(cy), float32(r), fade(labelHot, alpha), true)
	}
}
