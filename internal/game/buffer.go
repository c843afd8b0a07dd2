package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/portfolio-fx/internal/surface"
)

// imageBackend allocates overlay buffers as offscreen ebiten images.
type imageBackend struct{}

func (imageBackend) NewBuffer(w, h int) (surface.Buffer, error) {
	b := &imageBuffer{}
	b.Resize(w, h)
	return b, nil
}

// imageBuffer is the overlay drawing buffer. Its pixel size always matches the
// window, so the overlay is composited 1:1.
type imageBuffer struct {
	img  *ebiten.Image
	w, h int
}

func (b *imageBuffer) Resize(w, h int) {
	if b.img != nil && w == b.w && h == b.h {
		return
	}
	if b.img != nil {
		b.img.Deallocate()
	}
	b.w, b.h = w, h
	// ebiten images cannot be empty.
	b.img = ebiten.NewImage(max(w, 1), max(h, 1))
}

func (b *imageBuffer) Size() (int, int) { return b.w, b.h }

func (b *imageBuffer) Clear() { b.img.Clear() }

func (b *imageBuffer) FillCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(b.img, float32(x), float32(y), float32(r), c, true)
}

func (b *imageBuffer) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(b.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}
