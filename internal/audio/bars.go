package audio

import "image/color"

// Bar is one rectangle of the frequency strip, in strip coordinates.
type Bar struct {
	X, Y, W, H float64
	Color      color.RGBA
}

// LayoutBars places one bar per bin across a strip of the given size. Bars are
// 2.5 bins wide with a 1 px gap, so only the low end of the spectrum fits;
// bars starting past the right edge are dropped. A bin value v is drawn v/2
// tall from the bottom edge in rgb(v+100, 50, 150).
func LayoutBars(dst []Bar, data []uint8, width, height float64) []Bar {
	dst = dst[:0]
	if len(data) == 0 || width <= 0 {
		return dst
	}
	barWidth := width / float64(len(data)) * 2.5
	x := 0.0
	for _, v := range data {
		if x >= width {
			break
		}
		h := float64(v) / 2
		dst = append(dst, Bar{
			X:     x,
			Y:     height - h,
			W:     barWidth,
			H:     h,
			Color: color.RGBA{R: uint8(min(int(v)+100, 255)), G: 50, B: 150, A: 255},
		})
		x += barWidth + 1
	}
	return dst
}
