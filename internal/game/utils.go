package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// hsvToRgb converts a hue in degrees, wrapped onto [0,360), plus saturation
// and value in [0,1].
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsv(h, s, v).RGB255()
}

// accent returns the card accent colour for index i at the given opacity.
func accent(i int, alpha float64) color.NRGBA {
	r, g, b := hsvToRgb(210+float64(i)*40, 0.6, 0.9)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha) * 255)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS, rounding down.
func formatDuration(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
