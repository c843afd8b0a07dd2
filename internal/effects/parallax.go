package effects

// DefaultParallaxSpeed is used for elements without an explicit speed.
const DefaultParallaxSpeed = 0.5

// ParallaxOffset returns the vertical offset of an element scrolled by scroll
// pixels. Faster elements move further against the scroll.
func ParallaxOffset(scroll, speed float64) float64 {
	return -(scroll * speed)
}

// TiltAngle returns the Y rotation in degrees of a section whose top edge sits
// at top in a viewport viewH tall. Sections centred in the viewport are flat;
// the angle grows by maxDeg per viewport height of distance. ok is false when
// the section is off screen, in which case its previous angle should be kept.
func TiltAngle(top, height, viewH, maxDeg float64) (deg float64, ok bool) {
	if viewH <= 0 || top >= viewH || top+height <= 0 {
		return 0, false
	}
	distance := top + height/2 - viewH/2
	return distance / viewH * maxDeg, true
}
