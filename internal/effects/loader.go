package effects

import (
	"math"

	"github.com/tanema/gween/ease"
)

const (
	LoaderDots = 3

	loaderPeriod = 1.4
	loaderStep   = 0.2
	loaderHold   = 1.0
	loaderFade   = 0.5
)

// Loader is the full-screen splash shown while the page starts: three dots
// bouncing in turn, held for a second after load and then faded out.
type Loader struct {
	elapsed  float64
	loadedAt float64
	loaded   bool
}

// Update advances the loader by dt seconds.
func (l *Loader) Update(dt float64) {
	l.elapsed += dt
}

// MarkLoaded records that the page finished loading.
func (l *Loader) MarkLoaded() {
	if !l.loaded {
		l.loaded = true
		l.loadedAt = l.elapsed
	}
}

// DotScale returns the scale of dot i. Each dot grows to full size at 40% of
// its cycle and shrinks back by 80%; dot i runs 0.2 s behind dot i-1.
func (l *Loader) DotScale(i int) float64 {
	t := l.elapsed - float64(i)*loaderStep
	if t < 0 {
		return 0
	}
	phase := math.Mod(t, loaderPeriod) / loaderPeriod
	switch {
	case phase < 0.4:
		return float64(ease.InOutSine(float32(phase), 0, 1, 0.4))
	case phase < 0.8:
		return float64(ease.InOutSine(float32(phase-0.4), 1, -1, 0.4))
	}
	return 0
}

// Opacity returns the splash opacity.
func (l *Loader) Opacity() float64 {
	if !l.loaded {
		return 1
	}
	t := l.elapsed - l.loadedAt - loaderHold
	switch {
	case t <= 0:
		return 1
	case t >= loaderFade:
		return 0
	}
	return 1 - t/loaderFade
}

// Done reports whether the splash has fully faded.
func (l *Loader) Done() bool {
	return l.Opacity() == 0
}
