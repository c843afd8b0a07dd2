package audio

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	DefaultFFTSize   = 256
	DefaultSmoothing = 0.8
	MinDecibels      = -100.0
	MaxDecibels      = -30.0
)

// Analyser turns the most recent FFTSize samples into FFTSize/2 byte-valued
// frequency bins. Magnitudes are Blackman-windowed, smoothed over time and
// mapped from [MinDecibels, MaxDecibels] onto [0, 255].
type Analyser struct {
	size      int
	smoothing float64
	fft       *fourier.FFT
	window    []float64
	frame     []float64
	coeffs    []complex128
	smoothed  []float64
	bytes     []uint8
}

// NewAnalyser creates an analyser for the given FFT size. Sizes below 32 are
// raised to 32 and odd sizes rounded down.
func NewAnalyser(size int, smoothing float64) *Analyser {
	size = max(size, 32) &^ 1
	a := &Analyser{
		size:      size,
		smoothing: math.Min(math.Max(smoothing, 0), 1),
		fft:       fourier.NewFFT(size),
		window:    make([]float64, size),
		frame:     make([]float64, size),
		smoothed:  make([]float64, size/2),
		bytes:     make([]uint8, size/2),
	}
	for n := range a.window {
		x := 2 * math.Pi * float64(n) / float64(size)
		a.window[n] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return a
}

// Bins returns the number of frequency bins.
func (a *Analyser) Bins() int {
	return a.size / 2
}

// Size returns the FFT size.
func (a *Analyser) Size() int {
	return a.size
}

// Update analyses samples (oldest first) and returns the byte spectrum. Only
// the last FFTSize samples are used; shorter input is zero-padded at the
// front. The returned slice is reused by the next call.
func (a *Analyser) Update(samples []float64) []uint8 {
	if len(samples) > a.size {
		samples = samples[len(samples)-a.size:]
	}
	pad := a.size - len(samples)
	for i := range a.frame {
		v := 0.0
		if i >= pad {
			v = samples[i-pad]
		}
		a.frame[i] = v * a.window[i]
	}

	a.coeffs = a.fft.Coefficients(a.coeffs, a.frame)
	scale := 255 / (MaxDecibels - MinDecibels)
	for k := range a.smoothed {
		mag := cmplx.Abs(a.coeffs[k]) / float64(a.size)
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag

		db := 20 * math.Log10(a.smoothed[k])
		v := math.Floor(scale * (db - MinDecibels))
		switch {
		case math.IsNaN(v) || v < 0:
			a.bytes[k] = 0
		case v > 255:
			a.bytes[k] = 255
		default:
			a.bytes[k] = uint8(v)
		}
	}
	return a.bytes
}

// Reset clears the smoothing history.
func (a *Analyser) Reset() {
	clear(a.smoothed)
	clear(a.bytes)
}
