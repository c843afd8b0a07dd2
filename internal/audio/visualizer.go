package audio

// Visualizer pulls samples from a tap once per frame and lays out the
// frequency strip.
type Visualizer struct {
	analyser *Analyser
	data     []uint8
	bars     []Bar
}

// NewVisualizer creates a visualizer with the given FFT size.
func NewVisualizer(fftSize int, smoothing float64) *Visualizer {
	return &Visualizer{analyser: NewAnalyser(fftSize, smoothing)}
}

// Update analyses the latest samples from tap. A nil tap clears the spectrum.
func (v *Visualizer) Update(tap *Tap) {
	if tap == nil {
		v.analyser.Reset()
		v.data = nil
		return
	}
	v.data = v.analyser.Update(tap.Snapshot(v.analyser.Size()))
}

// Data returns the latest byte spectrum, or nil when idle.
func (v *Visualizer) Data() []uint8 {
	return v.data
}

// Bars lays out the latest spectrum in a width×height strip.
func (v *Visualizer) Bars(width, height float64) []Bar {
	v.bars = LayoutBars(v.bars, v.data, width, height)
	return v.bars
}
