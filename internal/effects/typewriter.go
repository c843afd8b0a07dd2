package effects

import "github.com/iburimskiy/portfolio-fx/internal/config"

// Typewriter reveals text one rune at a time with a random per-rune delay.
// Nothing is revealed until Start is called, typically when the text first
// scrolls into view.
type Typewriter struct {
	text    []rune
	shown   int
	wait    float64
	started bool
	delay   config.Range
	src     Source
}

// NewTypewriter prepares text for reveal. delay is in milliseconds.
func NewTypewriter(text string, delay config.Range, src Source) *Typewriter {
	return &Typewriter{text: []rune(text), delay: delay, src: src}
}

// Start begins typing. Later calls are ignored.
func (t *Typewriter) Start() {
	if t.started {
		return
	}
	t.started = true
	t.wait = 0
}

// Update advances the reveal by dt seconds.
func (t *Typewriter) Update(dt float64) {
	if !t.started {
		return
	}
	t.wait -= dt
	for t.wait <= 0 && t.shown < len(t.text) {
		t.shown++
		t.wait += t.nextDelay()
	}
}

func (t *Typewriter) nextDelay() float64 {
	ms := t.delay.Min + t.src.Float64()*t.delay.Span()
	return ms / 1000
}

// Text returns the revealed prefix.
func (t *Typewriter) Text() string {
	return string(t.text[:t.shown])
}

// Started reports whether Start has been called.
func (t *Typewriter) Started() bool {
	return t.started
}

// Done reports whether every rune is shown.
func (t *Typewriter) Done() bool {
	return t.shown == len(t.text)
}
