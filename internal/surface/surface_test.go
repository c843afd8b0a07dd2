package surface

import (
	"errors"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/iburimskiy/portfolio-fx/internal/config"
	"github.com/iburimskiy/portfolio-fx/internal/particle"
	"github.com/iburimskiy/portfolio-fx/internal/scheduler"
)

type fakeBuffer struct {
	w, h    int
	clears  int
	circles int
	lines   int
}

func (b *fakeBuffer) FillCircle(x, y, r float64, c color.Color)               { b.circles++ }
func (b *fakeBuffer) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) { b.lines++ }
func (b *fakeBuffer) Resize(w, h int)                                         { b.w, b.h = w, h }
func (b *fakeBuffer) Size() (int, int)                                        { return b.w, b.h }
func (b *fakeBuffer) Clear()                                                  { b.clears++ }

type fakeBackend struct {
	unsupported bool
	buf         *fakeBuffer
}

func (f *fakeBackend) NewBuffer(w, h int) (Buffer, error) {
	if f.unsupported {
		return nil, ErrRenderingUnsupported
	}
	f.buf = &fakeBuffer{w: w, h: h}
	return f.buf, nil
}

type fakeViewport struct{ w, h int }

func (v *fakeViewport) Size() (int, int) { return v.w, v.h }

func newTestManager(vp *fakeViewport, opts ...Option) (*Manager, *fakeBackend) {
	cfg := config.Default().Particles
	field := particle.NewField(cfg, rand.New(rand.NewPCG(1, 2)))
	backend := &fakeBackend{}
	return NewManager(backend, vp, field, cfg.Count, opts...), backend
}

func TestAttachSeedsField(t *testing.T) {
	vp := &fakeViewport{w: 800, h: 600}
	m, backend := newTestManager(vp)

	if err := m.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if w, h := backend.buf.Size(); w != 800 || h != 600 {
		t.Errorf("buffer = %dx%d, want 800x600", w, h)
	}
	if m.Field().Len() != 100 {
		t.Errorf("particles = %d, want 100", m.Field().Len())
	}
	if w, h := m.Field().Bounds(); w != 800 || h != 600 {
		t.Errorf("field bounds = %vx%v, want 800x600", w, h)
	}

	p := m.Presentation()
	if !p.FullBleed || !p.ClickThrough || p.ZIndex >= 0 || p.Opacity != 0.3 {
		t.Errorf("presentation = %+v, want full-bleed click-through background at 0.3", p)
	}
}

func TestAttachUnsupported(t *testing.T) {
	vp := &fakeViewport{w: 800, h: 600}
	m, backend := newTestManager(vp)
	backend.unsupported = true

	err := m.Attach()
	if !errors.Is(err, ErrRenderingUnsupported) {
		t.Fatalf("Attach err = %v, want ErrRenderingUnsupported", err)
	}
	if m.Attached() {
		t.Error("manager should stay detached")
	}

	// Frames on a detached manager are no-ops rather than panics.
	m.Frame()
	if _, err := m.Resize(); !errors.Is(err, ErrNotAttached) {
		t.Errorf("Resize err = %v, want ErrNotAttached", err)
	}
}

func TestAttachTwice(t *testing.T) {
	m, _ := newTestManager(&fakeViewport{w: 10, h: 10})
	if err := m.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := m.Attach(); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("second Attach err = %v, want ErrAlreadyAttached", err)
	}
}

func TestResizeReseedsAtNewSize(t *testing.T) {
	vp := &fakeViewport{w: 800, h: 600}
	m, backend := newTestManager(vp)
	if err := m.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	before := m.Field().Particles()

	vp.w, vp.h = 400, 300
	ok, err := m.Resize()
	if err != nil || !ok {
		t.Fatalf("Resize = %v, %v", ok, err)
	}
	if w, h := backend.buf.Size(); w != 400 || h != 300 {
		t.Errorf("buffer = %dx%d, want 400x300", w, h)
	}
	after := m.Field().Particles()
	if len(after) != 100 {
		t.Errorf("particles = %d, want 100", len(after))
	}
	if &before[0] == &after[0] {
		t.Error("resize should replace the pool")
	}
	for i, p := range after {
		if p.X >= 400 || p.Y >= 300 {
			t.Fatalf("particle %d at (%f,%f) outside 400x300", i, p.X, p.Y)
		}
	}
}

func TestResizeTwiceSameSize(t *testing.T) {
	vp := &fakeViewport{w: 640, h: 480}
	m, backend := newTestManager(vp)
	if err := m.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	for range 2 {
		if _, err := m.Resize(); err != nil {
			t.Fatalf("Resize: %v", err)
		}
		if w, h := backend.buf.Size(); w != 640 || h != 480 {
			t.Errorf("buffer = %dx%d, want 640x480", w, h)
		}
		if m.Field().Len() != 100 {
			t.Errorf("particles = %d, want 100", m.Field().Len())
		}
		var sumX float64
		for _, p := range m.Field().Particles() {
			sumX += p.X
		}
		// Uniform over [0,640): the mean of 100 draws stays well inside ±3σ.
		mean := sumX / 100
		sigma := 640 / math.Sqrt(12) / 10
		if math.Abs(mean-320) > 3*sigma+1 {
			t.Errorf("mean x = %f, want near 320", mean)
		}
	}
}

func TestFrameClearsTicksRenders(t *testing.T) {
	vp := &fakeViewport{w: 300, h: 300}
	m, backend := newTestManager(vp)
	if err := m.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	before := append([]particle.Particle(nil), m.Field().Particles()...)

	m.Frame()
	if backend.buf.clears != 1 {
		t.Errorf("clears = %d, want 1", backend.buf.clears)
	}
	if backend.buf.circles != 100 {
		t.Errorf("circles = %d, want 100", backend.buf.circles)
	}
	if backend.buf.lines == 0 {
		t.Error("100 particles on 300x300 should produce links")
	}
	moved := false
	for i, p := range m.Field().Particles() {
		if p.X != before[i].X || p.Y != before[i].Y {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("Frame should tick the field")
	}
}

func TestThrottledResizeReplaysOnFrame(t *testing.T) {
	clock := scheduler.NewManualClock(time.Unix(0, 0))
	vp := &fakeViewport{w: 800, h: 600}
	m, backend := newTestManager(vp, WithThrottle(clock, 100*time.Millisecond))
	if err := m.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	vp.w = 700
	if ok, _ := m.Resize(); !ok {
		t.Fatal("first resize should pass")
	}
	vp.w = 600
	if ok, _ := m.Resize(); ok {
		t.Fatal("second resize inside window should be dropped")
	}
	if w, _ := backend.buf.Size(); w != 700 {
		t.Errorf("buffer width = %d, want 700 while throttled", w)
	}

	m.Frame()
	if w, _ := backend.buf.Size(); w != 700 {
		t.Errorf("buffer width = %d, want 700 before window closes", w)
	}

	clock.Advance(100 * time.Millisecond)
	m.Frame()
	if w, _ := backend.buf.Size(); w != 600 {
		t.Errorf("buffer width = %d, want 600 after replay", w)
	}
}

func TestViewportFunc(t *testing.T) {
	vp := ViewportFunc(func() (int, int) { return -3, 20 })
	cfg := config.Default().Particles
	m := NewManager(&fakeBackend{}, vp, particle.NewField(cfg, rand.New(rand.NewPCG(1, 1))), 5)
	if err := m.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if w, h := m.Buffer().Size(); w != 0 || h != 20 {
		t.Errorf("buffer = %dx%d, want 0x20", w, h)
	}
}
