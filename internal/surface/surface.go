// Package surface manages the overlay drawing buffer the particle field is
// rendered into and keeps it matched to the viewport.
package surface

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iburimskiy/portfolio-fx/internal/particle"
	"github.com/iburimskiy/portfolio-fx/internal/scheduler"
)

var (
	// ErrRenderingUnsupported is returned by Attach when the host cannot
	// provide a 2D drawing buffer.
	ErrRenderingUnsupported = errors.New("rendering unsupported")
	ErrAlreadyAttached      = errors.New("surface already attached")
	ErrNotAttached          = errors.New("surface not attached")
)

// Viewport reports the current host size.
type Viewport interface {
	Size() (w, h int)
}

// ViewportFunc adapts a function to Viewport.
type ViewportFunc func() (int, int)

func (f ViewportFunc) Size() (int, int) { return f() }

// Buffer is a 2D drawing buffer owned by the manager.
type Buffer interface {
	particle.Canvas
	// Resize sets the pixel dimensions of the buffer itself, not only its
	// presented size, so drawing is never stretched.
	Resize(w, h int)
	Size() (w, h int)
	Clear()
}

// Backend creates drawing buffers.
type Backend interface {
	NewBuffer(w, h int) (Buffer, error)
}

// Presentation describes how the overlay is composited over the page.
type Presentation struct {
	FullBleed    bool
	ClickThrough bool
	ZIndex       int
	Opacity      float64
}

// Option configures a Manager.
type Option func(*Manager)

// WithThrottle drops resize events closer together than limit. The last
// dropped event is replayed on the next frame once the window has passed.
func WithThrottle(clock scheduler.Clock, limit time.Duration) Option {
	return func(m *Manager) {
		if limit > 0 {
			m.throttle = scheduler.NewThrottle(clock, limit)
		}
	}
}

// WithOpacity overrides the overlay opacity.
func WithOpacity(opacity float64) Option {
	return func(m *Manager) { m.presentation.Opacity = opacity }
}

// Manager owns the overlay buffer and reseeds the particle field whenever the
// viewport changes.
type Manager struct {
	backend      Backend
	viewport     Viewport
	field        *particle.Field
	count        int
	buf          Buffer
	throttle     *scheduler.Throttle
	presentation Presentation
	attached     bool
}

// NewManager creates a detached manager for a pool of count particles.
func NewManager(backend Backend, viewport Viewport, field *particle.Field, count int, opts ...Option) *Manager {
	m := &Manager{
		backend:  backend,
		viewport: viewport,
		field:    field,
		count:    count,
		presentation: Presentation{
			FullBleed:    true,
			ClickThrough: true,
			ZIndex:       -1,
			Opacity:      0.3,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach creates the buffer at viewport size and seeds the field.
func (m *Manager) Attach() error {
	if m.attached {
		return ErrAlreadyAttached
	}
	w, h := m.viewportSize()
	buf, err := m.backend.NewBuffer(w, h)
	if err != nil {
		return fmt.Errorf("attach overlay: %w", err)
	}
	if buf == nil {
		return fmt.Errorf("attach overlay: %w", ErrRenderingUnsupported)
	}
	m.buf = buf
	m.attached = true
	m.field.Reseed(m.count, float64(w), float64(h))
	log.Printf("[Surface] Attached %dx%d overlay with %d particles", w, h, m.count)
	return nil
}

// Resize matches the buffer to the viewport and reseeds the field. It returns
// false when the event was dropped by the throttle.
func (m *Manager) Resize() (bool, error) {
	if !m.attached {
		return false, ErrNotAttached
	}
	if m.throttle != nil && !m.throttle.Allow() {
		return false, nil
	}
	m.apply()
	return true, nil
}

func (m *Manager) apply() {
	w, h := m.viewportSize()
	m.buf.Resize(w, h)
	m.field.Reseed(m.count, float64(w), float64(h))
}

// Clear wipes the buffer to transparent.
func (m *Manager) Clear() {
	if m.attached {
		m.buf.Clear()
	}
}

// Frame runs one clear, tick and render pass.
func (m *Manager) Frame() {
	if !m.attached {
		return
	}
	if m.throttle != nil && m.throttle.Pending() && m.throttle.Allow() {
		m.apply()
	}
	m.buf.Clear()
	m.field.Tick()
	m.field.Render(m.buf)
}

// Buffer returns the attached buffer, or nil before Attach.
func (m *Manager) Buffer() Buffer {
	return m.buf
}

// Field returns the particle field.
func (m *Manager) Field() *particle.Field {
	return m.field
}

// Presentation returns the compositing properties of the overlay.
func (m *Manager) Presentation() Presentation {
	return m.presentation
}

// Attached reports whether Attach has succeeded.
func (m *Manager) Attached() bool {
	return m.attached
}

func (m *Manager) viewportSize() (int, int) {
	w, h := m.viewport.Size()
	return max(w, 0), max(h, 0)
}
