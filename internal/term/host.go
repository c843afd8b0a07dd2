package term

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/portfolio-fx/internal/config"
	"github.com/iburimskiy/portfolio-fx/internal/particle"
	"github.com/iburimskiy/portfolio-fx/internal/scheduler"
	"github.com/iburimskiy/portfolio-fx/internal/surface"
)

// Host runs the particle overlay full screen in a terminal.
type Host struct {
	screen    tcell.Screen
	manager   *surface.Manager
	sched     *scheduler.Scheduler
	linkAlpha float64
	resized   atomic.Bool
}

// Option configures a Host.
type Option func(*hostOptions)

type hostOptions struct {
	clock    scheduler.Clock
	interval time.Duration
}

// WithClock drives both the frame loop and the resize throttle from c.
func WithClock(c scheduler.Clock) Option {
	return func(o *hostOptions) { o.clock = c }
}

// WithInterval sets the time between frames.
func WithInterval(d time.Duration) Option {
	return func(o *hostOptions) { o.interval = d }
}

// New creates a host drawing to an initialised screen.
func New(screen tcell.Screen, cfg *config.Config, src particle.Source, opts ...Option) *Host {
	o := hostOptions{clock: scheduler.RealClock{}, interval: scheduler.DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}

	h := &Host{
		screen:    screen,
		linkAlpha: cfg.Particles.LinkAlpha,
	}
	viewport := surface.ViewportFunc(func() (int, int) {
		cols, rows := screen.Size()
		return cols * CellWidth, rows * CellHeight
	})
	field := particle.NewField(cfg.Particles, src)
	var mopts []surface.Option
	if ms := cfg.Particles.ResizeThrottleMs; ms > 0 {
		mopts = append(mopts, surface.WithThrottle(o.clock, time.Duration(ms)*time.Millisecond))
	}
	h.manager = surface.NewManager(gridBackend{}, viewport, field, cfg.Particles.Count, mopts...)
	h.sched = scheduler.New(h.frame, scheduler.WithClock(o.clock), scheduler.WithInterval(o.interval))
	return h
}

// frame runs on the scheduler goroutine, which is the only one touching the
// manager once the loop has started.
func (h *Host) frame() {
	if h.resized.Swap(false) {
		h.screen.Sync()
		if _, err := h.manager.Resize(); err != nil {
			log.Printf("[Term] Resize failed: %v", err)
		}
	}
	h.manager.Frame()
	h.manager.Buffer().(*grid).draw(h.screen, h.linkAlpha)
	h.screen.Show()
}

// Frames returns the number of frames drawn so far.
func (h *Host) Frames() uint64 {
	return h.sched.Frames()
}

// Field returns the particle field.
func (h *Host) Field() *particle.Field {
	return h.manager.Field()
}

// Run attaches the overlay and draws frames until the user presses Esc, q or
// Ctrl-C, or ctx is done. The caller owns the screen and finalises it.
func (h *Host) Run(ctx context.Context) error {
	if err := h.manager.Attach(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := h.sched.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := h.sched.Stop(); err != nil && !errors.Is(err, scheduler.ErrNotRunning) {
			log.Printf("[Term] Stop failed: %v", err)
		}
		<-h.sched.Done()
	}()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				h.resized.Store(true)
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			}
		}
	}
}
