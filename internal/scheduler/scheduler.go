// Package scheduler drives a per-frame callback from a clock until stopped.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is one frame at 60 Hz.
const DefaultInterval = time.Second / 60

var (
	ErrRunning    = errors.New("scheduler: already running")
	ErrNotRunning = errors.New("scheduler: not running")
)

// State is the scheduler lifecycle state.
type State int32

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// FrameFunc runs one simulate-and-draw pass.
type FrameFunc func()

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the real clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithInterval sets the frame interval. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// Scheduler calls its FrameFunc once per tick. Frames never overlap: the loop
// and Step share one mutex, and a tick that arrives while a frame is still
// running is dropped by the ticker.
type Scheduler struct {
	frame    FrameFunc
	clock    Clock
	interval time.Duration

	frameMu sync.Mutex
	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	done    chan struct{}
	frames  atomic.Uint64
}

// New creates an idle scheduler.
func New(frame FrameFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		frame:    frame,
		clock:    RealClock{},
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the frame loop. It runs until Stop is called or ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := s.clock.NewTicker(s.interval)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.state = Running

	go s.loop(ctx, ticker, s.done)
	return nil
}

func (s *Scheduler) loop(ctx context.Context, ticker Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.state = Stopped
			s.mu.Unlock()
			return
		case <-ticker.C():
			s.runFrame()
		}
	}
}

// Stop ends the loop and waits for the current frame to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	return nil
}

// Step runs exactly one frame on the caller's goroutine. Hosts that own their
// own refresh loop, such as ebiten's Update, drive frames through Step.
func (s *Scheduler) Step() {
	s.runFrame()
}

func (s *Scheduler) runFrame() {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	if s.frame != nil {
		s.frame()
	}
	s.frames.Add(1)
}

// State reports the lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Frames returns the number of frames run so far.
func (s *Scheduler) Frames() uint64 {
	return s.frames.Load()
}

// Done is closed when the running loop exits. It is nil before Start.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
