package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// waitFrames polls until the scheduler has run at least n frames.
func waitFrames(t *testing.T, s *Scheduler, n uint64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Frames() < n {
		if time.Now().After(deadline) {
			t.Fatalf("frames = %d, want at least %d", s.Frames(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStepRunsOneFrame(t *testing.T) {
	var calls int
	s := New(func() { calls++ })

	s.Step()
	s.Step()
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if s.Frames() != 2 {
		t.Errorf("frames = %d, want 2", s.Frames())
	}
	if s.State() != Idle {
		t.Errorf("state = %v, want idle", s.State())
	}
}

func TestStartDrivesFramesFromClock(t *testing.T) {
	clock := NewManualClock(epoch)
	var calls atomic.Int32
	s := New(func() { calls.Add(1) }, WithClock(clock), WithInterval(10*time.Millisecond))

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != Running {
		t.Fatalf("state = %v, want running", s.State())
	}

	for i := uint64(1); i <= 3; i++ {
		clock.Advance(10 * time.Millisecond)
		waitFrames(t, s, i)
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if s.State() != Stopped {
		t.Errorf("state = %v, want stopped", s.State())
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}

	clock.Advance(time.Second)
	if got := calls.Load(); got != 3 {
		t.Errorf("calls after stop = %d, want 3", got)
	}
}

func TestAdvanceBelowIntervalDoesNotTick(t *testing.T) {
	clock := NewManualClock(epoch)
	ticker := clock.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	clock.Advance(10 * time.Millisecond)
	select {
	case <-ticker.C():
		t.Fatal("ticker fired before interval elapsed")
	default:
	}

	clock.Advance(10 * time.Millisecond)
	select {
	case <-ticker.C():
	default:
		t.Fatal("ticker did not fire after interval elapsed")
	}
}

func TestMissedTicksAreDropped(t *testing.T) {
	clock := NewManualClock(epoch)
	ticker := clock.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for range 5 {
		clock.Advance(time.Millisecond)
	}

	<-ticker.C()
	select {
	case <-ticker.C():
		t.Fatal("missed ticks should not queue")
	default:
	}
}

func TestStartTwice(t *testing.T) {
	s := New(nil, WithClock(NewManualClock(epoch)))
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if err := s.Start(context.Background()); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start err = %v, want ErrRunning", err)
	}
}

func TestStopWhenIdle(t *testing.T) {
	s := New(nil)
	if err := s.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Stop err = %v, want ErrNotRunning", err)
	}
}

func TestContextCancelStopsLoop(t *testing.T) {
	s := New(nil, WithClock(NewManualClock(epoch)))
	ctx, cancel := context.WithCancel(context.Background())
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit after cancel")
	}
	if s.State() != Stopped {
		t.Errorf("state = %v, want stopped", s.State())
	}
}

func TestRestartAfterStop(t *testing.T) {
	clock := NewManualClock(epoch)
	s := New(nil, WithClock(clock), WithInterval(time.Millisecond))
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	clock.Advance(time.Millisecond)
	waitFrames(t, s, 1)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestThrottle(t *testing.T) {
	clock := NewManualClock(epoch)
	th := NewThrottle(clock, 100*time.Millisecond)

	if !th.Allow() {
		t.Fatal("first event should pass")
	}
	if th.Allow() {
		t.Error("event inside window should be rejected")
	}
	if !th.Pending() {
		t.Error("rejected event should be pending")
	}

	clock.Advance(99 * time.Millisecond)
	if th.Allow() {
		t.Error("event at 99ms should be rejected")
	}

	clock.Advance(time.Millisecond)
	if !th.Allow() {
		t.Error("event at 100ms should pass")
	}
	if th.Pending() {
		t.Error("pending should clear once an event passes")
	}
}

func TestThrottleZeroLimit(t *testing.T) {
	th := NewThrottle(NewManualClock(epoch), 0)
	for i := range 5 {
		if !th.Allow() {
			t.Fatalf("event %d rejected with zero limit", i)
		}
	}
}
