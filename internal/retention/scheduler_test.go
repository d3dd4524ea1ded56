package retention

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubRunner struct {
	mu      sync.Mutex
	err     error
	deleted int
	calls   atomic.Int32
	notify  chan struct{}
}

func (s *stubRunner) Run(context.Context) (int, error) {
	s.calls.Add(1)
	if s.notify != nil {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleted, s.err
}

func TestSchedulerRunsImmediatelyAndOnTick(t *testing.T) {
	r := &stubRunner{deleted: 3, notify: make(chan struct{}, 1)}
	s := NewScheduler(r, nil, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-r.notify:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for run %d", i+1)
		}
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	status := s.Status()
	if status.LastSuccess.IsZero() || status.LastDeleted != 3 {
		t.Fatalf("unexpected status %+v", status)
	}
	if r.calls.Load() < 2 {
		t.Fatalf("expected at least two runs, got %d", r.calls.Load())
	}
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	r := &stubRunner{notify: make(chan struct{}, 1)}
	s := NewScheduler(r, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	s.Start(ctx)
	select {
	case <-r.notify:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for initial run")
	}
	cancel()

	select {
	case <-s.exited:
	case <-time.After(time.Second):
		t.Fatal("expected loop to exit after cancel")
	}
	calls := r.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if r.calls.Load() != calls {
		t.Fatalf("expected no runs after cancel")
	}
}

func TestSchedulerStartAndStopAreIdempotent(t *testing.T) {
	s := NewScheduler(&stubRunner{}, nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	s.Start(ctx)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("first stop: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewScheduler(&stubRunner{}, nil, time.Hour)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestSchedulerDefaultsInterval(t *testing.T) {
	s := NewScheduler(&stubRunner{}, nil, 0)
	if s.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, s.interval)
	}
}

func TestSchedulerStatusTracksFailures(t *testing.T) {
	r := &stubRunner{err: errors.New("boom")}
	s := NewScheduler(r, nil, time.Hour)

	for i := 0; i < 3; i++ {
		s.runOnce(context.Background())
	}
	status := s.Status()
	if status.ConsecutiveFailures != 3 || status.LastError != "boom" {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after repeated failures")
	}

	r.mu.Lock()
	r.err = nil
	r.mu.Unlock()
	s.runOnce(context.Background())
	if status := s.Status(); status.ConsecutiveFailures != 0 || !status.IsReady() {
		t.Fatalf("expected recovery, got %+v", status)
	}
}

func TestStatusReadyBeforeFirstRun(t *testing.T) {
	if !(Status{}).IsReady() {
		t.Fatalf("expected fresh status to be ready")
	}
}
