package retention

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"snake-highscore/internal/logging"
)

const defaultInterval = time.Hour

// Runner is one retention pass.
type Runner interface {
	Run(ctx context.Context) (int, error)
}

// Scheduler runs a Runner on an interval until stopped.
// Failed runs are not retried; the next tick starts from scratch.
type Scheduler struct {
	runner   Runner
	logger   *slog.Logger
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the retention loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastDeleted         int
}

// IsReady reports whether the scheduler is not failing repeatedly.
// A scheduler that has not run yet is ready.
func (s Status) IsReady() bool {
	return s.ConsecutiveFailures < 3
}

// NewScheduler constructs a Scheduler with sane defaults.
func NewScheduler(runner Runner, logger *slog.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		runner:   runner,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start runs once immediately and then on every tick until ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.ticker = time.NewTicker(s.interval)
	s.startMu.Unlock()

	go func() {
		defer close(s.exited)
		logging.Info(s.logger, "retention scheduler started", logging.FieldDurationMS, s.interval.Milliseconds())
		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				s.ticker.Stop()
				logging.Info(s.logger, "retention scheduler stopped")
				return
			case <-s.done:
				s.ticker.Stop()
				logging.Info(s.logger, "retention scheduler stopped")
				return
			case <-s.ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight run to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	s.startMu.Lock()
	started := s.started
	s.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-s.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	at := time.Now()
	s.recordAttempt(at)
	deleted, err := s.runner.Run(ctx)
	if err != nil {
		s.recordFailure(err)
		return
	}
	s.recordSuccess(at, deleted)
}

func (s *Scheduler) recordAttempt(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastAttempt = at
}

func (s *Scheduler) recordSuccess(at time.Time, deleted int) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = at
	s.status.LastDeleted = deleted
}

func (s *Scheduler) recordFailure(err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
}

// Status returns a snapshot of the scheduler's recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
