package testutil

import (
	"context"
	"net/http"
	"sync"

	"snake-highscore/internal/retention"
)

// StubScheduler implements the server's retention scheduler for tests.
type StubScheduler struct {
	mu         sync.Mutex
	startCalls int
	stopCalls  int
	Err        error
	StatusVal  retention.Status
}

func (s *StubScheduler) Start(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startCalls++
}

func (s *StubScheduler) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCalls++
	return s.Err
}

func (s *StubScheduler) Status() retention.Status {
	return s.StatusVal
}

// Calls returns how often Start and Stop ran.
func (s *StubScheduler) Calls() (starts, stops int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startCalls, s.stopCalls
}

// StubHTTPServer implements httpServer for tests. ListenAndServe returns
// ListenErr, or http.ErrServerClosed when unset.
type StubHTTPServer struct {
	mu            sync.Mutex
	shutdownCalls int
	ListenErr     error
	ShutdownErr   error
}

func (s *StubHTTPServer) ListenAndServe() error {
	if s.ListenErr != nil {
		return s.ListenErr
	}
	return http.ErrServerClosed
}

func (s *StubHTTPServer) Shutdown(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdownCalls++
	return s.ShutdownErr
}

func (s *StubHTTPServer) Addr() string          { return ":0" }
func (s *StubHTTPServer) Handler() http.Handler { return http.NewServeMux() }

// ShutdownCalls returns how often Shutdown ran.
func (s *StubHTTPServer) ShutdownCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdownCalls
}

// BlockingHTTPServer allows simulating a shutdown that waits on an unblock channel.
type BlockingHTTPServer struct {
	StubHTTPServer
	Unblock chan struct{}
}

func (b *BlockingHTTPServer) Shutdown(ctx context.Context) error {
	_ = b.StubHTTPServer.Shutdown(ctx)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.Unblock:
		return nil
	}
}
