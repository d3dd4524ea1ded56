package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunTranslatesKeysAndTicks(t *testing.T) {
	s, _, _, _, _ := newSession(t)
	keys := make(chan string, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- Run(ctx, s, keys, time.Millisecond) }()

	keys <- "l"
	keys <- " "

	deadline := time.After(time.Second)
	for s.Status() != GameOver {
		select {
		case <-deadline:
			t.Fatalf("expected snake to eventually hit a wall, status=%s", s.Status())
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestRunReturnsWhenKeysClosed(t *testing.T) {
	s, _, _, _, _ := newSession(t)
	keys := make(chan string)
	close(keys)

	if err := Run(context.Background(), s, keys, time.Hour); err != nil {
		t.Fatalf("expected nil when keys close, got %v", err)
	}
}
