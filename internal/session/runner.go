package session

import (
	"context"
	"time"
)

// DefaultTickInterval is the simulation period.
const DefaultTickInterval = 300 * time.Millisecond

// Run drives s from a single loop: keys are translated against the status at
// the moment they arrive, ticks advance the snake. It returns when ctx is done
// or keys is closed.
func Run(ctx context.Context, s *Session, keys <-chan string, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case key, ok := <-keys:
			if !ok {
				return nil
			}
			if cmd, ok := Translate(key, s.Status()); ok {
				s.Handle(cmd)
			}
		case <-ticker.C:
			s.Tick()
		}
	}
}
