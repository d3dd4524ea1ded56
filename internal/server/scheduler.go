package server

import (
	"context"

	"snake-highscore/internal/retention"
)

// Scheduler defines the retention loop behaviour the server needs.
type Scheduler interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() retention.Status
}
