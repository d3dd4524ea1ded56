package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/logging"
	"snake-highscore/internal/metrics"
	"snake-highscore/internal/store"
	"snake-highscore/internal/timeutil"
)

// DefaultKeep is how many records each window protects.
const DefaultKeep = 15

// Store is the subset of the leaderboard store the job needs.
type Store interface {
	Find(ctx context.Context, q store.Query) ([]highscores.Record, error)
	DeleteMany(ctx context.Context, ids []string) (int, error)
}

// Job prunes records that rank beyond keep in both the all-time and the
// current-year ordering.
type Job struct {
	store   Store
	keep    int
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewJob constructs a Job. A non-positive keep falls back to DefaultKeep.
func NewJob(s Store, keep int, logger *slog.Logger, recorder *metrics.Recorder) *Job {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Job{
		store:   s,
		keep:    keep,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Candidates returns the ids outside the top keep of both windows, in all-time rank order.
// No deletes happen here.
func (j *Job) Candidates(ctx context.Context) ([]string, error) {
	allTime, err := j.store.Find(ctx, store.Query{Skip: j.keep})
	if err != nil {
		return nil, fmt.Errorf("rank all-time: %w", err)
	}
	since := timeutil.StartOfYear(j.now())
	yearly, err := j.store.Find(ctx, store.Query{Since: &since, Skip: j.keep})
	if err != nil {
		return nil, fmt.Errorf("rank yearly: %w", err)
	}
	return intersect(store.IDs(allTime), store.IDs(yearly)), nil
}

// Run performs one pruning pass. Any failure before the delete aborts the pass
// with nothing removed.
func (j *Job) Run(ctx context.Context) (int, error) {
	start := time.Now()
	deleted, err := j.run(ctx)
	j.metrics.RecordRetentionRun(time.Since(start), deleted, err)
	if err != nil {
		logging.Error(j.logger, "retention run failed", err,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
		return 0, err
	}
	return deleted, nil
}

func (j *Job) run(ctx context.Context) (int, error) {
	ids, err := j.Candidates(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		logging.Info(j.logger, "Nothing to delete")
		return 0, nil
	}
	deleted, err := j.store.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("delete %d records: %w", len(ids), err)
	}
	logging.Info(j.logger, "retention deleted records",
		logging.FieldDeleted, deleted,
		logging.FieldCount, len(ids),
	)
	return deleted, nil
}

func intersect(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}
	out := make([]string, 0)
	for _, id := range a {
		if _, ok := inB[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
