package store

import (
	"context"
	"errors"
	"time"

	"snake-highscore/internal/domain/highscores"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store closed")

// Query selects a slice of the ranked leaderboard.
// Records are ordered by highscores.Less. A nil Since means all time.
// Limit <= 0 means no limit.
type Query struct {
	Since *time.Time
	Skip  int
	Limit int
}

// Store persists high score records. Every method is a single atomic
// store-level operation; callers coordinate through nothing else.
type Store interface {
	Insert(ctx context.Context, rec highscores.Record) error
	Find(ctx context.Context, q Query) ([]highscores.Record, error)
	DeleteMany(ctx context.Context, ids []string) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

// IDs returns the identities of records in order.
func IDs(records []highscores.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func window(records []highscores.Record, skip, limit int) []highscores.Record {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(records) {
		return []highscores.Record{}
	}
	records = records[skip:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}
