package testutil

import (
	"context"

	"snake-highscore/internal/app/highscores"
	domain "snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/store"
)

// NewServiceWithRecords builds a highscores service backed by an in-memory
// store preloaded with recs.
func NewServiceWithRecords(recs ...domain.Record) (*highscores.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	for _, r := range recs {
		if err := ms.Insert(context.Background(), r); err != nil {
			panic(err)
		}
	}
	return highscores.NewService(ms, 0), ms
}
