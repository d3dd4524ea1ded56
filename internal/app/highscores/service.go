package highscores

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/store"
)

// Store defines the persistence contract the service needs.
type Store interface {
	Insert(ctx context.Context, rec domain.Record) error
	Find(ctx context.Context, q store.Query) ([]domain.Record, error)
	Ping(ctx context.Context) error
}

// Service coordinates leaderboard reads and submissions.
type Service struct {
	store    Store
	maxScore uint
	now      func() time.Time
	newID    func() string
}

// NewService constructs a Service. A zero maxScore falls back to domain.DefaultMaxScore.
func NewService(s Store, maxScore uint) *Service {
	if maxScore == 0 {
		maxScore = domain.DefaultMaxScore
	}
	return &Service{
		store:    s,
		maxScore: maxScore,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// TopTen returns the ten best entries, optionally limited to records at or after since.
func (s *Service) TopTen(ctx context.Context, since *time.Time) ([]domain.Entry, error) {
	records, err := s.store.Find(ctx, store.Query{Since: since, Limit: domain.TopTenLimit})
	if err != nil {
		return nil, fmt.Errorf("fetch top ten: %w", err)
	}
	return domain.Entries(records), nil
}

// Submit validates e, stamps it and persists it. Invalid entries never reach the store.
func (s *Service) Submit(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	valid, err := domain.Validate(e, s.maxScore)
	if err != nil {
		return domain.Entry{}, err
	}
	rec := domain.Record{
		ID:        s.newID(),
		UserName:  valid.UserName,
		Score:     valid.Score,
		Timestamp: s.now().UTC(),
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		return domain.Entry{}, fmt.Errorf("persist highscore: %w", err)
	}
	return rec.Entry(), nil
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// MaxScore returns the configured score ceiling.
func (s *Service) MaxScore() uint {
	return s.maxScore
}
