package store

import (
	"context"
	"sort"
	"sync"

	"snake-highscore/internal/domain/highscores"
)

// MemoryStore keeps high scores in memory behind a RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]highscores.Record
	closed  bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]highscores.Record),
	}
}

// Insert stores rec, replacing any record with the same ID.
func (s *MemoryStore) Insert(_ context.Context, rec highscores.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.records[rec.ID] = rec
	return nil
}

// Find returns a ranked copy of the records matching q.
func (s *MemoryStore) Find(_ context.Context, q Query) ([]highscores.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	matched := make([]highscores.Record, 0, len(s.records))
	for _, r := range s.records {
		if q.Since != nil && r.Timestamp.Before(*q.Since) {
			continue
		}
		matched = append(matched, r)
	}
	sort.Slice(matched, func(i, j int) bool {
		return highscores.Less(matched[i], matched[j])
	})
	return window(matched, q.Skip, q.Limit), nil
}

// DeleteMany removes every listed record and reports how many existed.
func (s *MemoryStore) DeleteMany(_ context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	deleted := 0
	for _, id := range ids {
		if _, ok := s.records[id]; ok {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Len reports how many records are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
