package highscores

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/store"
)

type stubStore struct {
	inserted  []domain.Record
	insertErr error

	findResult []domain.Record
	findErr    error
	lastQuery  store.Query

	pingErr error
}

func (s *stubStore) Insert(_ context.Context, rec domain.Record) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, rec)
	return nil
}

func (s *stubStore) Find(_ context.Context, q store.Query) ([]domain.Record, error) {
	s.lastQuery = q
	return s.findResult, s.findErr
}

func (s *stubStore) Ping(context.Context) error {
	return s.pingErr
}

func TestServiceTopTenQueriesLimit(t *testing.T) {
	st := &stubStore{findResult: []domain.Record{{ID: "1", UserName: "ann", Score: 9}}}
	svc := NewService(st, 0)
	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	entries, err := svc.TopTen(context.Background(), &since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0] != (domain.Entry{UserName: "ann", Score: 9}) {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if st.lastQuery.Limit != domain.TopTenLimit || st.lastQuery.Since == nil || !st.lastQuery.Since.Equal(since) {
		t.Fatalf("unexpected query %+v", st.lastQuery)
	}
}

func TestServiceTopTenWrapsStoreError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&stubStore{findErr: boom}, 0)

	if _, err := svc.TopTen(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestServiceSubmitStampsRecord(t *testing.T) {
	st := &stubStore{}
	svc := NewService(st, 0)
	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	svc.newID = func() string { return "id-1" }

	got, err := svc.Submit(context.Background(), domain.Entry{UserName: "  bob ", Score: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (domain.Entry{UserName: "bob", Score: 12}) {
		t.Fatalf("unexpected echo %+v", got)
	}
	if len(st.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(st.inserted))
	}
	rec := st.inserted[0]
	if rec.ID != "id-1" || !rec.Timestamp.Equal(fixed) || rec.UserName != "bob" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestServiceSubmitRejectsImplausibleScore(t *testing.T) {
	st := &stubStore{}
	svc := NewService(st, domain.DefaultMaxScore)

	_, err := svc.Submit(context.Background(), domain.Entry{UserName: "", Score: 999})
	vErr, ok := domain.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Field != "score" {
		t.Fatalf("expected score to be checked first, got %s", vErr.Field)
	}
	if len(st.inserted) != 0 {
		t.Fatalf("invalid entry reached the store")
	}
}

func TestServiceSubmitWrapsInsertError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewService(&stubStore{insertErr: boom}, 0)

	_, err := svc.Submit(context.Background(), domain.Entry{UserName: "c", Score: 1})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
	if _, ok := domain.AsValidationError(err); ok {
		t.Fatalf("storage failure must not look like a validation error")
	}
}

func TestServicePingAndMaxScore(t *testing.T) {
	boom := errors.New("down")
	svc := NewService(&stubStore{pingErr: boom}, 50)
	if err := svc.Ping(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected ping error, got %v", err)
	}
	if svc.MaxScore() != 50 {
		t.Fatalf("expected max score 50, got %d", svc.MaxScore())
	}
}
