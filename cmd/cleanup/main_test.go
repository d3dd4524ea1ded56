package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"snake-highscore/internal/config"
	"snake-highscore/internal/domain/highscores"
	"snake-highscore/internal/logging"
	"snake-highscore/internal/store"
)

func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestRunOncePrunesSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hs.db")
	st, err := store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	now := time.Now().UTC()
	for i := 0; i < 20; i++ {
		rec := highscores.Record{ID: string(rune('a' + i)), UserName: "p", Score: uint(i), Timestamp: now}
		if err := st.Insert(context.Background(), rec); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	_ = st.Close()

	cfg := config.CleanupConfig{
		Store:     config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: path},
		Retention: config.RetentionConfig{Keep: 15, Interval: time.Hour},
		RunOnce:   true,
	}
	if err := run(context.Background(), cfg, logging.Discard()); err != nil {
		t.Fatalf("run: %v", err)
	}

	st, err = store.OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	left, err := st.Find(context.Background(), store.Query{})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(left) != 15 {
		t.Fatalf("expected 15 records left, got %d", len(left))
	}
}

func TestRunSurfacesStoreOpenFailure(t *testing.T) {
	orig := openStore
	defer func() { openStore = orig }()
	openStore = func(config.StoreConfig) (store.Store, error) {
		return nil, errors.New("no disk")
	}

	if err := run(context.Background(), config.CleanupConfig{RunOnce: true}, nil); err == nil {
		t.Fatalf("expected open failure to surface")
	}
}

func TestRunLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.CleanupConfig{
		Store:     config.StoreConfig{Driver: config.StoreMemory},
		Retention: config.RetentionConfig{Keep: 15, Interval: time.Millisecond},
	}

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, nil) }()
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancel")
	}
}
