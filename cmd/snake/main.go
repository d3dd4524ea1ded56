package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"snake-highscore/internal/audio"
	"snake-highscore/internal/config"
	"snake-highscore/internal/domain/game"
	"snake-highscore/internal/highscoreapi"
	"snake-highscore/internal/leaderboard"
	"snake-highscore/internal/logging"
	"snake-highscore/internal/session"
	"snake-highscore/internal/terminal"
)

const (
	appVersion         = "dev"
	leaderboardFailure = "Leaderboard unavailable, score not saved"
)

var openTerminal = terminal.Open

func main() {
	if os.Getenv("SKIP_CLIENT_RUN") == "1" {
		return
	}

	dotenvErr := config.LoadDotEnv()
	cfg := config.LoadClient()
	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log file:", err)
		os.Exit(1)
	}
	defer closeLog()
	if dotenvErr != nil {
		logging.Warn(logger, "failed to load dotenv file", "error", dotenvErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logging.Error(logger, "snake exited", err)
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

// newLogger writes to path, or discards everything when path is empty.
// The terminal owns stdout while the game runs.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return logging.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	var once sync.Once
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "snake",
		Version: appVersion,
		Output:  f,
	})
	return logger, func() { once.Do(func() { _ = f.Close() }) }, nil
}

// run plays until the player quits or ctx is done.
func run(ctx context.Context, cfg config.ClientConfig, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	arena := game.DefaultArena()
	ui, err := openTerminal(arena, logger)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer ui.Close()

	sound := audio.New(cfg.Sound, logger)
	defer sound.Close()

	client := highscoreapi.NewClient(highscoreapi.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	})
	protocol := leaderboard.New(client, ui, ui, logger)

	var wg sync.WaitGroup
	defer wg.Wait()

	sess := session.New(game.NewEngine(arena, nil), session.Options{
		Renderer: ui,
		Sound:    sound,
		Logger:   logger,
		OnGameOver: func(score int) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := protocol.GameOver(ctx, uint(score)); err != nil && ctx.Err() == nil {
					ui.ShowError(leaderboardFailure)
				}
			}()
		},
	})
	sess.Greet()

	wg.Add(1)
	go func() {
		defer wg.Done()
		protocol.Refresh(ctx)
	}()
	go ui.Poll(ctx)

	logging.Info(logger, "snake started", "api", cfg.APIBaseURL)
	err = session.Run(ctx, sess, ui.Keys(), cfg.TickInterval)
	cancel()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
