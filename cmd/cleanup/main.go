package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"snake-highscore/internal/config"
	"snake-highscore/internal/logging"
	"snake-highscore/internal/metrics"
	"snake-highscore/internal/retention"
	"snake-highscore/internal/store"
)

const appVersion = "dev"

var openStore = store.Open

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	dotenvErr := config.LoadDotEnv()
	cfg := config.LoadCleanup()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "highscore-cleanup",
		Version: appVersion,
	})
	if dotenvErr != nil {
		logging.Warn(logger, "failed to load dotenv file", "error", dotenvErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logging.Error(logger, "cleanup failed", err)
		os.Exit(1)
	}
}

// run prunes the leaderboard once, or on every interval until ctx is done.
func run(ctx context.Context, cfg config.CleanupConfig, logger *slog.Logger) error {
	st, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	job := retention.NewJob(st, cfg.Retention.Keep, logger, metrics.NewRecorder())
	if cfg.RunOnce {
		_, err := job.Run(ctx)
		return err
	}

	sched := retention.NewScheduler(job, logger, cfg.Retention.Interval)
	sched.Start(ctx)
	<-ctx.Done()
	return sched.Stop(context.Background())
}
