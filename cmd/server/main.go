package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"snake-highscore/internal/config"
	"snake-highscore/internal/logging"
	"snake-highscore/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	dotenvErr := config.LoadDotEnv()
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "highscore-api",
		Version: appVersion,
	})
	if dotenvErr != nil {
		logging.Warn(logger, "failed to load dotenv file", "error", dotenvErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logging.Error(logger, "failed to start server", err)
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}
