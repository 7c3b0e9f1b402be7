// cmd/forkfinder/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"forkfinder/internal/config"
	"forkfinder/internal/finder"
	"forkfinder/internal/github"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errFetchFailed) {
			slog.Error("forkfinder failed", "error", err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return newRootCmd().ExecuteContext(ctx)
}

// app holds the components shared by every subcommand.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	finder *finder.Finder
}

// newApp loads configuration and wires the pipeline. Logs are written to w.
func newApp(w io.Writer) (*app, error) {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize structured logger
	logLevel := new(slog.LevelVar)
	setLogLevel(cfg.LogLevel, logLevel)
	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	logger.Debug("Configuration loaded successfully")

	// 3. Initialize application components
	ghClient, err := github.NewClient(cfg.GithubToken, cfg.GithubAPIURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		finder: finder.NewFinder(ghClient, logger, cfg.Location),
	}, nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
