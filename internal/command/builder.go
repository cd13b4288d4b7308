package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kapu/osu-scraper-go/internal/app"
	"github.com/kapu/osu-scraper-go/internal/config"
	"github.com/kapu/osu-scraper-go/internal/util"
)

// DefaultBuilder loads configuration from the environment (and .env),
// applies flag overrides and assembles the live pipeline.
func DefaultBuilder(ctx context.Context, overrides Overrides) (*Dependencies, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	applyOverrides(cfg, overrides)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := app.Build(ctx, cfg, logger, app.Streams{Out: os.Stdout, Progress: os.Stderr})
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}

	deps := &Dependencies{
		Aggregator: container.Aggregator,
		Recorder:   container.Recorder,
		Progress:   container.Progress,
		MaxWorkers: cfg.Pool.MaxWorkers,
		OutputDir:  cfg.Output.Directory,
		Err:        os.Stderr,
		Logger:     logger,
	}
	if container.Snapshots != nil {
		deps.Snapshots = container.Snapshots
	}

	cleanup := func() {
		container.Close()
		_ = logger.Sync()
	}
	return deps, cleanup, nil
}

func applyOverrides(cfg *config.Config, o Overrides) {
	if o.BaseURL != "" {
		cfg.Osu.BaseURL = strings.TrimRight(o.BaseURL, "/")
	}
	if o.Workers != 0 {
		cfg.Pool.MaxWorkers = o.Workers
	}
	if o.SnapshotDB != "" {
		cfg.Storage.SnapshotDB = o.SnapshotDB
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.File = o.LogFile
	}
}
