package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/adapter"
	"github.com/kapu/osu-scraper-go/internal/config"
	"github.com/kapu/osu-scraper-go/internal/service"
	"github.com/kapu/osu-scraper-go/internal/service/database"
)

// Container bundles the assembled services used by the CLI commands.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Scraper     *service.ScraperService
	Profiles    *service.ProfileService
	Leaderboard *service.LeaderboardService
	Aggregator  *service.Aggregator
	Progress    *adapter.ConsoleProgress
	Recorder    *adapter.Recorder
	Snapshots   *database.SnapshotRepository

	closers []func()
}

// Streams are the writers records and progress are sent to.
type Streams struct {
	Out      io.Writer
	Progress io.Writer
}

// Build assembles the scraping pipeline. The snapshot store is only opened
// when cfg.Storage.SnapshotDB is set.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger, streams Streams) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if streams.Out == nil {
		streams.Out = os.Stdout
	}
	if streams.Progress == nil {
		streams.Progress = os.Stderr
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	scraper := service.NewScraperService(service.ScraperConfig{
		UserAgent: cfg.Osu.UserAgent,
		Timeout:   cfg.Osu.RequestTimeout,
	}, logger)
	profiles := service.NewProfileService(scraper, cfg.Osu.BaseURL, logger)
	leaderboard := service.NewLeaderboardService(scraper, cfg.Osu.BaseURL, logger)

	progress := adapter.NewConsoleProgress(streams.Progress)
	aggregator := service.NewAggregator(profiles, leaderboard, progress.Report, logger)
	recorder := adapter.NewRecorder(streams.Out, logger)

	var snapshots *database.SnapshotRepository
	if cfg.Storage.SnapshotDB != "" {
		store, err := database.NewSQLiteService(ctx, cfg.Storage.SnapshotDB, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot store: %w", err)
		}
		closers = append(closers, func() {
			_ = store.Close()
		})
		snapshots = database.NewSnapshotRepository(store, logger)
	}

	logger.Debug("Pipeline assembled",
		zap.String("base_url", cfg.Osu.BaseURL),
		zap.Int("max_workers", cfg.Pool.MaxWorkers),
		zap.Bool("snapshots", snapshots != nil))

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Scraper:     scraper,
		Profiles:    profiles,
		Leaderboard: leaderboard,
		Aggregator:  aggregator,
		Progress:    progress,
		Recorder:    recorder,
		Snapshots:   snapshots,
		closers:     closers,
	}, nil
}

// Close releases resources opened by Build, newest first.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
