package command

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/adapter"
	"github.com/kapu/osu-scraper-go/internal/domain"
	"github.com/kapu/osu-scraper-go/internal/service/database"
)

// ProfileAggregator is the retrieval surface the commands drive.
type ProfileAggregator interface {
	Sequential(ctx context.Context, identifiers []string) (*domain.ProfileSet, error)
	Concurrent(ctx context.Context, identifiers []string, maxWorkers int) (*domain.ProfileSet, error)
	Top(ctx context.Context, pageStop int) (*domain.ProfileSet, error)
	TopConcurrent(ctx context.Context, pageStop, maxWorkers int) (*domain.ProfileSet, error)
	ByRank(ctx context.Context, rank int) (*domain.Profile, error)
}

type SnapshotStore interface {
	Save(ctx context.Context, set *domain.ProfileSet, fetchedAt time.Time) error
	Latest(ctx context.Context, usernames ...string) (*domain.ProfileSet, error)
	List(ctx context.Context) ([]database.SnapshotSummary, error)
}

type ProgressReporter interface {
	Done(label string)
}

type Dependencies struct {
	Aggregator ProfileAggregator
	Recorder   *adapter.Recorder
	Snapshots  SnapshotStore // nil when no snapshot database is configured
	Progress   ProgressReporter
	MaxWorkers int
	OutputDir  string
	Err        io.Writer
	Logger     *zap.Logger
}

// Overrides carries global flags that take precedence over the environment.
type Overrides struct {
	BaseURL    string
	Workers    int
	SnapshotDB string
	LogLevel   string
	LogFile    string
}

// DependencyBuilder resolves Dependencies after flags are parsed. The returned
// func releases whatever the builder opened.
type DependencyBuilder func(ctx context.Context, overrides Overrides) (*Dependencies, func(), error)
