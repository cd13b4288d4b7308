package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/constants"
	"github.com/kapu/osu-scraper-go/internal/domain"
	"github.com/kapu/osu-scraper-go/internal/util"
	apperrors "github.com/kapu/osu-scraper-go/pkg/errors"
)

// Aggregator turns identifiers or leaderboard pages into a ProfileSet.
// Every run is independent; a single failed fetch aborts the whole run.
type Aggregator struct {
	profiles ProfileFetcher
	walker   LeaderboardWalker
	progress ProgressFunc
	logger   *zap.Logger
}

func NewAggregator(profiles ProfileFetcher, walker LeaderboardWalker, progress ProgressFunc, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		profiles: profiles,
		walker:   walker,
		progress: progress,
		logger:   logger,
	}
}

// ClampWorkers bounds a requested pool size to [1, MaxWorkers].
func ClampWorkers(maxWorkers int) int {
	return util.Clamp(maxWorkers, 1, constants.PoolConfig.MaxWorkers)
}

// Sequential fetches each identifier in order, one request at a time.
func (a *Aggregator) Sequential(ctx context.Context, identifiers []string) (*domain.ProfileSet, error) {
	a.logger.Info("Retrieving profiles", zap.Int("count", len(identifiers)), zap.String("mode", "sequential"))

	tracker := newProgressTracker(a.progress)
	set, err := a.fetchSequential(ctx, identifiers, tracker, stepFor(len(identifiers), 1))
	if err != nil {
		return nil, err
	}
	tracker.Complete()

	a.logger.Info("Profiles retrieved", zap.Int("profiles", set.Len()))
	return set, nil
}

// Concurrent fetches identifiers on a pool of at most maxWorkers goroutines.
// The result is keyed by the username each profile reports.
func (a *Aggregator) Concurrent(ctx context.Context, identifiers []string, maxWorkers int) (*domain.ProfileSet, error) {
	workers := ClampWorkers(maxWorkers)
	if workers != maxWorkers {
		a.logger.Warn("Worker count adjusted",
			zap.Int("requested", maxWorkers),
			zap.Int("using", workers))
	}
	a.logger.Info("Retrieving profiles",
		zap.Int("count", len(identifiers)),
		zap.String("mode", "concurrent"),
		zap.Int("workers", workers))

	tracker := newProgressTracker(a.progress)
	set, err := a.fetchConcurrent(ctx, identifiers, workers, tracker, stepFor(len(identifiers), 1))
	if err != nil {
		return nil, err
	}
	tracker.Complete()

	a.logger.Info("Profiles retrieved", zap.Int("profiles", set.Len()))
	return set, nil
}

// Top walks leaderboard pages 1..pageStop and fetches every listed profile
// sequentially. Progress advances per user, weighted by page.
func (a *Aggregator) Top(ctx context.Context, pageStop int) (*domain.ProfileSet, error) {
	pages, err := a.walker.Walk(ctx, domain.MinPage, pageStop)
	if err != nil {
		return nil, err
	}

	tracker := newProgressTracker(a.progress)
	set := domain.NewProfileSet()
	for _, page := range pages {
		pageSet, err := a.fetchSequential(ctx, page.Usernames, tracker, stepFor(len(page.Usernames), len(pages)))
		if err != nil {
			return nil, fmt.Errorf("leaderboard page %d: %w", page.Number, err)
		}
		set.Merge(pageSet)
	}
	tracker.Complete()

	a.logger.Info("Top profiles retrieved",
		zap.Int("pages", len(pages)),
		zap.Int("profiles", set.Len()))
	return set, nil
}

// TopConcurrent is Top with per-page profile fetches spread over a worker
// pool. Pages themselves are still fetched one by one.
func (a *Aggregator) TopConcurrent(ctx context.Context, pageStop, maxWorkers int) (*domain.ProfileSet, error) {
	workers := ClampWorkers(maxWorkers)
	pages, err := a.walker.Walk(ctx, domain.MinPage, pageStop)
	if err != nil {
		return nil, err
	}

	tracker := newProgressTracker(a.progress)
	set := domain.NewProfileSet()
	for _, page := range pages {
		pageSet, err := a.fetchConcurrent(ctx, page.Usernames, workers, tracker, stepFor(len(page.Usernames), len(pages)))
		if err != nil {
			return nil, fmt.Errorf("leaderboard page %d: %w", page.Number, err)
		}
		set.Merge(pageSet)
	}
	tracker.Complete()

	a.logger.Info("Top profiles retrieved",
		zap.Int("pages", len(pages)),
		zap.Int("profiles", set.Len()),
		zap.Int("workers", workers))
	return set, nil
}

// ByRank fetches the profile holding a global rank. A rank outside the
// leaderboard is reported and yields (nil, nil) rather than an error.
func (a *Aggregator) ByRank(ctx context.Context, rank int) (*domain.Profile, error) {
	if _, _, err := domain.Locate(rank); err != nil {
		var rangeErr *apperrors.OutOfRangeError
		if errors.As(err, &rangeErr) {
			a.logger.Warn("Rank outside leaderboard",
				zap.Int("rank", rank),
				zap.String("reason", rangeErr.Reason),
				zap.Int("min", rangeErr.Min),
				zap.Int("max", rangeErr.Max))
			return nil, nil
		}
		return nil, err
	}

	username, err := a.walker.UsernameAt(ctx, rank)
	if err != nil {
		return nil, fmt.Errorf("rank %d: %w", rank, err)
	}

	profile, err := a.profiles.FetchProfile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("rank %d: fetch profile %q: %w", rank, username, err)
	}
	return profile, nil
}

func (a *Aggregator) fetchSequential(ctx context.Context, identifiers []string, tracker *progressTracker, step float64) (*domain.ProfileSet, error) {
	set := domain.NewProfileSet()
	for _, identifier := range identifiers {
		a.logger.Debug("Getting profile", zap.String("identifier", identifier))
		profile, err := a.profiles.FetchProfile(ctx, identifier)
		if err != nil {
			return nil, fmt.Errorf("fetch profile %q: %w", identifier, err)
		}
		set.Set(profile.Identifier(), profile)
		tracker.Advance(step)
	}
	return set, nil
}

type indexedProfile struct {
	index   int
	profile *domain.Profile
}

func (a *Aggregator) fetchConcurrent(ctx context.Context, identifiers []string, workers int, tracker *progressTracker, step float64) (*domain.ProfileSet, error) {
	if len(identifiers) == 0 {
		return domain.NewProfileSet(), nil
	}

	p := pool.NewWithResults[indexedProfile]().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(workers)

	for idx, identifier := range identifiers {
		idx, identifier := idx, identifier
		p.Go(func(ctx context.Context) (indexedProfile, error) {
			a.logger.Debug("Getting profile", zap.String("identifier", identifier))
			profile, err := a.profiles.FetchProfile(ctx, identifier)
			if err != nil {
				return indexedProfile{}, fmt.Errorf("fetch profile %q: %w", identifier, err)
			}
			tracker.Advance(step)
			return indexedProfile{index: idx, profile: profile}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	// Completion order is arbitrary; assemble in input order so that
	// duplicate usernames resolve to the last identifier given.
	sort.Slice(results, func(i, j int) bool {
		return results[i].index < results[j].index
	})

	set := domain.NewProfileSet()
	for _, result := range results {
		set.Set(result.profile.Identifier(), result.profile)
	}
	return set, nil
}

// stepFor is the progress share of one item in a batch of size items that is
// itself one of batches equal parts.
func stepFor(items, batches int) float64 {
	if items == 0 || batches == 0 {
		return 0
	}
	return 100 / float64(items) / float64(batches)
}
