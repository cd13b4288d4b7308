package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/domain"
	"github.com/kapu/osu-scraper-go/internal/util"
)

// SnapshotSummary describes the stored history of one username.
type SnapshotSummary struct {
	Username  string
	Snapshots int
	LatestAt  time.Time
}

// SnapshotRepository stores fetched profiles so they can be reloaded later
// through domain.NewProfileFromRaw.
type SnapshotRepository struct {
	store  *SQLiteService
	logger *zap.Logger
}

func NewSnapshotRepository(store *SQLiteService, logger *zap.Logger) *SnapshotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotRepository{store: store, logger: logger}
}

// Save writes one snapshot row per profile, all stamped with fetchedAt.
func (r *SnapshotRepository) Save(ctx context.Context, set *domain.ProfileSet, fetchedAt time.Time) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO profile_snapshots(username, user_id, payload, fetched_at)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	stamp := util.FormatSnapshotTime(fetchedAt)
	for _, profile := range set.Profiles() {
		var userID any
		if id, err := profile.NumericID(); err == nil {
			userID = id
		}
		if _, err := stmt.ExecContext(ctx, profile.Identifier(), userID, string(profile.Raw()), stamp); err != nil {
			return fmt.Errorf("insert snapshot for %q: %w", profile.Identifier(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Info("Snapshots saved",
		zap.Int("profiles", set.Len()),
		zap.String("fetched_at", stamp))
	return nil
}

// Latest rebuilds the newest snapshot of each username. With no usernames
// every stored username is returned, ordered by name.
func (r *SnapshotRepository) Latest(ctx context.Context, usernames ...string) (*domain.ProfileSet, error) {
	query := `
		SELECT s.username, s.payload
		FROM profile_snapshots s
		WHERE s.id = (
			SELECT s2.id FROM profile_snapshots s2
			WHERE s2.username = s.username
			ORDER BY s2.fetched_at DESC, s2.id DESC
			LIMIT 1
		)`
	args := make([]any, 0, len(usernames))
	if len(usernames) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(usernames)), ",")
		query += " AND s.username IN (" + placeholders + ")"
		for _, name := range usernames {
			args = append(args, name)
		}
	}
	query += " ORDER BY s.username"

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := domain.NewProfileSet()
	for rows.Next() {
		var username, payload string
		if err := rows.Scan(&username, &payload); err != nil {
			return nil, err
		}
		profile, err := domain.NewProfileFromRaw([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("stored snapshot for %q: %w", username, err)
		}
		set.Set(username, profile)
	}
	return set, rows.Err()
}

// List summarizes stored snapshots per username.
func (r *SnapshotRepository) List(ctx context.Context) ([]SnapshotSummary, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT username, COUNT(*), MAX(fetched_at)
		FROM profile_snapshots
		GROUP BY username
		ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotSummary
	for rows.Next() {
		var (
			summary SnapshotSummary
			latest  string
		)
		if err := rows.Scan(&summary.Username, &summary.Snapshots, &latest); err != nil {
			return nil, err
		}
		if summary.LatestAt, err = util.ParseSnapshotTime(latest); err != nil {
			return nil, fmt.Errorf("snapshot time for %q: %w", summary.Username, err)
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}
