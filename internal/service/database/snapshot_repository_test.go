package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kapu/osu-scraper-go/internal/domain"
)

func newTestRepository(t *testing.T) *SnapshotRepository {
	t.Helper()
	store, err := NewSQLiteService(context.Background(), memoryDSN, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewSnapshotRepository(store, zap.NewNop())
}

func profileSet(t *testing.T, payloads ...string) *domain.ProfileSet {
	t.Helper()
	set := domain.NewProfileSet()
	for _, payload := range payloads {
		profile, err := domain.NewProfileFromRaw([]byte(payload))
		require.NoError(t, err)
		set.Set(profile.Identifier(), profile)
	}
	return set
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)

	require.NoError(t, repo.Save(ctx, profileSet(t,
		`{"id":2,"username":"zeta","statistics":{"pp":100}}`,
		`{"id":1,"username":"alpha","statistics":{"pp":200}}`,
	), first))
	require.NoError(t, repo.Save(ctx, profileSet(t,
		`{"id":1,"username":"alpha","statistics":{"pp":250}}`,
	), second))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, latest.Keys())

	alpha, _ := latest.Get("alpha")
	pp, err := alpha.PerformancePoints()
	require.NoError(t, err)
	assert.Equal(t, 250.0, pp)

	only, err := repo.Latest(ctx, "zeta", "missing")
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta"}, only.Keys())

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []SnapshotSummary{
		{Username: "alpha", Snapshots: 2, LatestAt: second},
		{Username: "zeta", Snapshots: 1, LatestAt: first},
	}, summaries)
}

func TestSnapshotSaveWithoutUserID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Save(ctx, profileSet(t, `{"username":"anon"}`), time.Now()))

	var userID *int64
	err := repo.store.GetDB().QueryRowContext(ctx,
		`SELECT user_id FROM profile_snapshots WHERE username = ?`, "anon").Scan(&userID)
	require.NoError(t, err)
	assert.Nil(t, userID)
}

func TestSQLiteServiceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "snapshots.db")

	store, err := NewSQLiteService(context.Background(), path, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Ping(context.Background()))
	assert.FileExists(t, path)
}

func TestListEmpty(t *testing.T) {
	summaries, err := newTestRepository(t).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
