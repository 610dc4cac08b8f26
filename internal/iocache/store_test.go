package iocache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore opens a store backed by a fresh file in a temp dir.
func newSQLiteStore(t *testing.T) contract.ContributorStore {
	t.Helper()
	store, err := NewContributorStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "impact.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSnapshot(repo, branch string, indexedAt time.Time, authors ...schema.AuthorStats) schema.Snapshot {
	return schema.Snapshot{
		Repo:        repo,
		Branch:      branch,
		Head:        "abc123",
		IndexedAt:   indexedAt,
		PeriodStart: indexedAt.AddDate(0, 0, -90),
		Authors:     authors,
	}
}

func testAuthors(n int) []schema.AuthorStats {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	authors := make([]schema.AuthorStats, 0, n)
	for i := range n {
		authors = append(authors, schema.AuthorStats{
			ID:                     int64(i + 1),
			Name:                   string(rune('A'+i%26)) + "uthor",
			Email:                  "",
			RevisionsAll:           n - i,
			RevisionsCurrentPeriod: (n - i) / 2,
			FirstAction:            base.Add(time.Duration(i) * time.Hour),
			LastAction:             base.Add(time.Duration(i+1) * time.Hour),
		})
	}
	return authors
}

func TestContributorStore_NoneBackend(t *testing.T) {
	ctx := context.Background()
	store, err := NewContributorStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	assert.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("r", "main", time.Now(), testAuthors(3)...)))

	count, err := store.CountAuthors(ctx, "r", "main")
	assert.NoError(t, err)
	assert.Zero(t, count)

	authors, err := store.ListAuthors(ctx, "r", "main", 0, 10)
	assert.NoError(t, err)
	assert.Empty(t, authors)

	_, err = store.GetAuthor(ctx, "r", "main", 1)
	assert.ErrorIs(t, err, contract.ErrNotFound)

	_, err = store.DefaultBranch(ctx, "r")
	assert.ErrorIs(t, err, contract.ErrNotFound)

	status, err := store.GetStatus(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.ClearRepo(ctx, ""))
	assert.NoError(t, store.Close())
}

func TestContributorStore_UnsupportedBackend(t *testing.T) {
	_, err := NewContributorStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestContributorStore_ReplaceAndList(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("widgets", "main", now, testAuthors(30)...)))

	count, err := store.CountAuthors(ctx, "widgets", "main")
	require.NoError(t, err)
	assert.Equal(t, 30, count)

	page, err := store.ListAuthors(ctx, "widgets", "main", 25, 25)
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, int64(26), page[0].ID)
	assert.Equal(t, 5, page[0].RevisionsAll)

	all, err := store.AllAuthors(ctx, "widgets", "main")
	require.NoError(t, err)
	require.Len(t, all, 30)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].RevisionsAll, all[i].RevisionsAll)
	}
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), all[0].FirstAction)
}

func TestContributorStore_RankTieBreak(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	authors := []schema.AuthorStats{
		{ID: 3, Name: "carol", RevisionsAll: 2},
		{ID: 1, Name: "bob", RevisionsAll: 5},
		{ID: 2, Name: "alice", RevisionsAll: 2},
	}
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("r", "main", time.Now(), authors...)))

	all, err := store.AllAuthors(ctx, "r", "main")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"bob", "alice", "carol"}, []string{all[0].Name, all[1].Name, all[2].Name})
}

func TestContributorStore_ReplaceOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	now := time.Now()

	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("r", "main", now, testAuthors(10)...)))
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("r", "main", now.Add(time.Minute), testAuthors(2)...)))

	count, err := store.CountAuthors(ctx, "r", "main")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Snapshots)
}

func TestContributorStore_GetAuthor(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("r", "main", time.Now(), testAuthors(3)...)))

	a, err := store.GetAuthor(ctx, "r", "main", 2)
	require.NoError(t, err)
	assert.Equal(t, "Buthor", a.Name)
	assert.Equal(t, 2, a.RevisionsAll)

	_, err = store.GetAuthor(ctx, "r", "main", 99)
	assert.ErrorIs(t, err, contract.ErrNotFound)

	_, err = store.GetAuthor(ctx, "r", "dev", 2)
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestContributorStore_DefaultBranch(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	now := time.Now()

	_, err := store.DefaultBranch(ctx, "r")
	assert.ErrorIs(t, err, contract.ErrNotFound)

	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("r", "main", now, testAuthors(1)...)))
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("r", "dev", now.Add(time.Hour), testAuthors(1)...)))

	branch, err := store.DefaultBranch(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "dev", branch)
}

func TestContributorStore_HasSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("r", "main", time.Now())))

	tests := []struct {
		repo, branch string
		want         bool
	}{
		{"r", "main", true},
		{"r", "dev", false},
		{"other", "main", false},
	}
	for _, tt := range tests {
		t.Run(tt.repo+"@"+tt.branch, func(t *testing.T) {
			got, err := store.HasSnapshot(ctx, tt.repo, tt.branch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	require.NoError(t, store.ClearRepo(ctx, "r"))
	got, err := store.HasSnapshot(ctx, "r", "main")
	require.NoError(t, err)
	assert.False(t, got, "cleared snapshots are gone")
}

func TestContributorStore_EmptySnapshot(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("empty", "main", time.Now())))

	count, err := store.CountAuthors(ctx, "empty", "main")
	require.NoError(t, err)
	assert.Zero(t, count)

	branch, err := store.DefaultBranch(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	require.Len(t, status.Branches, 1)
	assert.Zero(t, status.Branches[0].Authors)
}

func TestContributorStore_ClearRepo(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	now := time.Now()
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("a", "main", now, testAuthors(2)...)))
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("b", "main", now, testAuthors(3)...)))

	require.NoError(t, store.ClearRepo(ctx, "a"))
	count, err := store.CountAuthors(ctx, "a", "main")
	require.NoError(t, err)
	assert.Zero(t, count)
	count, err = store.CountAuthors(ctx, "b", "main")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, store.ClearRepo(ctx, ""))
	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, status.Snapshots)
	assert.Zero(t, status.Authors)
}

func TestContributorStore_GetStatus(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("a", "main", older, testAuthors(2)...)))
	require.NoError(t, store.ReplaceSnapshot(ctx, testSnapshot("b", "main", newer, testAuthors(3)...)))

	status, err := store.GetStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.Snapshots)
	assert.Equal(t, 5, status.Authors)
	assert.Equal(t, newer, status.LastIndex)
	assert.Equal(t, 2, status.TableSizes[snapshotsTable])
	assert.Equal(t, 5, status.TableSizes[authorsTable])
	require.Len(t, status.Branches, 2)
	assert.Equal(t, "a", status.Branches[0].Repo)
	assert.Equal(t, 2, status.Branches[0].Authors)
}

func TestContributorStore_CloseNil(t *testing.T) {
	store := &ContributorStoreImpl{}
	assert.NoError(t, store.Close())
}
