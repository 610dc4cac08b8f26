//go:build integration

// Package integration contains integration tests for impact.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteEnv points the binary at a private SQLite store.
func sqliteEnv(t *testing.T) []string {
	return []string{
		"IMPACT_STORE_BACKEND=sqlite",
		"IMPACT_STORE_DB_CONNECT=" + filepath.Join(t.TempDir(), "impact.db"),
	}
}

// TestIndexMatchesShortlog indexes a fixture repository and verifies the
// ranking against git shortlog.
func TestIndexMatchesShortlog(t *testing.T) {
	repo := makeFixtureRepo(t, []fixtureAuthor{
		{Name: "Ada", Email: "ada@example.com", Commits: 5},
		{Name: "Grace", Email: "grace@example.com", Commits: 3},
		{Name: "Linus", Email: "linus@example.com", Commits: 1},
	})
	env := sqliteEnv(t)

	_, err := runImpact(t, repo, env, "index")
	require.NoError(t, err)

	out, err := runImpact(t, repo, env, "contributors", "--output", "json")
	require.NoError(t, err)

	var page contributorsOutput
	require.NoError(t, json.Unmarshal(out, &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Pages)

	want := shortlog(t, repo)
	require.Len(t, page.Authors, len(want))
	for i, a := range page.Authors {
		assert.Equal(t, want[i].Name, a.Name, "rank %d", i+1)
		assert.Equal(t, want[i].Commits, a.Count, "revisions of %s", a.Name)
	}
}

// TestPaginationEdges checks the page fallbacks through the CLI.
func TestPaginationEdges(t *testing.T) {
	authors := make([]fixtureAuthor, 0, 7)
	for i := range 7 {
		authors = append(authors, fixtureAuthor{Name: "dev-" + strconv.Itoa(i), Email: "dev" + strconv.Itoa(i) + "@example.com", Commits: 7 - i})
	}
	repo := makeFixtureRepo(t, authors)
	env := sqliteEnv(t)

	_, err := runImpact(t, repo, env, "index")
	require.NoError(t, err)

	tests := []struct {
		page string
		want int
	}{
		{"", 1},
		{"2", 2},
		{"99", 4},
		{"abc", 1},
		{"-3", 1},
	}
	for _, tt := range tests {
		t.Run("page="+tt.page, func(t *testing.T) {
			out, err := runImpact(t, repo, env, "contributors", "--per-page", "2", "--output", "json", "--page", tt.page)
			require.NoError(t, err)

			var page contributorsOutput
			require.NoError(t, json.Unmarshal(out, &page))
			assert.Equal(t, tt.want, page.Page)
			assert.Equal(t, 4, page.Pages)
		})
	}
}

// TestChartImage renders both image formats to disk.
func TestChartImage(t *testing.T) {
	repo := makeFixtureRepo(t, []fixtureAuthor{
		{Name: "Ada", Email: "ada@example.com", Commits: 2},
		{Name: "Grace", Email: "grace@example.com", Commits: 1},
	})
	env := sqliteEnv(t)

	_, err := runImpact(t, repo, env, "index")
	require.NoError(t, err)

	for _, format := range []string{"svg", "png"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "impact."+format)
			_, err := runImpact(t, repo, env, "chart", "--image", "--chart-format", format, "--output-file", path)
			require.NoError(t, err)
			assert.FileExists(t, path)
		})
	}
}

// shortlog returns the authors of repo ranked the way impact ranks them.
func shortlog(t *testing.T, repo string) []fixtureAuthor {
	t.Helper()
	cmd := exec.Command("git", "shortlog", "-sne", "HEAD")
	cmd.Dir = repo
	out, err := cmd.Output()
	require.NoError(t, err)

	var authors []fixtureAuthor
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		count, rest, ok := strings.Cut(strings.TrimSpace(line), "\t")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		require.NoError(t, err)
		name, _, _ := strings.Cut(rest, " <")
		authors = append(authors, fixtureAuthor{Name: name, Commits: n})
	}
	return authors
}
