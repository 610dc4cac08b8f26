package contract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// fixtureCommit describes one commit of a generated repository.
type fixtureCommit struct {
	name  string
	email string
	when  time.Time
}

// newFixtureRepo creates a repository in a temp dir with one commit per entry,
// oldest first, and returns its root.
func newFixtureRepo(t *testing.T, commits []fixtureCommit) string {
	t.Helper()
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := r.Worktree()
	require.NoError(t, err)

	for i, c := range commits {
		path := filepath.Join(dir, "file.txt")
		require.NoError(t, os.WriteFile(path, []byte(c.name+c.when.String()+string(rune('a'+i))), 0o644))
		_, err = wt.Add("file.txt")
		require.NoError(t, err)
		_, err = wt.Commit("change", &git.CommitOptions{
			Author: &object.Signature{Name: c.name, Email: c.email, When: c.when},
		})
		require.NoError(t, err)
	}
	return dir
}

var fixtureCommits = []fixtureCommit{
	{"Alice Smith", "alice@example.com", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
	{"Bob Jones", "bob@example.com", time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)},
	{"Alice Smith", "alice@example.com", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
}
