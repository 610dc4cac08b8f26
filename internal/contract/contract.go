// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/impact/schema"
)

// GitClient defines the Git operations needed to index contributor history.
// This allows the indexing logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns its output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Reference Resolution ---

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetCurrentBranch returns the short name of the checked out branch.
	GetCurrentBranch(ctx context.Context, repoPath string) (string, error)

	// GetRepoHash returns the commit hash the given branch points at.
	GetRepoHash(ctx context.Context, repoPath string, branch string) (string, error)

	// --- Activity Logs ---

	// GetAuthorLog returns one "--hash|name|email|date" header line per commit
	// reachable from branch, with dates in strict ISO 8601.
	GetAuthorLog(ctx context.Context, repoPath string, branch string) ([]byte, error)
}

// StoreManager defines the interface for managing the contributor store.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetContributorStore() ContributorStore
}

// ContributorStore persists contributor snapshots keyed by (repo, branch).
type ContributorStore interface {
	// ReplaceSnapshot atomically swaps the stored snapshot of a (repo, branch) pair.
	ReplaceSnapshot(ctx context.Context, snap schema.Snapshot) error

	// CountAuthors returns the number of authors in a snapshot.
	CountAuthors(ctx context.Context, repo, branch string) (int, error)

	// ListAuthors returns one page of authors ordered by revisions desc, then name asc.
	ListAuthors(ctx context.Context, repo, branch string, offset, limit int) ([]schema.AuthorStats, error)

	// AllAuthors returns every author of a snapshot in rank order.
	AllAuthors(ctx context.Context, repo, branch string) ([]schema.AuthorStats, error)

	// GetAuthor returns a single author or ErrNotFound.
	GetAuthor(ctx context.Context, repo, branch string, id int64) (schema.AuthorStats, error)

	// DefaultBranch returns the most recently indexed branch of a repository or ErrNotFound.
	DefaultBranch(ctx context.Context, repo string) (string, error)

	// HasSnapshot reports whether a (repo, branch) pair was indexed, even with zero authors.
	HasSnapshot(ctx context.Context, repo, branch string) (bool, error)

	// ClearRepo removes every snapshot of a repository, or of all repositories when repo is empty.
	ClearRepo(ctx context.Context, repo string) error

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// Fetcher retrieves a JSON document and decodes it into out.
// Failures are reported as *FetchFailure.
type Fetcher interface {
	Fetch(ctx context.Context, url string, out any) error
}
