package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitClient implements the GitClient interface in-process with go-git,
// for machines without a git binary.
type GoGitClient struct{}

var _ GitClient = &GoGitClient{} // Compile-time check

// NewGoGitClient creates a new instance of the go-git client.
func NewGoGitClient() *GoGitClient {
	return &GoGitClient{}
}

func (c *GoGitClient) open(path string) (*git.Repository, error) {
	r, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true, EnableDotGitCommonDir: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", path, err)
	}
	return r, nil
}

// Run is not supported by the in-process client.
func (c *GoGitClient) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	return nil, fmt.Errorf("raw git commands are not supported by the gogit engine: %v", args)
}

// GetRepoRoot implements the GitClient interface.
func (c *GoGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	r, err := c.open(contextPath)
	if err != nil {
		return "", err
	}
	wt, err := r.Worktree()
	if err != nil {
		return "", fmt.Errorf("bare repositories are not supported: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// GetCurrentBranch implements the GitClient interface.
func (c *GoGitClient) GetCurrentBranch(_ context.Context, repoPath string) (string, error) {
	r, err := c.open(repoPath)
	if err != nil {
		return "", err
	}
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", errors.New("repository is in detached HEAD state; pass --branch explicitly")
	}
	return head.Name().Short(), nil
}

// GetRepoHash implements the GitClient interface.
func (c *GoGitClient) GetRepoHash(_ context.Context, repoPath string, branch string) (string, error) {
	r, err := c.open(repoPath)
	if err != nil {
		return "", err
	}
	hash, err := r.ResolveRevision(plumbing.Revision(branch))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", branch, err)
	}
	return hash.String(), nil
}

// GetAuthorLog implements the GitClient interface. The output matches the
// format produced by LocalGitClient so both feed the same parser.
func (c *GoGitClient) GetAuthorLog(ctx context.Context, repoPath string, branch string) ([]byte, error) {
	r, err := c.open(repoPath)
	if err != nil {
		return nil, err
	}
	hash, err := r.ResolveRevision(plumbing.Revision(branch))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", branch, err)
	}
	iter, err := r.Log(&git.LogOptions{From: *hash})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history of %q: %w", branch, err)
	}
	defer iter.Close()

	var buf bytes.Buffer
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		_, _ = fmt.Fprintf(&buf, "--%s|%s|%s|%s",
			commit.Hash.String(),
			commit.Author.Name,
			commit.Author.Email,
			commit.Author.When.Format(time.RFC3339),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
