package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/impact/core/agg"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
	"golang.org/x/sync/errgroup"
)

// ResolveBranch returns the configured branch or the currently checked out one.
func ResolveBranch(ctx context.Context, cfg *contract.Config, client contract.GitClient) (string, error) {
	if cfg.Branch != "" {
		return cfg.Branch, nil
	}
	branch, err := client.GetCurrentBranch(ctx, cfg.RepoPath)
	if err != nil {
		return "", fmt.Errorf("failed to determine current branch: %w", err)
	}
	return branch, nil
}

// IndexRepository walks the history of the configured branch, aggregates it per
// author and replaces the stored snapshot of (repo, branch).
func IndexRepository(ctx context.Context, cfg *contract.Config, client contract.GitClient, store contract.ContributorStore) (*schema.Snapshot, error) {
	if cfg.RepoPath == "" {
		return nil, fmt.Errorf("indexing requires a local repository")
	}
	branch, err := ResolveBranch(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	snap := &schema.Snapshot{
		Repo:        cfg.RepoName,
		Branch:      branch,
		PeriodStart: cfg.PeriodStart,
	}

	// The head lookup and the history walk are independent.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		head, err := client.GetRepoHash(gctx, cfg.RepoPath, branch)
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", branch, err)
		}
		snap.Head = head
		return nil
	})
	g.Go(func() error {
		authors, err := agg.AggregateAuthors(gctx, cfg, client, branch)
		if err != nil {
			return err
		}
		snap.Authors = authors
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.IndexedAt = time.Now().UTC()
	if err := store.ReplaceSnapshot(ctx, *snap); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	return snap, nil
}
