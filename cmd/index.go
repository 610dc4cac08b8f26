package cmd

import (
	"fmt"
	"time"

	"github.com/huangsam/impact/core"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/iocache"
	"github.com/spf13/cobra"
)

// indexCmd walks the history of a repository into the store.
var indexCmd = &cobra.Command{
	Use:   "index [repo-path]",
	Short: "Index the commit history of a repository per author",
	Long: `Walk the commit history of one branch, count revisions per author and store
the result as the snapshot served by every read command.

Each run replaces the snapshot of (repository, branch). Revisions at or after
the start of --period also count towards the current period.

Examples:
  # Index the checked out branch of the current directory
  impact index

  # Index main of another repository with the in-process git engine
  impact index ~/src/widgets --branch main --git-engine gogit

  # Count the last 30 days as the current period
  impact index --period "30 days"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		start := time.Now()
		client := newGitClient(cfg.GitEngine)
		snap, err := core.IndexRepository(rootCtx, cfg, client, iocache.Manager.GetContributorStore())
		if err != nil {
			contract.LogFatal("Failed to index repository", err)
		}
		elapsed := time.Since(start)
		logger.Debugw("indexed repository", "repo", snap.Repo, "branch", snap.Branch, "head", snap.Head, "authors", len(snap.Authors), "elapsed", elapsed)
		fmt.Printf("Indexed %d authors of %s@%s (%s) in %v\n", len(snap.Authors), snap.Repo, snap.Branch, shortHash(snap.Head), elapsed.Round(time.Millisecond))
	},
}

// shortHash abbreviates a commit hash the way git log --oneline does.
func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
