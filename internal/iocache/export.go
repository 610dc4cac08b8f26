package iocache

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/parquet"
)

// ExecuteExport writes every stored snapshot to two Parquet files derived from outputFile.
func ExecuteExport(ctx context.Context, w io.Writer, store contract.ContributorStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.Snapshots == 0 {
		return errors.New("no contributor data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Snapshots: %d\n", status.Snapshots)

	var authors []parquet.Author
	for _, b := range status.Branches {
		stats, err := store.AllAuthors(ctx, b.Repo, b.Branch)
		if err != nil {
			return fmt.Errorf("failed to retrieve authors of %s@%s: %w", b.Repo, b.Branch, err)
		}
		authors = append(authors, parquet.ConvertAuthors(b.Repo, b.Branch, stats)...)
	}

	branchesFile := outputFile + ".branches.parquet"
	if err := parquet.WriteFile(parquet.ConvertBranches(status.Branches), branchesFile); err != nil {
		return fmt.Errorf("failed to write branches: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d snapshots to: %s\n", status.Snapshots, branchesFile)

	authorsFile := outputFile + ".authors.parquet"
	if err := parquet.WriteFile(authors, authorsFile); err != nil {
		return fmt.Errorf("failed to write authors: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d author records to: %s\n", len(authors), authorsFile)

	return nil
}
