// Package core has the core logic for indexing contributors and building
// the table, chart and author responses.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/impact/core/paging"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
)

// resolveStoredBranch falls back to the most recently indexed branch of repo.
// An explicit branch must have been indexed.
func resolveStoredBranch(ctx context.Context, store contract.ContributorStore, repo, branch string) (string, error) {
	if branch != "" {
		ok, err := store.HasSnapshot(ctx, repo, branch)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("branch %s of repository %q is not indexed: %w", branch, repo, contract.ErrNotFound)
		}
		return branch, nil
	}
	b, err := store.DefaultBranch(ctx, repo)
	if err != nil {
		return "", fmt.Errorf("repository %q has no indexed branch: %w", repo, err)
	}
	return b, nil
}

// ContributorsPage builds the table response for one page of a repository's authors.
// requested is the raw page parameter; invalid or out-of-range values are
// resolved the way paging.Paginate does.
func ContributorsPage(ctx context.Context, store contract.ContributorStore, repo, branch, requested string, perPage int) (schema.ContributorsPage, error) {
	branch, err := resolveStoredBranch(ctx, store, repo, branch)
	if err != nil {
		return schema.ContributorsPage{}, err
	}

	total, err := store.CountAuthors(ctx, repo, branch)
	if err != nil {
		return schema.ContributorsPage{}, err
	}
	page := paging.Paginate(total, perPage, requested)

	var authors []schema.AuthorStats
	if page.Limit > 0 {
		authors, err = store.ListAuthors(ctx, repo, branch, page.Offset, page.Limit)
		if err != nil {
			return schema.ContributorsPage{}, err
		}
	}

	rows := make([]schema.AuthorRow, 0, len(authors))
	for _, a := range authors {
		rows = append(rows, schema.AuthorRow{ID: a.ID, Name: a.Name, Count: a.RevisionsAll})
	}
	return schema.ContributorsPage{
		Page:        page.Number,
		Pages:       page.Pages,
		PerPage:     page.PerPage,
		HasPrevious: page.HasPrevious,
		HasNext:     page.HasNext,
		Authors:     rows,
	}, nil
}

// ImpactData builds the chart response: one entry per author in rank order.
func ImpactData(ctx context.Context, store contract.ContributorStore, repo, branch string) (schema.ImpactData, error) {
	branch, err := resolveStoredBranch(ctx, store, repo, branch)
	if err != nil {
		return schema.ImpactData{}, err
	}

	authors, err := store.AllAuthors(ctx, repo, branch)
	if err != nil {
		return schema.ImpactData{}, err
	}

	data := make([]schema.ImpactEntry, 0, len(authors))
	for _, a := range authors {
		data = append(data, schema.ImpactEntry{Href: schema.AuthorHref(a.ID, repo), Count: a.RevisionsAll})
	}
	return schema.ImpactData{Data: data, AuthorCount: len(data)}, nil
}

// AuthorDetail builds the detail response of a single author.
func AuthorDetail(ctx context.Context, store contract.ContributorStore, repo, branch string, id int64) (schema.AuthorDetail, error) {
	branch, err := resolveStoredBranch(ctx, store, repo, branch)
	if err != nil {
		return schema.AuthorDetail{}, err
	}

	a, err := store.GetAuthor(ctx, repo, branch, id)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return schema.AuthorDetail{}, fmt.Errorf("author %d in %s@%s: %w", id, repo, branch, contract.ErrNotFound)
		}
		return schema.AuthorDetail{}, err
	}
	return schema.AuthorDetail{Rep: a.Rep()}, nil
}
