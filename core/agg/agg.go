// Package agg has aggregation logic for Git contributor data.
package agg

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
)

// AggregateAuthors reads the commit log of branch and aggregates it into per-author statistics.
func AggregateAuthors(ctx context.Context, cfg *contract.Config, client contract.GitClient, branch string) ([]schema.AuthorStats, error) {
	out, err := client.GetAuthorLog(ctx, cfg.RepoPath, branch)
	if err != nil {
		return nil, fmt.Errorf("failed to read log of %q: %w", branch, err)
	}
	return ParseAuthorLog(out, cfg.PeriodStart), nil
}

// commitHeader is a parsed "--hash|name|email|date" line.
type commitHeader struct {
	hash  string
	name  string
	email string
	date  time.Time
}

// ParseAuthorLog parses git log output into author statistics sorted by rank.
// Commits at or after periodStart count towards the current period. Lines that
// are not commit headers are ignored and malformed headers are skipped.
func ParseAuthorLog(out []byte, periodStart time.Time) []schema.AuthorStats {
	byID := make(map[int64]*schema.AuthorStats)
	seen := make(map[string]struct{})

	for _, l := range strings.Split(string(out), "\n") {
		l = strings.Trim(l, " \t\r\n'")
		if !strings.HasPrefix(l, "--") {
			continue // Blank or stats line
		}

		h, ok := parseCommitHeader(l)
		if !ok {
			continue
		}
		if _, dup := seen[h.hash]; dup {
			continue
		}
		seen[h.hash] = struct{}{}

		aggregateCommit(byID, h, periodStart)
	}

	authors := make([]schema.AuthorStats, 0, len(byID))
	for _, a := range byID {
		authors = append(authors, *a)
	}
	SortAuthors(authors)
	return authors
}

// parseCommitHeader extracts hash, author and date from a commit header line.
// The name is split off last, so it may itself contain '|'.
func parseCommitHeader(line string) (commitHeader, bool) {
	if !strings.HasPrefix(line, "--") || len(line) < 9 { // --h|n|e|d minimum
		return commitHeader{}, false
	}
	rest := line[2:] // hash|name|email|date

	hash, rest, ok := strings.Cut(rest, "|")
	if !ok {
		return commitHeader{}, false
	}
	i := strings.LastIndex(rest, "|")
	if i < 0 {
		return commitHeader{}, false
	}
	rest, rawDate := rest[:i], rest[i+1:]
	j := strings.LastIndex(rest, "|")
	if j < 0 {
		return commitHeader{}, false
	}
	name, email := strings.TrimSpace(rest[:j]), strings.TrimSpace(rest[j+1:])

	hash = strings.TrimSpace(hash)
	if hash == "" || (name == "" && email == "") {
		return commitHeader{}, false
	}
	date, err := time.Parse(time.RFC3339, strings.TrimSpace(rawDate))
	if err != nil {
		return commitHeader{}, false
	}
	return commitHeader{hash: hash, name: name, email: email, date: date}, true
}

// aggregateCommit folds a single commit into the author map. The log is
// newest first, so the first name seen for an author is the current one.
func aggregateCommit(byID map[int64]*schema.AuthorStats, h commitHeader, periodStart time.Time) {
	id := schema.AuthorID(h.email, h.name)
	a, ok := byID[id]
	if !ok {
		name := h.name
		if name == "" {
			name = h.email
		}
		a = &schema.AuthorStats{ID: id, Name: name, Email: h.email, FirstAction: h.date, LastAction: h.date}
		byID[id] = a
	}

	a.RevisionsAll++
	if !h.date.Before(periodStart) {
		a.RevisionsCurrentPeriod++
	}
	if h.date.Before(a.FirstAction) {
		a.FirstAction = h.date
	}
	if h.date.After(a.LastAction) {
		a.LastAction = h.date
	}
}

// SortAuthors orders authors by revisions desc, then name asc, then id asc.
func SortAuthors(authors []schema.AuthorStats) {
	sort.SliceStable(authors, func(i, j int) bool {
		if authors[i].RevisionsAll != authors[j].RevisionsAll {
			return authors[i].RevisionsAll > authors[j].RevisionsAll
		}
		if authors[i].Name != authors[j].Name {
			return authors[i].Name < authors[j].Name
		}
		return authors[i].ID < authors[j].ID
	})
}
