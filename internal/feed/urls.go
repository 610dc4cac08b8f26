package feed

import (
	"net/url"
	"strconv"

	"github.com/huangsam/impact/core/chart"
	"github.com/huangsam/impact/schema"
)

// Route prefixes of the impact API.
const (
	ContributorsPrefix = "/contributors/repo/"
	ImpactPrefix       = "/impact/repo/"
	AuthorPrefix       = "/author/"
)

// ContributorsURL returns the table URL of repo. A page below 1 leaves the
// page to the server, which then answers with the first page.
func ContributorsURL(repo, branch string, page int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if branch != "" {
		q.Set("branch", branch)
	}
	return withQuery(ContributorsPrefix+url.PathEscape(repo), q)
}

// ImpactURL returns the chart URL of repo.
func ImpactURL(repo, branch string) string {
	q := url.Values{}
	if branch != "" {
		q.Set("branch", branch)
	}
	return withQuery(ImpactPrefix+url.PathEscape(repo), q)
}

// AuthorURL returns the detail URL of an author, qualified with branch when set.
func AuthorURL(id int64, repo, branch string) string {
	return chart.WithBranch(schema.AuthorHref(id, repo), branch)
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
