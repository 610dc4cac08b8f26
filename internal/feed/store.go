package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/impact/core"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
)

// StoreFetcher answers API URLs from a local contributor store, without a server.
type StoreFetcher struct {
	store   contract.ContributorStore
	perPage int
	timeout time.Duration
}

var _ contract.Fetcher = (*StoreFetcher)(nil)

// NewStoreFetcher returns a fetcher reading pages of perPage authors from store.
func NewStoreFetcher(store contract.ContributorStore, perPage int, timeout time.Duration) *StoreFetcher {
	if timeout <= 0 {
		timeout = contract.DefaultRequestTimeout
	}
	return &StoreFetcher{store: store, perPage: perPage, timeout: timeout}
}

// Fetch resolves rawURL the way the server routes it and writes the response into out,
// which must point at the matching response type.
func (f *StoreFetcher) Fetch(ctx context.Context, rawURL string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	u, err := url.Parse(rawURL)
	if err != nil {
		return &contract.FetchFailure{URL: rawURL, Status: http.StatusBadRequest, Err: err}
	}
	q := u.Query()
	branch := q.Get("branch")

	switch {
	case strings.HasPrefix(u.Path, ContributorsPrefix):
		dst, ok := out.(*schema.ContributorsPage)
		if !ok {
			return mismatch(rawURL, out)
		}
		repo := strings.TrimPrefix(u.Path, ContributorsPrefix)
		page, err := core.ContributorsPage(ctx, f.store, repo, branch, q.Get("page"), f.perPage)
		if err != nil {
			return storeFailure(rawURL, err)
		}
		*dst = page
	case strings.HasPrefix(u.Path, ImpactPrefix):
		dst, ok := out.(*schema.ImpactData)
		if !ok {
			return mismatch(rawURL, out)
		}
		repo := strings.TrimPrefix(u.Path, ImpactPrefix)
		data, err := core.ImpactData(ctx, f.store, repo, branch)
		if err != nil {
			return storeFailure(rawURL, err)
		}
		*dst = data
	case strings.HasPrefix(u.Path, AuthorPrefix):
		dst, ok := out.(*schema.AuthorDetail)
		if !ok {
			return mismatch(rawURL, out)
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(u.Path, AuthorPrefix), 10, 64)
		if err != nil || id <= 0 {
			return &contract.FetchFailure{URL: rawURL, Status: http.StatusBadRequest, Err: fmt.Errorf("invalid author id")}
		}
		detail, err := core.AuthorDetail(ctx, f.store, q.Get("repo"), branch, id)
		if err != nil {
			return storeFailure(rawURL, err)
		}
		*dst = detail
	default:
		return &contract.FetchFailure{URL: rawURL, Status: http.StatusNotFound, Err: fmt.Errorf("no route for %s", u.Path)}
	}
	return nil
}

func mismatch(rawURL string, out any) error {
	return &contract.FetchFailure{URL: rawURL, Err: fmt.Errorf("cannot decode into %T", out)}
}

// storeFailure maps store errors onto the statuses the server would answer with.
func storeFailure(rawURL string, err error) error {
	switch {
	case errors.Is(err, contract.ErrNotFound):
		return &contract.FetchFailure{URL: rawURL, Status: http.StatusNotFound, Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &contract.FetchFailure{URL: rawURL, Err: err}
	default:
		return &contract.FetchFailure{URL: rawURL, Status: http.StatusInternalServerError, Err: err}
	}
}
