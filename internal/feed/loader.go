package feed

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/huangsam/impact/core/chart"
	"github.com/huangsam/impact/core/paging"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
)

// TableRequest identifies one table fetch issued by a TableLoader.
type TableRequest struct {
	Seq  uint64
	Page int // 0 lets the server pick the first page
	URL  string
}

// TableLoader keeps the contributor table of one repository current.
// Only the response to the latest click is applied; a failed fetch keeps
// the previous table and is reported by Failure. It is safe for concurrent use.
type TableLoader struct {
	fetcher    contract.Fetcher
	repo       string
	branch     string
	lookAround int

	seq contract.Sequence

	mu      sync.Mutex
	current *schema.ContributorsPage
	failure error
	last    int
}

// NewTableLoader returns a loader for the table of repo at branch.
func NewTableLoader(fetcher contract.Fetcher, repo, branch string, lookAround int) *TableLoader {
	return &TableLoader{fetcher: fetcher, repo: repo, branch: branch, lookAround: lookAround}
}

// Begin issues a request for page, superseding every pending one.
func (l *TableLoader) Begin(page int) TableRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.last = page
	return TableRequest{
		Seq:  l.seq.Next(),
		Page: page,
		URL:  ContributorsURL(l.repo, l.branch, page),
	}
}

// Fetch runs req without touching the loader state.
func (l *TableLoader) Fetch(ctx context.Context, req TableRequest) (schema.ContributorsPage, error) {
	var page schema.ContributorsPage
	err := l.fetcher.Fetch(ctx, req.URL, &page)
	return page, err
}

// Apply records the outcome of req. A superseded request is dropped and
// reported as contract.ErrStale.
func (l *TableLoader) Apply(req TableRequest, page schema.ContributorsPage, fetchErr error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.seq.IsLatest(req.Seq) {
		return contract.ErrStale
	}
	if fetchErr != nil {
		l.failure = fetchErr
		return fetchErr
	}
	l.current = &page
	l.failure = nil
	return nil
}

// Click loads page and applies the response when it is still the latest.
func (l *TableLoader) Click(ctx context.Context, page int) (schema.ContributorsPage, error) {
	req := l.Begin(page)
	resp, err := l.Fetch(ctx, req)
	if err := l.Apply(req, resp, err); err != nil {
		return schema.ContributorsPage{}, err
	}
	return resp, nil
}

// Load fetches the initial table.
func (l *TableLoader) Load(ctx context.Context) (schema.ContributorsPage, error) {
	return l.Click(ctx, 0)
}

// BeginRetry issues a new request for the last requested page.
func (l *TableLoader) BeginRetry() TableRequest {
	l.mu.Lock()
	page := l.last
	l.mu.Unlock()
	return l.Begin(page)
}

// Retry re-issues the last requested page.
func (l *TableLoader) Retry(ctx context.Context) (schema.ContributorsPage, error) {
	req := l.BeginRetry()
	resp, err := l.Fetch(ctx, req)
	if err := l.Apply(req, resp, err); err != nil {
		return schema.ContributorsPage{}, err
	}
	return resp, nil
}

// ClickRetrying loads page and retries transient failures up to retries times.
func (l *TableLoader) ClickRetrying(ctx context.Context, page, retries int) (schema.ContributorsPage, error) {
	resp, err := l.Click(ctx, page)
	for i := 0; i < retries && Transient(err); i++ {
		resp, err = l.Retry(ctx)
	}
	return resp, err
}

// Transient reports whether err is a fetch failure worth repeating: no
// response at all or a 5xx status. Cancellation is never transient.
func Transient(err error) bool {
	var failure *contract.FetchFailure
	if !errors.As(err, &failure) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return failure.Status == 0 || failure.Status >= http.StatusInternalServerError
}

// Current returns the table on display, or false before the first success.
func (l *TableLoader) Current() (schema.ContributorsPage, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return schema.ContributorsPage{}, false
	}
	return *l.current, true
}

// Failure returns the error of the latest fetch, or nil when it succeeded.
func (l *TableLoader) Failure() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failure
}

// Controls returns the pagination controls of the current table.
func (l *TableLoader) Controls() []schema.PageControl {
	page, ok := l.Current()
	if !ok {
		return nil
	}
	return paging.Controls(page.State(), l.lookAround)
}

// DetailLoader loads author detail records through a fetcher.
type DetailLoader struct {
	fetcher contract.Fetcher
}

var _ chart.DetailSource = (*DetailLoader)(nil)

// NewDetailLoader returns a detail source backed by fetcher.
func NewDetailLoader(fetcher contract.Fetcher) *DetailLoader {
	return &DetailLoader{fetcher: fetcher}
}

// Load fetches the record behind href.
func (d *DetailLoader) Load(ctx context.Context, href string) (schema.AuthorDetail, error) {
	var detail schema.AuthorDetail
	err := d.fetcher.Fetch(ctx, href, &detail)
	return detail, err
}

// LoadImpact fetches the chart response of repo.
func LoadImpact(ctx context.Context, fetcher contract.Fetcher, repo, branch string) (schema.ImpactData, error) {
	var data schema.ImpactData
	err := fetcher.Fetch(ctx, ImpactURL(repo, branch), &data)
	return data, err
}
