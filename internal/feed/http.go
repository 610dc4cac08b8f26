// Package feed loads table, chart and author responses for the widgets,
// either from a remote impact server or straight from the local store.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/huangsam/impact/internal/contract"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxErrorBody bounds how much of a failed response is read for the log.
const maxErrorBody = 512

// HTTPFetcher fetches JSON documents from an impact server.
type HTTPFetcher struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
	log     *zap.SugaredLogger
}

var _ contract.Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher returns a fetcher resolving relative URLs against base.
// Every fetch is bounded by timeout; rps > 0 limits the request rate.
func NewHTTPFetcher(base string, timeout time.Duration, rps float64, log *zap.SugaredLogger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = contract.DefaultRequestTimeout
	}
	if log == nil {
		log = contract.NopLogger()
	}
	f := &HTTPFetcher{
		base:    strings.TrimRight(base, "/"),
		client:  &http.Client{},
		timeout: timeout,
		log:     log,
	}
	if rps > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
	return f
}

// Fetch issues a GET for url and decodes the JSON body into out.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	target := url
	if strings.HasPrefix(url, "/") {
		target = f.base + url
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return &contract.FetchFailure{URL: url, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &contract.FetchFailure{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Debugw("fetch failed", "url", url, "error", err)
		return &contract.FetchFailure{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	f.log.Debugw("fetch", "url", url, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &contract.FetchFailure{
			URL:    url,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s: %s", http.StatusText(resp.StatusCode), strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &contract.FetchFailure{URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
