package chart

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
)

// Tooltip is the floating overlay a probe writes into.
type Tooltip interface {
	Show()
	Close()
	SetContent(content string)
}

// DetailSource loads the author detail record behind a chart point.
type DetailSource interface {
	Load(ctx context.Context, href string) (schema.AuthorDetail, error)
}

// ProbeRequest identifies one detail lookup issued by a probe.
type ProbeRequest struct {
	Seq   uint64
	Point schema.ChartPoint
	Href  string
}

// Probe fetches author details on hover and writes them into a tooltip.
// Only the response of the latest hover may update the tooltip.
// It is safe for concurrent use.
type Probe struct {
	mu      sync.Mutex
	seq     contract.Sequence
	source  DetailSource
	tooltip Tooltip
	branch  string
}

// NewProbe returns a probe that qualifies detail lookups with branch when it is set.
func NewProbe(source DetailSource, tooltip Tooltip, branch string) *Probe {
	return &Probe{source: source, tooltip: tooltip, branch: branch}
}

// Begin starts a new hover session on point: the tooltip shows the loading
// placeholder and any pending lookup becomes stale.
func (p *Probe) Begin(point schema.ChartPoint) ProbeRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	req := ProbeRequest{
		Seq:   p.seq.Next(),
		Point: point,
		Href:  WithBranch(point.DetailHref, p.branch),
	}
	p.tooltip.SetContent(schema.LoadingPlaceholder)
	p.tooltip.Show()
	return req
}

// Load fetches the detail record of req without touching the tooltip.
func (p *Probe) Load(ctx context.Context, req ProbeRequest) (schema.AuthorDetail, error) {
	return p.source.Load(ctx, req.Href)
}

// Apply writes the outcome of req into the tooltip. A request that is no
// longer the latest is dropped and reported as contract.ErrStale.
func (p *Probe) Apply(req ProbeRequest, detail schema.AuthorDetail, loadErr error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.seq.IsLatest(req.Seq) {
		return contract.ErrStale
	}
	if loadErr != nil {
		p.tooltip.SetContent(schema.DetailFailureNotice)
		return loadErr
	}
	p.tooltip.SetContent(FormatDetail(detail))
	return nil
}

// Enter runs a full hover session on point in the background. The returned
// channel is closed once the tooltip holds the final content or the response
// was dropped as stale.
func (p *Probe) Enter(ctx context.Context, point schema.ChartPoint) <-chan struct{} {
	req := p.Begin(point)
	done := make(chan struct{})
	go func() {
		defer close(done)
		detail, err := p.Load(ctx, req)
		_ = p.Apply(req, detail, err)
	}()
	return done
}

// Leave closes the tooltip and invalidates any pending lookup.
func (p *Probe) Leave() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq.Next()
	p.tooltip.Close()
}

// FormatDetail renders an author detail record as tooltip text.
func FormatDetail(detail schema.AuthorDetail) string {
	var sb strings.Builder
	sb.WriteString(detail.Rep.Name)
	fmt.Fprintf(&sb, "\n%d Overall commits", detail.Rep.Revisions.All)
	fmt.Fprintf(&sb, "\n%d Commits in current period", detail.Rep.Revisions.CurrentPeriod)
	return sb.String()
}

// WithBranch sets the branch query parameter of href. An empty branch leaves href untouched.
func WithBranch(href, branch string) string {
	if branch == "" {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	q := u.Query()
	q.Set("branch", branch)
	u.RawQuery = q.Encode()
	return u.String()
}
