package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/huangsam/impact/core/chart"
	"github.com/huangsam/impact/core/paging"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/feed"
	"github.com/huangsam/impact/internal/overlay"
	"github.com/huangsam/impact/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// errNoRepo is returned when neither the request nor the config names a repository.
var errNoRepo = errors.New("repo is required")

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	fetcher contract.Fetcher
}

// contributorsResult is a contributors page plus its control bar.
type contributorsResult struct {
	schema.ContributorsPage
	Controls []schema.PageControl `json:"controls"`
}

// target resolves the repository and branch of a request against the config.
func (h *toolHandler) target(request mcp.CallToolRequest) (string, string, error) {
	repo := request.GetString("repo", h.baseCfg.RepoName)
	if repo == "" {
		return "", "", errNoRepo
	}
	return repo, request.GetString("branch", h.baseCfg.Branch), nil
}

// jsonResult encodes v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetContributors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, branch, err := h.target(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var page schema.ContributorsPage
	if err := h.fetcher.Fetch(ctx, feed.ContributorsURL(repo, branch, request.GetInt("page", 0)), &page); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("contributors lookup failed: %v", err)), nil
	}

	return jsonResult(contributorsResult{
		ContributorsPage: page,
		Controls:         paging.Controls(page.State(), h.baseCfg.LookAround),
	})
}

func (h *toolHandler) handleGetImpact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	repo, branch, err := h.target(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := feed.LoadImpact(ctx, h.fetcher, repo, branch)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("impact lookup failed: %v", err)), nil
	}
	return jsonResult(data)
}

func (h *toolHandler) handleGetAuthor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil || id <= 0 {
		return mcp.NewToolResultError("id must be a positive integer"), nil
	}
	repo, branch, err := h.target(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var detail schema.AuthorDetail
	if err := h.fetcher.Fetch(ctx, feed.AuthorURL(int64(id), repo, branch), &detail); err != nil {
		var failure *contract.FetchFailure
		if errors.As(err, &failure) && failure.IsNotFound() {
			return mcp.NewToolResultError(fmt.Sprintf("author %d not found in %s", id, repo)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("author lookup failed: %v", err)), nil
	}
	return jsonResult(detail)
}

// hoverResult is the outcome of hovering the impact chart.
type hoverResult struct {
	Hit      bool    `json:"hit"`
	PointerX float64 `json:"pointer_x"`
	Position int     `json:"position"`
	Href     string  `json:"href,omitempty"`
	Tooltip  string  `json:"tooltip,omitempty"`
}

func (h *toolHandler) handleHoverChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	x, err := request.RequireFloat("x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	width := request.GetFloat("width", float64(h.baseCfg.ChartWidth))
	if width < 0 || width > contract.MaxChartDimension {
		return mcp.NewToolResultError(fmt.Sprintf("width must be between 0 and %d", contract.MaxChartDimension)), nil
	}
	repo, branch, err := h.target(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := feed.LoadImpact(ctx, h.fetcher, repo, branch)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("impact lookup failed: %v", err)), nil
	}

	handle := chart.RenderChart(data, chart.ChartConfig{
		Branch: branch,
		Width:  width,
		Height: float64(h.baseCfg.ChartHeight),
	})
	tooltip := overlay.NewTooltip()
	handle.AttachProbe(feed.NewDetailLoader(h.fetcher), tooltip)

	hp, done, ok := handle.Hover(ctx, x)
	if !ok {
		return jsonResult(hoverResult{PointerX: x})
	}
	select {
	case <-done:
	case <-ctx.Done():
		return mcp.NewToolResultError(fmt.Sprintf("author lookup failed: %v", ctx.Err())), nil
	}
	return jsonResult(hoverResult{
		Hit:      true,
		PointerX: x,
		Position: hp.ResolvedPosition,
		Href:     hp.ResolvedPoint.DetailHref,
		Tooltip:  tooltip.Content(),
	})
}

func (h *toolHandler) handleGetPageWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := request.RequireInt("page")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pages, err := request.RequireInt("pages")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lookAround := request.GetInt("look_around", h.baseCfg.LookAround)
	if lookAround < 0 || lookAround > contract.MaxLookAround {
		return mcp.NewToolResultError(fmt.Sprintf("look_around must be between 0 and %d", contract.MaxLookAround)), nil
	}
	return jsonResult(paging.ComputeWindow(page, pages, lookAround))
}
