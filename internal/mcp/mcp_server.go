// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/impact/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Impact MCP server without starting it.
// Every tool reads through fetcher, so the same server works against the local
// store or a remote impact server. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, fetcher contract.Fetcher) *server.MCPServer {
	s := server.NewMCPServer(
		"Impact Contributor Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		fetcher: fetcher,
	}

	// --- 1. Tool: get_contributors ---
	s.AddTool(mcp.NewTool("get_contributors",
		mcp.WithDescription("List one page of a repository's contributors ranked by revisions, with the pagination controls of that page."),
		mcp.WithString("repo", mcp.Description("Repository name as indexed (defaults to the configured repository).")),
		mcp.WithString("branch", mcp.Description("Branch name (defaults to the most recently indexed branch).")),
		mcp.WithNumber("page", mcp.Description("1-based page number. Out-of-range pages resolve to the last page.")),
	), h.handleGetContributors)

	// --- 2. Tool: get_impact ---
	s.AddTool(mcp.NewTool("get_impact",
		mcp.WithDescription("Get the contributor impact chart data: one entry per author in rank order with its detail link."),
		mcp.WithString("repo", mcp.Description("Repository name as indexed.")),
		mcp.WithString("branch", mcp.Description("Branch name.")),
	), h.handleGetImpact)

	// --- 3. Tool: get_author ---
	s.AddTool(mcp.NewTool("get_author",
		mcp.WithDescription("Get the detail record of one author: overall and current-period revisions and first/last activity."),
		mcp.WithNumber("id", mcp.Description("Author id as found in contributor rows or impact links."), mcp.Required()),
		mcp.WithString("repo", mcp.Description("Repository name as indexed.")),
		mcp.WithString("branch", mcp.Description("Branch name.")),
	), h.handleGetAuthor)

	// --- 4. Tool: get_page_window ---
	s.AddTool(mcp.NewTool("get_page_window",
		mcp.WithDescription("Compute the page links shown around a page for a table with the given page count."),
		mcp.WithNumber("page", mcp.Description("Current page."), mcp.Required()),
		mcp.WithNumber("pages", mcp.Description("Total page count."), mcp.Required()),
		mcp.WithNumber("look_around", mcp.Description("Pages shown on each side (defaults to the configured value).")),
	), h.handleGetPageWindow)

	// --- 5. Tool: hover_chart ---
	s.AddTool(mcp.NewTool("hover_chart",
		mcp.WithDescription("Resolve a pointer x position on the impact chart to the author bar under it and return that author's tooltip."),
		mcp.WithNumber("x", mcp.Description("Pointer x in pixels, relative to the left edge of the plotting area."), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("Chart width in pixels including margins (defaults to the configured chart width).")),
		mcp.WithString("repo", mcp.Description("Repository name as indexed.")),
		mcp.WithString("branch", mcp.Description("Branch name.")),
	), h.handleHoverChart)

	return s
}

// StartMCPServer starts the Impact MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, fetcher contract.Fetcher) error {
	s := NewMCPServer(baseCfg, fetcher)
	return server.ServeStdio(s)
}
