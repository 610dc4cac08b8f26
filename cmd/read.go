package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/impact/core/chart"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/feed"
	"github.com/huangsam/impact/internal/outwriter"
	"github.com/huangsam/impact/internal/render"
	"github.com/huangsam/impact/internal/tui"
	"github.com/spf13/cobra"
)

// requestContext bounds one read by the configured timeout.
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(rootCtx, cfg.RequestTimeout)
}

// contributorsCmd prints one page of the contributor table.
var contributorsCmd = &cobra.Command{
	Use:   "contributors [repo-path]",
	Short: "Print one page of the contributor table",
	Long: `Print the authors of an indexed repository ranked by revisions, one page at a
time, followed by the page links around the current page.

Pages that cannot be parsed or are below 1 fall back to the first page and
pages past the end fall back to the last one.

Examples:
  # First page of the current repository
  impact contributors

  # Third page as JSON, 50 per page
  impact contributors --page 3 --per-page 50 --output json

  # Read from a running server
  impact contributors --endpoint http://localhost:8080 --repo-name widgets`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		raw, _ := cmd.Flags().GetString("page")
		page, err := strconv.Atoi(raw)
		if err != nil {
			page = 0
		}
		retries, _ := cmd.Flags().GetInt("retries")

		start := time.Now()
		ctx, cancel := requestContext()
		defer cancel()
		loader := feed.NewTableLoader(newFetcher(), cfg.RepoName, cfg.Branch, cfg.LookAround)
		resp, err := loader.ClickRetrying(ctx, page, max(0, retries))
		if err != nil {
			contract.LogFatal("Failed to load contributors", err)
		}
		if err := outwriter.NewOutWriter().WriteContributors(resp, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Failed to write contributors", err)
		}
	},
}

// chartCmd prints or renders the impact chart.
var chartCmd = &cobra.Command{
	Use:   "chart [repo-path]",
	Short: "Print the impact chart or render it as SVG or PNG",
	Long: `Show one bar per author in rank order, its height the author's revisions.

Without --image the chart is drawn in the terminal (or written as csv, json or
parquet with --output). With --image it is rendered in --chart-format at
--chart-width by --chart-height pixels into --output-file.

Examples:
  # Terminal chart
  impact chart

  # PNG for a README
  impact chart --image --chart-format png --output-file impact.png`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx, cancel := requestContext()
		defer cancel()
		data, err := feed.LoadImpact(ctx, newFetcher(), cfg.RepoName, cfg.Branch)
		if err != nil {
			contract.LogFatal("Failed to load impact data", err)
		}

		image, _ := cmd.Flags().GetBool("image")
		if !image {
			if err := outwriter.NewOutWriter().WriteImpact(data, cfg); err != nil {
				contract.LogFatal("Failed to write impact chart", err)
			}
			return
		}

		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to render chart", fmt.Errorf("--image requires --output-file"))
		}
		handle := chart.RenderChart(data, chart.ChartConfig{
			Branch: cfg.Branch,
			Title:  "Contributor impact of " + cfg.RepoName,
			Width:  float64(cfg.ChartWidth),
			Height: float64(cfg.ChartHeight),
		})
		if err := writeChartFile(handle.Drawing(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to render chart", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Wrote %s chart to %s\n", cfg.ChartFormat, cfg.OutputFile)
	},
}

// writeChartFile renders d into path in the configured format.
func writeChartFile(d chart.Drawing, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.Write(f, d, cfg.ChartFormat)
}

// authorCmd prints the detail record of one author.
var authorCmd = &cobra.Command{
	Use:   "author <id> [repo-path]",
	Short: "Print the detail record of one author",
	Long: `Print the name, email, revision counts and first and last commit of the
author with the given id, as listed by the contributors command.

Examples:
  impact author 42
  impact author 42 --branch release --output json`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, args[1:], setupOptions{})
	},
	Run: func(_ *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			contract.LogFatal("Invalid author id", fmt.Errorf("%q is not a positive integer", args[0]))
		}

		ctx, cancel := requestContext()
		defer cancel()
		detail, err := feed.NewDetailLoader(newFetcher()).Load(ctx, feed.AuthorURL(id, cfg.RepoName, cfg.Branch))
		if err != nil {
			contract.LogFatal("Failed to load author", err)
		}
		if err := outwriter.NewOutWriter().WriteAuthor(detail, cfg); err != nil {
			contract.LogFatal("Failed to write author", err)
		}
	},
}

// browseCmd opens the interactive browser.
var browseCmd = &cobra.Command{
	Use:   "browse [repo-path]",
	Short: "Browse the contributor table and the impact chart interactively",
	Long: `Open a terminal browser with the paginated contributor table above the impact
chart. Tab switches between them; hovering a bar shows the author's details.

Examples:
  impact browse
  impact browse --endpoint http://localhost:8080 --repo-name widgets`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := tui.Run(rootCtx, newFetcher(), tui.Options{
			Repo:        cfg.RepoName,
			Branch:      cfg.Branch,
			LookAround:  cfg.LookAround,
			Timeout:     cfg.RequestTimeout,
			ChartWidth:  cfg.ChartWidth,
			ChartHeight: cfg.ChartHeight,
		})
		if err != nil {
			contract.LogFatal("Browser stopped", err)
		}
	},
}
