package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/impact/core/paging"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/parquet"
	"github.com/huangsam/impact/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// contributorsJSON is the JSON form of a page: the response plus its controls.
type contributorsJSON struct {
	schema.ContributorsPage
	Controls []schema.PageControl `json:"controls"`
}

// WriteContributorsPage outputs a contributors page, dispatching based on the output format configured.
func WriteContributorsPage(page schema.ContributorsPage, cfg *contract.Config, duration time.Duration) error {
	controls := paging.Controls(page.State(), cfg.LookAround)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeContributorsJSON(w, page, controls)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeContributorsCSV(w, page)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteFile(parquet.ConvertPage(page), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeContributorsTable(w, page, controls, cfg, duration)
		}, "Wrote table")
	}
}

// writeContributorsTable writes the human-readable table followed by the control bar.
func writeContributorsTable(w io.Writer, page schema.ContributorsPage, controls []schema.PageControl, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Name", "Revisions"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignRight}
	})

	nameWidth := getMaxNameWidth(cfg)
	data := make([][]string, 0, len(page.Authors))
	for i, a := range page.Authors {
		data = append(data, []string{
			strconv.Itoa(page.Rank(i)),
			contract.TruncateName(a.Name, nameWidth),
			strconv.Itoa(a.Count),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, FormatControls(controls, cfg.UseColors)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Page %d of %d (%d per page). Loaded in %v\n", page.Page, page.Pages, page.PerPage, duration.Round(time.Millisecond))
	return err
}

// FormatControls renders a control bar on one line. The current page is
// bracketed; with colors, it is highlighted and disabled controls are dimmed.
func FormatControls(controls []schema.PageControl, useColors bool) string {
	current := colorFor(contract.CurrentPageColor, useColors)
	disabled := colorFor(contract.DisabledColor, useColors)

	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		switch {
		case c.IsCurrent:
			parts = append(parts, current("["+c.Label+"]"))
		case c.Disabled:
			parts = append(parts, disabled(c.Label))
		default:
			parts = append(parts, c.Label)
		}
	}
	return strings.Join(parts, " ")
}

// writeContributorsCSV writes one line per author with the absolute rank.
func writeContributorsCSV(w io.Writer, page schema.ContributorsPage) error {
	return writeCSVWithHeader(w, []string{"rank", "id", "name", "revisions"}, func(cw *csv.Writer) error {
		for i, a := range page.Authors {
			rec := []string{
				strconv.Itoa(page.Rank(i)),
				strconv.FormatInt(a.ID, 10),
				a.Name,
				strconv.Itoa(a.Count),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeContributorsJSON writes the page as the server would, plus the control bar.
func writeContributorsJSON(w io.Writer, page schema.ContributorsPage, controls []schema.PageControl) error {
	if page.Authors == nil {
		page.Authors = []schema.AuthorRow{}
	}
	return writeJSON(w, contributorsJSON{ContributorsPage: page, Controls: controls})
}

// colorFor returns a sprint function that colors when enabled.
func colorFor(c *color.Color, enabled bool) func(...any) string {
	if !enabled {
		return fmt.Sprint
	}
	return c.SprintFunc()
}
