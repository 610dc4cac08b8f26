package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/impact/core/chart"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/parquet"
	"github.com/huangsam/impact/internal/render"
	"github.com/huangsam/impact/schema"
)

// chartRows is the height of the terminal chart in lines.
const chartRows = 8

// WriteImpactData outputs a chart response, dispatching based on the output format configured.
func WriteImpactData(data schema.ImpactData, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if data.Data == nil {
				data.Data = []schema.ImpactEntry{}
			}
			return writeJSON(w, data)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImpactCSV(w, data)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteFile(parquet.ConvertImpact(data), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeImpactChart(w, data, cfg)
		}, "Wrote chart")
	}
}

// writeImpactChart draws the bars as block glyphs under a title, with the
// largest count on the axis.
func writeImpactChart(w io.Writer, data schema.ImpactData, cfg *contract.Config) error {
	handle := chart.RenderChart(data, chart.ChartConfig{
		Branch: cfg.Branch,
		Title:  "Contributor impact of " + cfg.RepoName,
		Width:  float64(cfg.ChartWidth),
		Height: float64(cfg.ChartHeight),
	})
	drawing := handle.Drawing()

	header := colorFor(contract.HeaderColor, cfg.UseColors)
	if _, err := fmt.Fprintln(w, header(drawing.Title)); err != nil {
		return err
	}

	top := strconv.Itoa(schema.MaxCount(data.Data))
	labelWidth := max(len(top), 1)
	lines := render.Terminal(drawing, getChartColumns(cfg), chartRows)
	for i, line := range lines {
		label := ""
		switch i {
		case 0:
			label = top
		case len(lines) - 1:
			label = "0"
		}
		if _, err := fmt.Fprintf(w, "%*s │%s\n", labelWidth, label, line); err != nil {
			return err
		}
	}
	if len(lines) > 0 {
		width := len([]rune(lines[0]))
		if _, err := fmt.Fprintf(w, "%*s └%s\n", labelWidth, "", strings.Repeat("─", width)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d authors, most revisions: %s\n", data.AuthorCount, top)
	return err
}

// writeImpactCSV writes one line per bar in response order.
func writeImpactCSV(w io.Writer, data schema.ImpactData) error {
	return writeCSVWithHeader(w, []string{"position", "href", "count"}, func(cw *csv.Writer) error {
		for i, d := range data.Data {
			if err := cw.Write([]string{strconv.Itoa(i), d.Href, strconv.Itoa(d.Count)}); err != nil {
				return err
			}
		}
		return nil
	})
}
