package outwriter

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteAuthorDetail outputs an author detail record, dispatching based on the output format configured.
func WriteAuthorDetail(detail schema.AuthorDetail, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, detail)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorCSV(w, detail.Rep)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errors.New("parquet output is not supported for a single author")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorTable(w, detail.Rep)
		}, "Wrote table")
	}
}

// formatAction formats an optional action time, or "-" when unknown.
func formatAction(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(contract.DateTimeFormat)
}

// writeAuthorTable writes the record as a two-column table.
func writeAuthorTable(w io.Writer, rep schema.AuthorRep) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	rows := [][]string{
		{"ID", strconv.FormatInt(rep.ID, 10)},
		{"Name", rep.Name},
		{"Email", rep.Email},
		{"Overall commits", strconv.Itoa(rep.Revisions.All)},
		{"Commits in current period", strconv.Itoa(rep.Revisions.CurrentPeriod)},
		{"First action", formatAction(rep.FirstAction)},
		{"Last action", formatAction(rep.LastAction)},
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func writeAuthorCSV(w io.Writer, rep schema.AuthorRep) error {
	header := []string{"id", "name", "email", "revisions_all", "revisions_current_period", "first_action", "last_action"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			strconv.FormatInt(rep.ID, 10),
			rep.Name,
			rep.Email,
			strconv.Itoa(rep.Revisions.All),
			strconv.Itoa(rep.Revisions.CurrentPeriod),
			formatAction(rep.FirstAction),
			formatAction(rep.LastAction),
		})
	})
}
