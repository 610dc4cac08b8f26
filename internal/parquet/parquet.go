// Package parquet provides data structures and functions for exporting contributor
// snapshots to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/impact/schema"
	"github.com/parquet-go/parquet-go"
)

// Branch is one indexed (repo, branch) pair.
// This struct maps to the impact_snapshots database table.
type Branch struct {
	Repo      string    `parquet:"repo,snappy"`
	Branch    string    `parquet:"branch,snappy"`
	Authors   int32     `parquet:"authors,snappy"`
	IndexedAt time.Time `parquet:"indexed_at,snappy"`
}

// Author is the aggregate of one author within a snapshot.
// This struct maps to the impact_authors database table.
type Author struct {
	Repo   string `parquet:"repo,snappy"`
	Branch string `parquet:"branch,snappy"`

	// AuthorID is the stable 53-bit id also used in detail URLs
	AuthorID int64  `parquet:"author_id,snappy"`
	Name     string `parquet:"name,snappy"`
	Email    string `parquet:"email,optional,snappy"`

	RevisionsAll           int32 `parquet:"revisions_all,snappy"`
	RevisionsCurrentPeriod int32 `parquet:"revisions_current_period,snappy"`

	// FirstAction and LastAction are nil when the snapshot has no dates for the author
	FirstAction *time.Time `parquet:"first_action,optional,snappy"`
	LastAction  *time.Time `parquet:"last_action,optional,snappy"`
}

// Ranked is one row of a contributors page.
type Ranked struct {
	Rank  int32  `parquet:"rank,snappy"`
	ID    int64  `parquet:"id,snappy"`
	Name  string `parquet:"name,snappy"`
	Count int32  `parquet:"count,snappy"`
}

// WriteRows writes rows to w using the schema inferred from T.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFile creates outputPath and writes rows to it.
func WriteFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteRows(file, rows)
}

// ConvertBranches converts store status entries for export.
func ConvertBranches(branches []schema.BranchStatus) []Branch {
	result := make([]Branch, len(branches))
	for i, b := range branches {
		result[i] = Branch{
			Repo:      b.Repo,
			Branch:    b.Branch,
			Authors:   int32(b.Authors),
			IndexedAt: b.IndexedAt,
		}
	}
	return result
}

// ConvertAuthors converts the stored authors of one snapshot for export.
func ConvertAuthors(repo, branch string, authors []schema.AuthorStats) []Author {
	result := make([]Author, len(authors))
	for i, a := range authors {
		rep := a.Rep()
		result[i] = Author{
			Repo:                   repo,
			Branch:                 branch,
			AuthorID:               a.ID,
			Name:                   a.Name,
			Email:                  a.Email,
			RevisionsAll:           int32(a.RevisionsAll),
			RevisionsCurrentPeriod: int32(a.RevisionsCurrentPeriod),
			FirstAction:            rep.FirstAction,
			LastAction:             rep.LastAction,
		}
	}
	return result
}

// ConvertPage converts a contributors page, keeping the absolute rank of each row.
func ConvertPage(page schema.ContributorsPage) []Ranked {
	result := make([]Ranked, len(page.Authors))
	for i, a := range page.Authors {
		result[i] = Ranked{
			Rank:  int32(page.Rank(i)),
			ID:    a.ID,
			Name:  a.Name,
			Count: int32(a.Count),
		}
	}
	return result
}

// Bar is one entry of an impact chart.
type Bar struct {
	Position int32  `parquet:"position,snappy"`
	Href     string `parquet:"href,snappy"`
	Count    int32  `parquet:"count,snappy"`
}

// ConvertImpact converts a chart response, keeping response order.
func ConvertImpact(data schema.ImpactData) []Bar {
	result := make([]Bar, len(data.Data))
	for i, d := range data.Data {
		result[i] = Bar{Position: int32(i), Href: d.Href, Count: int32(d.Count)}
	}
	return result
}
