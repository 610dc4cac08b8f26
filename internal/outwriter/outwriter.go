// Package outwriter prints contributor pages, impact charts and author
// details as tables, JSON, CSV or Parquet.
package outwriter

import (
	"time"

	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/schema"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteContributors prints one page of the contributor table with its pagination controls.
func (ow *OutWriter) WriteContributors(page schema.ContributorsPage, cfg *contract.Config, duration time.Duration) error {
	return WriteContributorsPage(page, cfg, duration)
}

// WriteImpact prints the impact chart of a repository.
func (ow *OutWriter) WriteImpact(data schema.ImpactData, cfg *contract.Config) error {
	return WriteImpactData(data, cfg)
}

// WriteAuthor prints the detail record of one author.
func (ow *OutWriter) WriteAuthor(detail schema.AuthorDetail, cfg *contract.Config) error {
	return WriteAuthorDetail(detail, cfg)
}
