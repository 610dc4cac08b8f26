package server

import (
	"fmt"
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/huangsam/impact/internal/contract"
)

var (
	repoRe = regexp.MustCompile(`^[A-Za-z0-9._\-]+$`)
	idRe   = regexp.MustCompile(`^[0-9]{1,16}$`)
)

const maxNameLength = 255

// repoQuery identifies a stored snapshot.
type repoQuery struct {
	Repo   string
	Branch string
}

func (q repoQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Repo, validation.Required, validation.Length(1, maxNameLength), validation.Match(repoRe)),
		validation.Field(&q.Branch, validation.Length(0, maxNameLength)),
	)
}

// authorQuery identifies one author of a snapshot.
type authorQuery struct {
	repoQuery
	ID string
}

func (q authorQuery) Validate() error {
	if err := validation.ValidateStruct(&q,
		validation.Field(&q.ID, validation.Required, validation.Match(idRe).Error("must be a positive integer")),
	); err != nil {
		return err
	}
	return q.repoQuery.Validate()
}

// chartQuery holds the rendering options of a chart image.
type chartQuery struct {
	repoQuery
	Width  int
	Height int
	Title  string
	Filter bool
}

// parseFilter enables the branch filter caption when filter is a true boolean string.
func (q *chartQuery) parseFilter(filter string) error {
	if filter == "" {
		return nil
	}
	on, err := contract.ParseBoolString(filter)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	q.Filter = on
	return nil
}

// parseSize overrides the configured size with the width and height query
// values when present.
func (q *chartQuery) parseSize(width, height string) error {
	if width != "" {
		w, err := strconv.Atoi(width)
		if err != nil {
			return fmt.Errorf("width: must be an integer")
		}
		q.Width = w
	}
	if height != "" {
		h, err := strconv.Atoi(height)
		if err != nil {
			return fmt.Errorf("height: must be an integer")
		}
		q.Height = h
	}
	return nil
}

func (q chartQuery) Validate() error {
	if err := validation.ValidateStruct(&q,
		validation.Field(&q.Width, validation.Min(0), validation.Max(contract.MaxChartDimension)),
		validation.Field(&q.Height, validation.Min(0), validation.Max(contract.MaxChartDimension)),
		validation.Field(&q.Title, validation.Length(0, maxNameLength)),
	); err != nil {
		return err
	}
	return q.repoQuery.Validate()
}
