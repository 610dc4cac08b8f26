// Package schema has the shared models and constants for all parts of impact.
package schema

import "time"

// PaginationState is the server-authoritative paging state of a table response.
// HasPrevious and HasNext are reported by the server and are never recomputed
// from Page and Pages by clients.
type PaginationState struct {
	Page        int  // Current 1-indexed page
	Pages       int  // Total number of pages, at least 1
	HasPrevious bool // Whether a previous page exists
	HasNext     bool // Whether a next page exists
}

// PageDescriptor is a single page link produced by the window calculator.
type PageDescriptor struct {
	PageNumber int  `json:"pageNumber"`
	IsCurrent  bool `json:"isCurrent"`
}

// ControlKind identifies the role of a pagination control.
type ControlKind string

// All pagination control kinds, in display order.
const (
	FirstControl    ControlKind = "first"
	PreviousControl ControlKind = "previous"
	PageControlKind ControlKind = "page"
	NextControl     ControlKind = "next"
	LastControl     ControlKind = "last"
)

// PageControl is one item of a rendered pagination control bar.
type PageControl struct {
	Kind       ControlKind `json:"kind"`
	Label      string      `json:"label"`
	PageNumber int         `json:"pageNumber"`
	Disabled   bool        `json:"disabled"`
	IsCurrent  bool        `json:"isCurrent"`
}

// AuthorRow is one row of the contributor table.
type AuthorRow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ContributorsPage is the table response of GET /contributors/repo/:repo.
type ContributorsPage struct {
	Page        int         `json:"page"`
	Pages       int         `json:"pages"`
	PerPage     int         `json:"perPage"`
	HasPrevious bool        `json:"hasPrevious"`
	HasNext     bool        `json:"hasNext"`
	Authors     []AuthorRow `json:"authors"`
}

// State extracts the pagination state reported by the server.
func (p ContributorsPage) State() PaginationState {
	return PaginationState{
		Page:        p.Page,
		Pages:       p.Pages,
		HasPrevious: p.HasPrevious,
		HasNext:     p.HasNext,
	}
}

// Rank returns the 1-based overall rank of the i-th row on this page.
func (p ContributorsPage) Rank(i int) int {
	return p.PerPage*(p.Page-1) + i + 1
}

// ImpactEntry is one bar of the chart response.
type ImpactEntry struct {
	Href  string `json:"href"`
	Count int    `json:"count"`
}

// ImpactData is the chart response of GET /impact/repo/:repo.
// Entries are ordered by rank and that order is never changed by consumers.
type ImpactData struct {
	Data        []ImpactEntry `json:"data"`
	AuthorCount int           `json:"authorCount"`
}

// RevisionCounts holds an author's revision totals.
type RevisionCounts struct {
	All           int `json:"all"`
	CurrentPeriod int `json:"currentPeriod"`
}

// AuthorRep is the representation of a single author.
type AuthorRep struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email,omitempty"`
	Revisions   RevisionCounts `json:"revisions"`
	FirstAction *time.Time     `json:"firstAction,omitempty"`
	LastAction  *time.Time     `json:"lastAction,omitempty"`
}

// AuthorDetail is the response of GET /author/:id.
type AuthorDetail struct {
	Rep AuthorRep `json:"rep"`
}

// ChartPoint is one data point of the impact chart.
type ChartPoint struct {
	Position   int    // 0-indexed rank within the response
	Value      int    // Commit count
	DetailHref string // Relative URL of the author detail record
}

// AuthorStats is the stored per-author aggregate for a (repo, branch) pair.
type AuthorStats struct {
	ID                     int64
	Name                   string
	Email                  string
	RevisionsAll           int
	RevisionsCurrentPeriod int
	FirstAction            time.Time
	LastAction             time.Time
}

// Rep converts the stored aggregate into its API representation.
func (a AuthorStats) Rep() AuthorRep {
	rep := AuthorRep{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Revisions: RevisionCounts{
			All:           a.RevisionsAll,
			CurrentPeriod: a.RevisionsCurrentPeriod,
		},
	}
	if !a.FirstAction.IsZero() {
		first := a.FirstAction
		rep.FirstAction = &first
	}
	if !a.LastAction.IsZero() {
		last := a.LastAction
		rep.LastAction = &last
	}
	return rep
}

// Snapshot is the indexed contributor state of one branch of one repository.
type Snapshot struct {
	Repo        string
	Branch      string
	Head        string // Commit hash the branch pointed at when indexed
	IndexedAt   time.Time
	PeriodStart time.Time
	Authors     []AuthorStats // Sorted by revisions desc, then name asc
}
