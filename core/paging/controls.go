package paging

import (
	"strconv"

	"github.com/huangsam/impact/schema"
)

// Control labels.
const (
	FirstLabel    = "«"
	PreviousLabel = "‹"
	NextLabel     = "›"
	LastLabel     = "»"
)

// Controls builds the full control bar for a table response: first, previous,
// the page window, next and last. Enablement follows the server-reported
// HasPrevious and HasNext flags only.
func Controls(state schema.PaginationState, lookAround int) []schema.PageControl {
	window := ComputeWindow(state.Page, state.Pages, lookAround)
	pages := max(1, state.Pages)
	page := min(max(1, state.Page), pages)

	controls := make([]schema.PageControl, 0, len(window)+4)
	controls = append(controls,
		schema.PageControl{Kind: schema.FirstControl, Label: FirstLabel, PageNumber: 1, Disabled: !state.HasPrevious},
		schema.PageControl{Kind: schema.PreviousControl, Label: PreviousLabel, PageNumber: max(1, page-1), Disabled: !state.HasPrevious},
	)
	for _, d := range window {
		controls = append(controls, schema.PageControl{
			Kind:       schema.PageControlKind,
			Label:      strconv.Itoa(d.PageNumber),
			PageNumber: d.PageNumber,
			IsCurrent:  d.IsCurrent,
		})
	}
	controls = append(controls,
		schema.PageControl{Kind: schema.NextControl, Label: NextLabel, PageNumber: min(pages, page+1), Disabled: !state.HasNext},
		schema.PageControl{Kind: schema.LastControl, Label: LastLabel, PageNumber: pages, Disabled: !state.HasNext},
	)
	return controls
}

// Target returns the page a control points at, or false when it cannot be followed.
func Target(c schema.PageControl) (int, bool) {
	if c.Disabled || c.IsCurrent {
		return 0, false
	}
	return c.PageNumber, true
}
