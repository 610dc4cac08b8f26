// Package paging computes the windowed page links of the contributor table
// and the server-side page arithmetic behind it.
package paging

import "github.com/huangsam/impact/schema"

// LookBehind returns how many pages strictly before page fit in the backward budget.
func LookBehind(page, lookAround int) int {
	return max(0, min(page-1, lookAround))
}

// LookAhead returns how many pages strictly after page fit in the forward budget.
// It stops at pages or the budget, whichever comes first.
func LookAhead(page, pages, budget int) int {
	return max(0, min(pages-page, budget))
}

// ForwardBudget widens the forward budget by whatever the backward side could not use.
func ForwardBudget(behind, lookAround int) int {
	if behind < lookAround {
		return lookAround + (lookAround - behind)
	}
	return lookAround
}

// ComputeWindow returns the contiguous page links around page.
//
// Inputs are normalized first: pages below 1 count as 1, page is clamped into
// [1, pages] and a negative lookAround counts as 0. Unused backward budget is
// handed to the forward side; unused forward budget is not handed back.
func ComputeWindow(page, pages, lookAround int) []schema.PageDescriptor {
	pages = max(1, pages)
	page = min(max(1, page), pages)
	lookAround = max(0, lookAround)

	behind := LookBehind(page, lookAround)
	ahead := LookAhead(page, pages, ForwardBudget(behind, lookAround))

	window := make([]schema.PageDescriptor, 0, behind+ahead+1)
	for n := page - behind; n <= page+ahead; n++ {
		window = append(window, schema.PageDescriptor{PageNumber: n, IsCurrent: n == page})
	}
	return window
}
