package paging

import (
	"strconv"
	"strings"
)

// Page is the outcome of paginating a result set of known size.
type Page struct {
	Number      int
	Pages       int
	PerPage     int
	HasPrevious bool
	HasNext     bool
	Offset      int
	Limit       int
}

// Paginate resolves a requested page against total rows split into pages of perPage.
// A page that is not an integer resolves to page 1. Any integer outside
// [1, pages], zero and negatives included, resolves to the last page.
// An empty result set still has one page.
func Paginate(total, perPage int, requested string) Page {
	perPage = max(1, perPage)
	total = max(0, total)
	pages := max(1, (total+perPage-1)/perPage)

	number, err := strconv.Atoi(strings.TrimSpace(requested))
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > pages:
		number = pages
	}

	offset := perPage * (number - 1)
	return Page{
		Number:      number,
		Pages:       pages,
		PerPage:     perPage,
		HasPrevious: number != 1,
		HasNext:     number != pages,
		Offset:      offset,
		Limit:       min(perPage, total-offset),
	}
}
