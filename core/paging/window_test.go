package paging

import (
	"testing"

	"github.com/huangsam/impact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func pageNumbers(window []schema.PageDescriptor) []int {
	nums := make([]int, len(window))
	for i, d := range window {
		nums[i] = d.PageNumber
	}
	return nums
}

func span(from, to int) []int {
	var nums []int
	for n := from; n <= to; n++ {
		nums = append(nums, n)
	}
	return nums
}

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pages      int
		lookAround int
		want       []int
	}{
		{"first page borrows backward budget", 1, 10, 3, span(1, 7)},
		{"last page", 10, 10, 3, span(7, 10)},
		{"middle page", 5, 10, 3, span(2, 8)},
		{"second page", 2, 10, 3, span(1, 7)},
		{"fourth page uses full budget", 4, 10, 3, span(1, 7)},
		{"single page", 1, 1, 3, []int{1}},
		{"fewer pages than window", 2, 3, 3, span(1, 3)},
		{"zero look around", 5, 10, 0, []int{5}},
		{"negative look around", 5, 10, -2, []int{5}},
		{"zero pages treated as one", 1, 0, 3, []int{1}},
		{"page past end is clamped", 12, 10, 3, span(7, 10)},
		{"page before start is clamped", 0, 10, 3, span(1, 7)},
		{"near end without backward borrowing", 9, 10, 3, span(6, 10)},
		{"large look around", 50, 100, 10, span(40, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := ComputeWindow(tt.page, tt.pages, tt.lookAround)
			assert.Equal(t, tt.want, pageNumbers(window))
		})
	}
}

func TestComputeWindowMarksCurrent(t *testing.T) {
	window := ComputeWindow(5, 10, 3)
	current := 0
	for _, d := range window {
		if d.IsCurrent {
			current++
			assert.Equal(t, 5, d.PageNumber)
		}
	}
	assert.Equal(t, 1, current, "exactly one descriptor should be current")
}

func TestComputeWindowEmptyDataset(t *testing.T) {
	window := ComputeWindow(1, 1, schema.DefaultLookAround)
	require.Len(t, window, 1)
	assert.Equal(t, schema.PageDescriptor{PageNumber: 1, IsCurrent: true}, window[0])
}

func TestLookHelpers(t *testing.T) {
	assert.Equal(t, 0, LookBehind(1, 3))
	assert.Equal(t, 2, LookBehind(3, 3))
	assert.Equal(t, 3, LookBehind(9, 3))

	assert.Equal(t, 6, ForwardBudget(0, 3))
	assert.Equal(t, 4, ForwardBudget(2, 3))
	assert.Equal(t, 3, ForwardBudget(3, 3))

	assert.Equal(t, 0, LookAhead(10, 10, 3))
	assert.Equal(t, 2, LookAhead(8, 10, 6))
	assert.Equal(t, 0, LookAhead(12, 10, 3), "look ahead is never negative")
}

// TestComputeWindowProperties checks the window invariants over random inputs.
func TestComputeWindowProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pages := rapid.IntRange(1, 500).Draw(t, "pages")
		page := rapid.IntRange(1, pages).Draw(t, "page")
		lookAround := rapid.IntRange(0, 20).Draw(t, "lookAround")

		window := ComputeWindow(page, pages, lookAround)
		if len(window) == 0 {
			t.Fatalf("empty window")
		}

		// Contiguous, ascending and inside [1, pages].
		for i, d := range window {
			if d.PageNumber < 1 || d.PageNumber > pages {
				t.Fatalf("page %d outside [1, %d]", d.PageNumber, pages)
			}
			if i > 0 && d.PageNumber != window[i-1].PageNumber+1 {
				t.Fatalf("window not contiguous at %d", i)
			}
			if d.IsCurrent != (d.PageNumber == page) {
				t.Fatalf("wrong current flag on page %d", d.PageNumber)
			}
		}

		// Bounded length.
		limit := 1 + 2*lookAround
		if len(window) > limit {
			t.Fatalf("window length %d exceeds %d", len(window), limit)
		}

		// Short backward side: the forward side absorbs the slack.
		if page-1 < lookAround && len(window) != min(pages, limit) {
			t.Fatalf("window length %d, want %d", len(window), min(pages, limit))
		}

		// Full backward side: forward slack near the last page is not handed back.
		if page-1 >= lookAround && len(window) != lookAround+1+min(pages-page, lookAround) {
			t.Fatalf("window length %d near page %d of %d", len(window), page, pages)
		}
	})
}

func FuzzComputeWindow(f *testing.F) {
	f.Add(1, 10, 3)
	f.Add(10, 10, 3)
	f.Add(5, 10, 3)
	f.Add(-4, -1, -7)
	f.Add(1<<30, 1<<30, 1<<10)

	f.Fuzz(func(t *testing.T, page, pages, lookAround int) {
		if pages > 1<<31 || lookAround > 1<<12 || page > 1<<31 {
			t.Skip()
		}
		window := ComputeWindow(page, pages, lookAround)
		if len(window) == 0 {
			t.Fatalf("empty window for (%d, %d, %d)", page, pages, lookAround)
		}
		current := 0
		for _, d := range window {
			if d.PageNumber < 1 {
				t.Fatalf("page number %d below 1", d.PageNumber)
			}
			if d.IsCurrent {
				current++
			}
		}
		if current != 1 {
			t.Fatalf("%d current pages", current)
		}
	})
}
