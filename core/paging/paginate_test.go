package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		perPage   int
		requested string
		want      Page
	}{
		{
			name: "first page", total: 60, perPage: 25, requested: "1",
			want: Page{Number: 1, Pages: 3, PerPage: 25, HasPrevious: false, HasNext: true, Offset: 0, Limit: 25},
		},
		{
			name: "last partial page", total: 60, perPage: 25, requested: "3",
			want: Page{Number: 3, Pages: 3, PerPage: 25, HasPrevious: true, HasNext: false, Offset: 50, Limit: 10},
		},
		{
			name: "not an integer", total: 60, perPage: 25, requested: "abc",
			want: Page{Number: 1, Pages: 3, PerPage: 25, HasPrevious: false, HasNext: true, Offset: 0, Limit: 25},
		},
		{
			name: "empty requested", total: 60, perPage: 25, requested: "",
			want: Page{Number: 1, Pages: 3, PerPage: 25, HasPrevious: false, HasNext: true, Offset: 0, Limit: 25},
		},
		{
			name: "past the end", total: 60, perPage: 25, requested: "99",
			want: Page{Number: 3, Pages: 3, PerPage: 25, HasPrevious: true, HasNext: false, Offset: 50, Limit: 10},
		},
		{
			name: "below the start", total: 60, perPage: 25, requested: "-2",
			want: Page{Number: 3, Pages: 3, PerPage: 25, HasPrevious: true, HasNext: false, Offset: 50, Limit: 10},
		},
		{
			name: "page zero", total: 60, perPage: 25, requested: "0",
			want: Page{Number: 3, Pages: 3, PerPage: 25, HasPrevious: true, HasNext: false, Offset: 50, Limit: 10},
		},
		{
			name: "empty dataset", total: 0, perPage: 25, requested: "4",
			want: Page{Number: 1, Pages: 1, PerPage: 25, HasPrevious: false, HasNext: false, Offset: 0, Limit: 0},
		},
		{
			name: "zero per page", total: 3, perPage: 0, requested: "2",
			want: Page{Number: 2, Pages: 3, PerPage: 1, HasPrevious: true, HasNext: true, Offset: 1, Limit: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.total, tt.perPage, tt.requested))
		})
	}
}

func FuzzPaginate(f *testing.F) {
	f.Add(60, 25, "2")
	f.Add(0, 0, "")
	f.Add(-5, -5, "-1")
	f.Add(1000, 7, "9999999999999999999999")

	f.Fuzz(func(t *testing.T, total, perPage int, requested string) {
		if total > 1<<40 || perPage > 1<<40 {
			t.Skip()
		}
		p := Paginate(total, perPage, requested)
		if p.Number < 1 || p.Number > p.Pages {
			t.Fatalf("page %d outside [1, %d]", p.Number, p.Pages)
		}
		if p.Limit < 0 || p.Offset < 0 {
			t.Fatalf("negative slice bounds: offset=%d limit=%d", p.Offset, p.Limit)
		}
		if p.HasPrevious != (p.Number != 1) || p.HasNext != (p.Number != p.Pages) {
			t.Fatalf("inconsistent flags: %+v", p)
		}
	})
}
