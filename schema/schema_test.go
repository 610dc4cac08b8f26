package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContributorsPageState(t *testing.T) {
	page := ContributorsPage{Page: 2, Pages: 5, PerPage: 25, HasPrevious: true, HasNext: false}

	state := page.State()
	assert.Equal(t, PaginationState{Page: 2, Pages: 5, HasPrevious: true, HasNext: false}, state)
}

func TestContributorsPageRank(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		perPage int
		index   int
		want    int
	}{
		{"first row of first page", 1, 25, 0, 1},
		{"last row of first page", 1, 25, 24, 25},
		{"first row of third page", 3, 25, 0, 51},
		{"small pages", 4, 2, 1, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ContributorsPage{Page: tt.page, PerPage: tt.perPage}
			assert.Equal(t, tt.want, p.Rank(tt.index))
		})
	}
}

func TestAuthorStatsRep(t *testing.T) {
	first := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	last := first.Add(48 * time.Hour)
	stats := AuthorStats{
		ID:                     9,
		Name:                   "Jane Doe",
		Email:                  "jane@example.com",
		RevisionsAll:           12,
		RevisionsCurrentPeriod: 4,
		FirstAction:            first,
		LastAction:             last,
	}

	rep := stats.Rep()
	assert.Equal(t, int64(9), rep.ID)
	assert.Equal(t, "Jane Doe", rep.Name)
	assert.Equal(t, RevisionCounts{All: 12, CurrentPeriod: 4}, rep.Revisions)
	require.NotNil(t, rep.FirstAction)
	require.NotNil(t, rep.LastAction)
	assert.True(t, first.Equal(*rep.FirstAction))
	assert.True(t, last.Equal(*rep.LastAction))

	t.Run("zero times are omitted", func(t *testing.T) {
		rep := AuthorStats{Name: "x"}.Rep()
		assert.Nil(t, rep.FirstAction)
		assert.Nil(t, rep.LastAction)
	})
}
