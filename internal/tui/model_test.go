package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/feed"
	"github.com/huangsam/impact/internal/iocache"
	"github.com/huangsam/impact/internal/overlay"
	"github.com/huangsam/impact/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFetcher serves widgets@main with n authors of decreasing counts, five per page.
func storeFetcher(t *testing.T, n int) contract.Fetcher {
	t.Helper()
	store, err := iocache.NewContributorStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "tui.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	authors := make([]schema.AuthorStats, 0, n)
	for i := range n {
		authors = append(authors, schema.AuthorStats{
			ID:                     int64(100 + i),
			Name:                   fmt.Sprintf("dev-%02d", i),
			RevisionsAll:           n - i,
			RevisionsCurrentPeriod: 1,
		})
	}
	require.NoError(t, store.ReplaceSnapshot(context.Background(), schema.Snapshot{
		Repo: "widgets", Branch: "main", IndexedAt: time.Now().UTC(), Authors: authors,
	}))
	return feed.NewStoreFetcher(store, 5, time.Second)
}

// flakyFetcher fails the first failures fetches whose URL has prefix.
type flakyFetcher struct {
	contract.Fetcher
	prefix string

	mu       sync.Mutex
	failures int
}

func (f *flakyFetcher) Fetch(ctx context.Context, url string, out any) error {
	f.mu.Lock()
	fail := strings.HasPrefix(url, f.prefix) && f.failures > 0
	if fail {
		f.failures--
	}
	f.mu.Unlock()
	if fail {
		return &contract.FetchFailure{URL: url, Status: 503, Err: errors.New("Service Unavailable")}
	}
	return f.Fetcher.Fetch(ctx, url, out)
}

func newModel(fetcher contract.Fetcher) *Model {
	return New(context.Background(), fetcher, Options{Repo: "widgets", LookAround: 3, Timeout: time.Second})
}

// drain runs cmd and every command produced while handling its messages.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 100, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		drain(t, m, cmd)
	}
}

func currentPage(t *testing.T, m *Model) int {
	t.Helper()
	page, ok := m.table.Current()
	require.True(t, ok)
	return page.Page
}

func TestModelInit(t *testing.T) {
	m := newModel(storeFetcher(t, 12))
	assert.Contains(t, m.View(), schema.LoadingPlaceholder)

	drain(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, "impact · widgets")
	assert.Contains(t, view, "dev-00")
	assert.NotContains(t, view, "dev-05")
	assert.Contains(t, view, "« ‹ [1] 2 3 › »")
	assert.Contains(t, view, "Page 1 of 3")
	assert.Contains(t, view, schema.DefaultChartTitle)
	assert.Contains(t, view, "█")
	assert.False(t, m.loading)
}

func TestModelPagination(t *testing.T) {
	m := newModel(storeFetcher(t, 12))
	drain(t, m, m.Init())

	tests := []struct {
		key  string
		want int
	}{
		{"n", 2},
		{"G", 3},
		{"n", 3},
		{"p", 2},
		{"g", 1},
		{"p", 1},
	}
	for _, tt := range tests {
		press(t, m, tt.key)
		assert.Equal(t, tt.want, currentPage(t, m), "after %q", tt.key)
	}

	press(t, m, "]", "]", "enter")
	assert.Equal(t, 3, currentPage(t, m), "the focused control is followed")
	assert.Contains(t, m.View(), "dev-10")
}

func TestModelRowCursor(t *testing.T) {
	m := newModel(storeFetcher(t, 12))
	drain(t, m, m.Init())

	press(t, m, "j", "j", "j", "j", "j", "j")
	assert.Equal(t, 4, m.row, "the cursor stops at the last row")
	press(t, m, "k")
	assert.Equal(t, 3, m.row)
	press(t, m, "n")
	assert.Equal(t, 0, m.row, "a new page starts at the top")
}

func TestModelStaleTableDropped(t *testing.T) {
	m := newModel(storeFetcher(t, 12))
	drain(t, m, m.Init())

	older := m.loadTable(m.table.Begin(2))
	newer := m.loadTable(m.table.Begin(3))

	m.Update(newer())
	m.Update(older())

	assert.Equal(t, 3, currentPage(t, m))
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "Page 3 of 3")
}

func TestModelTableFailureRetry(t *testing.T) {
	fetcher := &flakyFetcher{Fetcher: storeFetcher(t, 12), prefix: feed.ContributorsPrefix, failures: 1}
	m := newModel(fetcher)
	drain(t, m, m.Init())

	require.True(t, m.dialogOpen())
	view := m.View()
	assert.Contains(t, view, "Could not load contributors")
	assert.Contains(t, view, "Retry")
	assert.Contains(t, view, overlay.DismissText)

	press(t, m, "enter")
	assert.False(t, m.dialogOpen(), "a successful retry closes the dialog")
	assert.Equal(t, 1, currentPage(t, m))
	assert.NoError(t, m.table.Failure())
}

func TestModelFailureKeepsPreviousTable(t *testing.T) {
	fetcher := &flakyFetcher{Fetcher: storeFetcher(t, 12), prefix: feed.ContributorsPrefix}
	m := newModel(fetcher)
	drain(t, m, m.Init())

	fetcher.mu.Lock()
	fetcher.failures = 1
	fetcher.mu.Unlock()

	press(t, m, "n")
	assert.Equal(t, 1, currentPage(t, m), "the previous table stays on display")
	require.True(t, m.dialogOpen())

	press(t, m, "l", "enter")
	assert.False(t, m.dialogOpen())
	assert.Error(t, m.table.Failure())
	assert.Contains(t, m.View(), "Last request failed")

	press(t, m, "r")
	assert.Equal(t, 2, currentPage(t, m), "retry re-issues the failed page")
	assert.NoError(t, m.table.Failure())
}

func TestModelChartHover(t *testing.T) {
	m := newModel(storeFetcher(t, 12))
	drain(t, m, m.Init())

	press(t, m, "tab", "right")
	assert.Equal(t, 0, m.column)
	assert.True(t, m.tooltip.Visible())
	view := m.View()
	assert.Contains(t, view, "dev-00")
	assert.Contains(t, view, "12 Overall commits")
	assert.Contains(t, view, "▲")

	press(t, m, "L")
	assert.Equal(t, 8, m.column)
	assert.Contains(t, m.tooltip.Content(), "dev-01")

	press(t, m, "esc")
	assert.Equal(t, -1, m.column)
	assert.False(t, m.tooltip.Visible())
}

func TestModelStaleDetailDropped(t *testing.T) {
	m := newModel(storeFetcher(t, 12))
	drain(t, m, m.Init())
	m.focus = focusChart

	older := m.moveColumn(1)
	newer := m.moveColumn(8)
	assert.Equal(t, schema.LoadingPlaceholder, m.tooltip.Content())

	m.Update(newer())
	m.Update(older())

	assert.Contains(t, m.tooltip.Content(), "dev-01")
	assert.NotContains(t, m.tooltip.Content(), "dev-00")
}

// countingFetcher counts fetches whose URL has prefix.
type countingFetcher struct {
	contract.Fetcher
	prefix string

	mu sync.Mutex
	n  int
}

func (f *countingFetcher) Fetch(ctx context.Context, url string, out any) error {
	if strings.HasPrefix(url, f.prefix) {
		f.mu.Lock()
		f.n++
		f.mu.Unlock()
	}
	return f.Fetcher.Fetch(ctx, url, out)
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

func TestModelHoverSameBarNoRefetch(t *testing.T) {
	fetcher := &countingFetcher{Fetcher: storeFetcher(t, 12), prefix: feed.AuthorPrefix}
	m := newModel(fetcher)
	drain(t, m, m.Init())
	m.focus = focusChart

	drain(t, m, m.moveColumn(1))
	assert.Equal(t, 1, fetcher.count())
	assert.Contains(t, m.tooltip.Content(), "dev-00")

	// 78 columns over 12 bars: columns 0 to 5 all fall on the first bar
	for range 4 {
		assert.Nil(t, m.moveColumn(1))
	}
	assert.Equal(t, 4, m.column)
	assert.Equal(t, 1, fetcher.count())
	assert.Contains(t, m.tooltip.Content(), "dev-00")

	drain(t, m, m.moveColumn(4))
	assert.Equal(t, 2, fetcher.count())
	assert.Contains(t, m.tooltip.Content(), "dev-01")

	press(t, m, "esc")
	drain(t, m, m.moveColumn(1))
	assert.Equal(t, 3, fetcher.count(), "re-entering after leaving fetches again")
}

func TestModelDetailOfReplacedChartDropped(t *testing.T) {
	m := newModel(storeFetcher(t, 12))
	drain(t, m, m.Init())
	m.focus = focusChart

	pending := m.moveColumn(1)
	require.NotNil(t, pending)
	drain(t, m, m.loadImpact())

	m.Update(pending())
	assert.False(t, m.tooltip.Visible())
	assert.NotContains(t, m.tooltip.Content(), "Overall commits")
}

func TestModelDetailFailure(t *testing.T) {
	fetcher := &flakyFetcher{Fetcher: storeFetcher(t, 3), prefix: feed.AuthorPrefix, failures: 1}
	m := newModel(fetcher)
	drain(t, m, m.Init())

	press(t, m, "tab", "right")
	assert.Equal(t, schema.DetailFailureNotice, m.tooltip.Content())
}

func TestModelChartFailure(t *testing.T) {
	fetcher := &flakyFetcher{Fetcher: storeFetcher(t, 3), prefix: feed.ImpactPrefix, failures: 1}
	m := newModel(fetcher)
	drain(t, m, m.Init())

	assert.Contains(t, m.View(), "Could not load the impact chart")
	press(t, m, "tab", "right")
	assert.Equal(t, -1, m.column, "no chart, no cursor")
}

func TestModelEmptyDataset(t *testing.T) {
	m := newModel(storeFetcher(t, 0))
	drain(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, "Revisions")
	assert.Contains(t, view, "« ‹ [1] › »")
	assert.Contains(t, view, "Page 1 of 1")
	assert.NotContains(t, view, "█")

	press(t, m, "n", "G")
	assert.Equal(t, 1, currentPage(t, m))
}

// quits reports whether running cmd yields a quit message.
func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if quits(c) {
				return true
			}
		}
	}
	return false
}

func TestModelQuit(t *testing.T) {
	m := newModel(storeFetcher(t, 1))

	_, cmd := m.Update(keyMsg("q"))
	assert.False(t, quits(cmd), "q asks first")
	require.True(t, m.dialogOpen())
	assert.Contains(t, m.View(), "Quit impact?")

	_, cmd = m.Update(keyMsg("enter"))
	assert.False(t, quits(cmd), "Cancel is focused by default")
	assert.False(t, m.dialogOpen())

	m.Update(keyMsg("q"))
	m.Update(keyMsg("right"))
	_, cmd = m.Update(keyMsg("enter"))
	assert.True(t, quits(cmd))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, quits(cmd), "ctrl+c quits without asking")
}

func TestModelWindowSize(t *testing.T) {
	m := newModel(storeFetcher(t, 12))
	drain(t, m, m.Init())

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.Equal(t, 38, m.chartColumns())
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.HasPrefix(line, "└") {
			assert.Equal(t, 39, len([]rune(line)))
		}
	}
}
