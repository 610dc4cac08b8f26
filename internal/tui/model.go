// Package tui is an interactive terminal browser for the contributor table
// and the impact chart of one repository.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/huangsam/impact/core/chart"
	"github.com/huangsam/impact/core/paging"
	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/feed"
	"github.com/huangsam/impact/internal/overlay"
	"github.com/huangsam/impact/internal/render"
	"github.com/huangsam/impact/schema"
)

// focus is the pane receiving navigation keys.
type focus int

const (
	focusTable focus = iota
	focusChart
)

const (
	defaultWidth = 80
	chartRows    = 6
	dialogWidth  = 48
)

// Options configures the browser.
type Options struct {
	Repo        string
	Branch      string
	LookAround  int
	Timeout     time.Duration // Upper bound of each fetch, 0 uses the default
	ChartWidth  int
	ChartHeight int
}

type tableLoadedMsg struct {
	req  feed.TableRequest
	page schema.ContributorsPage
	err  error
}

type impactLoadedMsg struct {
	data schema.ImpactData
	err  error
}

type detailLoadedMsg struct {
	probe  *chart.Probe
	req    chart.ProbeRequest
	detail schema.AuthorDetail
	err    error
}

// Model is the bubbletea model of the browser. Fetches run as commands and
// their results come back as messages; stale results are dropped by the
// table loader and the chart probe.
type Model struct {
	ctx     context.Context
	opts    Options
	fetcher contract.Fetcher
	styles  Styles

	table   *feed.TableLoader
	loading bool

	chart    *chart.ChartHandle
	chartErr error
	probe    *chart.Probe
	tooltip  *overlay.Tooltip
	dialog   *overlay.Dialog
	retry    *overlay.Dialog // The dialog reporting a failed table fetch, if any

	focus   focus
	row     int
	control int
	column  int // Chart cursor column, -1 when the pointer is outside
	hovered int // Position of the bar under the cursor, -1 when none

	width  int
	height int

	// pending holds commands queued by dialog handlers
	pending []tea.Cmd
}

// New returns a browser reading through fetcher.
func New(ctx context.Context, fetcher contract.Fetcher, opts Options) *Model {
	if opts.Timeout <= 0 {
		opts.Timeout = contract.DefaultRequestTimeout
	}
	tooltip := overlay.NewTooltip()
	return &Model{
		ctx:     ctx,
		opts:    opts,
		fetcher: fetcher,
		styles:  DefaultStyles(),
		table:   feed.NewTableLoader(fetcher, opts.Repo, opts.Branch, opts.LookAround),
		probe:   chart.NewProbe(feed.NewDetailLoader(fetcher), tooltip, opts.Branch),
		tooltip: tooltip,
		column:  -1,
		hovered: -1,
		width:   defaultWidth,
	}
}

// Init loads the first table page and the chart.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadTable(m.table.Begin(0)), m.loadImpact())
}

// Update handles fetch results and keys.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.column >= m.chartColumns() {
			m.column = m.chartColumns() - 1
		}
		return m, nil

	case tableLoadedMsg:
		return m, m.applyTable(msg)

	case impactLoadedMsg:
		if msg.err != nil {
			m.chartErr = msg.err
			return m, nil
		}
		m.chartErr = nil
		m.leaveChart()
		m.chart = chart.RenderChart(msg.data, chart.ChartConfig{
			Branch: m.opts.Branch,
			Width:  float64(m.opts.ChartWidth),
			Height: float64(m.opts.ChartHeight),
		})
		m.probe = m.chart.AttachProbe(feed.NewDetailLoader(m.fetcher), m.tooltip)
		return m, nil

	case detailLoadedMsg:
		// Lookups of a replaced chart are dropped with it
		if msg.probe == m.probe {
			_ = m.probe.Apply(msg.req, msg.detail, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if len(m.pending) > 0 {
			cmd = tea.Batch(append(m.pending, cmd)...)
			m.pending = nil
		}
		return m, cmd
	}
	return m, nil
}

// loadTable runs req in the background.
func (m *Model) loadTable(req feed.TableRequest) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, m.opts.Timeout)
		defer cancel()
		page, err := m.table.Fetch(ctx, req)
		return tableLoadedMsg{req: req, page: page, err: err}
	}
}

// loadImpact fetches the chart response in the background.
func (m *Model) loadImpact() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, m.opts.Timeout)
		defer cancel()
		data, err := feed.LoadImpact(ctx, m.fetcher, m.opts.Repo, m.opts.Branch)
		return impactLoadedMsg{data: data, err: err}
	}
}

// loadDetail fetches the author behind req in the background.
func (m *Model) loadDetail(req chart.ProbeRequest) tea.Cmd {
	probe := m.probe
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, m.opts.Timeout)
		defer cancel()
		detail, err := probe.Load(ctx, req)
		return detailLoadedMsg{probe: probe, req: req, detail: detail, err: err}
	}
}

// applyTable records a table response unless a newer click superseded it.
func (m *Model) applyTable(msg tableLoadedMsg) tea.Cmd {
	err := m.table.Apply(msg.req, msg.page, msg.err)
	if errors.Is(err, contract.ErrStale) {
		return nil
	}
	m.loading = false
	if err != nil {
		m.showFailure(err)
		return nil
	}

	if m.retry != nil {
		m.retry.Close()
		m.retry = nil
	}
	m.row = min(m.row, max(0, len(msg.page.Authors)-1))
	for i, c := range m.table.Controls() {
		if c.IsCurrent {
			m.control = i
		}
	}
	return nil
}

// showFailure opens the retry dialog for a failed table fetch.
func (m *Model) showFailure(err error) {
	text := fmt.Sprintf("Could not load contributors: %v", err)
	if m.retry != nil && m.retry.Waiting() {
		m.retry.SetContent(text)
		m.retry.SetWaiting(false)
		return
	}
	m.dialog = overlay.NewDialog(overlay.DialogAttrs{
		Text:  text,
		Width: dialogWidth,
		Actions: []overlay.Action{
			{Text: "Retry", Class: overlay.ClassPrimary, Handler: func(d *overlay.Dialog) {
				d.SetWaiting(true)
				m.pending = append(m.pending, m.loadTable(m.table.BeginRetry()))
			}},
			{Text: overlay.DismissText, Class: overlay.ClassDefault, Handler: func(d *overlay.Dialog) {
				d.Close()
			}},
		},
	})
	m.retry = m.dialog
	m.dialog.Show()
}

// confirmQuit asks before leaving the browser. Ok queues the quit command.
func (m *Model) confirmQuit() {
	m.dialog = overlay.Confirm("Quit impact?", func() {
		m.pending = append(m.pending, tea.Quit)
	})
}

// dialogOpen reports whether the modal dialog takes the keys.
func (m *Model) dialogOpen() bool {
	return m.dialog != nil && m.dialog.Visible()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}

	if m.dialogOpen() {
		switch key {
		case "left", "h", "shift+tab":
			m.dialog.Move(-1)
		case "right", "l", "tab":
			m.dialog.Move(1)
		case "enter", " ":
			m.dialog.TriggerSelected()
		case "esc", "q":
			m.dialog.Close()
		}
		return nil
	}

	switch key {
	case "q":
		m.confirmQuit()
		return nil
	case "tab":
		if m.focus == focusTable {
			m.focus = focusChart
		} else {
			m.focus = focusTable
			m.leaveChart()
		}
		return nil
	case "r":
		if m.table.Failure() != nil {
			return m.loadTable(m.table.BeginRetry())
		}
		return nil
	}

	if m.focus == focusChart {
		return m.handleChartKey(key)
	}
	return m.handleTableKey(key)
}

func (m *Model) handleTableKey(key string) tea.Cmd {
	page, _ := m.table.Current()
	controls := m.table.Controls()

	switch key {
	case "j", "down":
		if m.row < len(page.Authors)-1 {
			m.row++
		}
	case "k", "up":
		if m.row > 0 {
			m.row--
		}
	case "n", "right":
		return m.follow(schema.NextControl)
	case "p", "left":
		return m.follow(schema.PreviousControl)
	case "g", "home":
		return m.follow(schema.FirstControl)
	case "G", "end":
		return m.follow(schema.LastControl)
	case "[":
		if m.control > 0 {
			m.control--
		}
	case "]":
		if m.control < len(controls)-1 {
			m.control++
		}
	case "enter":
		if m.control >= 0 && m.control < len(controls) {
			return m.click(controls[m.control])
		}
	}
	return nil
}

// follow clicks the control of the given kind.
func (m *Model) follow(kind schema.ControlKind) tea.Cmd {
	for _, c := range m.table.Controls() {
		if c.Kind == kind {
			return m.click(c)
		}
	}
	return nil
}

// click loads the page a control points at. Disabled and current controls do nothing.
func (m *Model) click(c schema.PageControl) tea.Cmd {
	target, ok := paging.Target(c)
	if !ok {
		return nil
	}
	m.row = 0
	return m.loadTable(m.table.Begin(target))
}

func (m *Model) handleChartKey(key string) tea.Cmd {
	switch key {
	case "h", "left":
		return m.moveColumn(-1)
	case "l", "right":
		return m.moveColumn(1)
	case "H":
		return m.moveColumn(-8)
	case "L":
		return m.moveColumn(8)
	case "esc":
		m.leaveChart()
	}
	return nil
}

// chartColumns is the width of the chart strip.
func (m *Model) chartColumns() int {
	return max(10, m.width-2)
}

// moveColumn moves the chart cursor and probes the bar under it.
func (m *Model) moveColumn(delta int) tea.Cmd {
	if m.chart == nil {
		return nil
	}
	if m.column < 0 {
		m.column = 0
	} else {
		m.column = min(m.chartColumns()-1, max(0, m.column+delta))
	}
	return m.hover()
}

// hover resolves the cursor column to a chart point. A detail lookup starts
// only when the cursor enters a different bar.
func (m *Model) hover() tea.Cmd {
	x := render.ColumnX(m.chart.Drawing(), m.chartColumns(), m.column)
	hp, ok := m.chart.Engine().Hover(x)
	if !ok {
		m.hovered = -1
		m.probe.Leave()
		return nil
	}
	// The strip is drawn after a one-column axis
	m.tooltip.SetAnchor(m.column + 1)
	if hp.ResolvedPosition == m.hovered {
		return nil
	}
	m.hovered = hp.ResolvedPosition
	return m.loadDetail(m.probe.Begin(hp.ResolvedPoint))
}

// leaveChart ends the hover session.
func (m *Model) leaveChart() {
	m.column = -1
	m.hovered = -1
	if m.chart != nil {
		m.chart.Leave()
	}
	m.probe.Leave()
}
