package tui

import (
	"fmt"
	"strings"

	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/render"
	"github.com/huangsam/impact/schema"
)

const (
	rankWidth  = 4
	countWidth = 9
)

// View draws the table, its controls, the chart strip and any open overlay.
func (m *Model) View() string {
	var b strings.Builder

	title := "impact · " + m.opts.Repo
	if m.opts.Branch != "" {
		title += "@" + m.opts.Branch
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.viewTable())
	b.WriteString("\n")
	b.WriteString(m.viewChart())

	if dialog := m.dialogView(); dialog != "" {
		b.WriteString("\n")
		b.WriteString(dialog)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.helpLine()))
	return b.String()
}

func (m *Model) dialogView() string {
	if m.dialog == nil {
		return ""
	}
	return m.dialog.Render()
}

// nameWidth is the width of the name column.
func (m *Model) nameWidth() int {
	return min(60, max(12, m.width-rankWidth-countWidth-4))
}

func (m *Model) viewTable() string {
	var b strings.Builder
	page, ok := m.table.Current()
	if !ok {
		if m.loading {
			b.WriteString(m.styles.Status.Render(schema.LoadingPlaceholder))
		} else if err := m.table.Failure(); err != nil {
			b.WriteString(m.styles.Failure.Render("Could not load contributors. Press r to retry."))
		}
		b.WriteString("\n")
		return b.String()
	}

	width := m.nameWidth()
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("%*s  %-*s  %*s", rankWidth, "#", width, "Name", countWidth, "Revisions")))
	b.WriteString("\n")
	for i, a := range page.Authors {
		line := fmt.Sprintf("%*d  %-*s  %*d", rankWidth, page.Rank(i), width, contract.TruncateName(a.Name, width), countWidth, a.Count)
		if m.focus == focusTable && i == m.row {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(m.styles.Row.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.viewControls())
	b.WriteString("\n")

	status := fmt.Sprintf("Page %d of %d", page.Page, page.Pages)
	if m.loading {
		status += " · " + schema.LoadingPlaceholder
	}
	b.WriteString(m.styles.Status.Render(status))
	if m.table.Failure() != nil && !m.dialogOpen() {
		b.WriteString("  ")
		b.WriteString(m.styles.Failure.Render("Last request failed. Press r to retry."))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewControls() string {
	controls := m.table.Controls()
	parts := make([]string, 0, len(controls))
	for i, c := range controls {
		label := c.Label
		style := m.styles.Control
		switch {
		case c.IsCurrent:
			label = "[" + label + "]"
			style = m.styles.Current
		case c.Disabled:
			style = m.styles.Disabled
		}
		if m.focus == focusTable && i == m.control && !c.Disabled {
			style = m.styles.Focused
		}
		parts = append(parts, style.Render(label))
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewChart() string {
	var b strings.Builder
	switch {
	case m.chartErr != nil:
		b.WriteString(m.styles.Failure.Render("Could not load the impact chart: " + m.chartErr.Error()))
		b.WriteString("\n")
		return b.String()
	case m.chart == nil:
		b.WriteString(m.styles.Status.Render(schema.LoadingPlaceholder))
		b.WriteString("\n")
		return b.String()
	}

	drawing := m.chart.Drawing()
	b.WriteString(m.styles.Header.Render(drawing.Title))
	b.WriteString("\n")
	for _, line := range render.Terminal(drawing, m.chartColumns(), chartRows) {
		b.WriteString("│")
		b.WriteString(m.styles.Bars.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("└" + strings.Repeat("─", m.chartColumns()))
	b.WriteString("\n")

	if m.focus == focusChart && m.column >= 0 {
		b.WriteString(strings.Repeat(" ", m.column+1))
		b.WriteString(m.styles.Cursor.Render("▲"))
		b.WriteString("\n")
	}
	if tip := m.tooltip.Render(); tip != "" {
		b.WriteString(tip)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) helpLine() string {
	switch {
	case m.dialogOpen():
		return "←/→ choose · enter confirm · esc close"
	case m.focus == focusChart:
		return "←/→ move · H/L jump · esc leave · tab table · q quit"
	default:
		return "↑/↓ rows · ←/→ pages · g/G first/last · [/] controls · enter open · tab chart · q quit"
	}
}
