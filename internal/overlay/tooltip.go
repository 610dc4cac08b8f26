package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/impact/schema"
)

// Tooltip is a small bordered panel anchored at a terminal column.
// It starts hidden with the loading placeholder as content.
type Tooltip struct {
	panel
	anchor int
}

var _ Overlay = (*Tooltip)(nil)

// NewTooltip returns a hidden tooltip.
func NewTooltip() *Tooltip {
	t := &Tooltip{}
	t.content = schema.LoadingPlaceholder
	return t
}

// SetAnchor moves the tooltip to column col. Negative columns are clamped to 0.
func (t *Tooltip) SetAnchor(col int) {
	t.mu.Lock()
	t.anchor = max(0, col)
	t.mu.Unlock()
}

// Anchor returns the column the tooltip is drawn at.
func (t *Tooltip) Anchor() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.anchor
}

// Render draws the tooltip, or returns "" while hidden.
func (t *Tooltip) Render() string {
	visible, content := t.snapshot()
	if !visible {
		return ""
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Foreground(ColorText).
		Padding(0, 1).
		MarginLeft(t.Anchor())
	return style.Render(content)
}
