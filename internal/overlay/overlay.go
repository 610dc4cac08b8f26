// Package overlay has the floating panels drawn over the contributor views:
// a tooltip for chart details and a modal dialog with actions.
package overlay

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Overlay is a panel that can be shown, hidden and filled with text.
type Overlay interface {
	Show()
	Close()
	SetContent(content string)
	Visible() bool
	Content() string
	Render() string // Empty while hidden
}

// Palette shared by all overlays.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorBorder  = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorOnFill  = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
)

// panel holds the state every overlay has. Tooltips are written from
// lookup goroutines, so access is guarded.
type panel struct {
	mu      sync.RWMutex
	visible bool
	content string
}

// Show makes the overlay visible.
func (p *panel) Show() {
	p.mu.Lock()
	p.visible = true
	p.mu.Unlock()
}

// Close hides the overlay. Content is kept.
func (p *panel) Close() {
	p.mu.Lock()
	p.visible = false
	p.mu.Unlock()
}

// SetContent replaces the text of the overlay.
func (p *panel) SetContent(content string) {
	p.mu.Lock()
	p.content = content
	p.mu.Unlock()
}

// Visible reports whether the overlay is shown.
func (p *panel) Visible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.visible
}

// Content returns the current text.
func (p *panel) Content() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.content
}

// snapshot reads visibility and content together.
func (p *panel) snapshot() (bool, string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.visible, p.content
}
