package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/impact/internal/overlay"
)

// Styles holds the lipgloss styles of the browser.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Current  lipgloss.Style
	Control  lipgloss.Style
	Focused  lipgloss.Style
	Disabled lipgloss.Style
	Status   lipgloss.Style
	Failure  lipgloss.Style
	Bars     lipgloss.Style
	Cursor   lipgloss.Style
	Help     lipgloss.Style
}

// colorFailure marks error text.
var colorFailure = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#FF5555"}

// DefaultStyles builds the styles from the overlay palette so tooltips and
// dialogs match the views below them.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(overlay.ColorPrimary),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(overlay.ColorText).Underline(true),
		Row:      lipgloss.NewStyle().Foreground(overlay.ColorText),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(overlay.ColorOnFill).Background(overlay.ColorPrimary),
		Current:  lipgloss.NewStyle().Bold(true).Foreground(overlay.ColorPrimary),
		Control:  lipgloss.NewStyle().Foreground(overlay.ColorText),
		Focused:  lipgloss.NewStyle().Underline(true).Foreground(overlay.ColorPrimary),
		Disabled: lipgloss.NewStyle().Foreground(overlay.ColorMuted),
		Status:   lipgloss.NewStyle().Foreground(overlay.ColorMuted),
		Failure:  lipgloss.NewStyle().Foreground(colorFailure),
		Bars:     lipgloss.NewStyle().Foreground(overlay.ColorPrimary),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(overlay.ColorPrimary),
		Help:     lipgloss.NewStyle().Foreground(overlay.ColorMuted),
	}
}
