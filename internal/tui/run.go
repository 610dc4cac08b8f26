package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/huangsam/impact/internal/contract"
)

// Run starts the browser in the alternate screen and blocks until the user quits or ctx is done.
func Run(ctx context.Context, fetcher contract.Fetcher, opts Options) error {
	p := tea.NewProgram(New(ctx, fetcher, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
