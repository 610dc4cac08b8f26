package outwriter

import (
	"os"

	"github.com/huangsam/impact/internal/contract"
	"golang.org/x/term"
)

// defaultTermWidth is used when the terminal size cannot be detected, as in CI.
const defaultTermWidth = 80

// getTermWidth returns the configured width override or the detected terminal width.
func getTermWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return defaultTermWidth
	}
	return detected
}

// getMaxNameWidth returns how many runes of an author name fit in the table.
func getMaxNameWidth(cfg *contract.Config) int {
	// Rank and revisions columns with borders and padding
	available := getTermWidth(cfg) - 30
	return min(60, max(15, available))
}

// getChartColumns returns how many columns the terminal chart spans.
func getChartColumns(cfg *contract.Config) int {
	// Leave room for the y axis labels
	return min(160, max(10, getTermWidth(cfg)-8))
}
