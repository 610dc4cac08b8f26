package render

import (
	"math"
	"strings"

	"github.com/huangsam/impact/core/chart"
)

// blocks holds the partial cell glyphs from one eighth to a full cell.
var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// ColumnX returns the plotting-area x coordinate sampled by terminal column
// col when the area is drawn cols wide.
func ColumnX(d chart.Drawing, cols, col int) float64 {
	if cols <= 0 {
		return math.NaN()
	}
	return (float64(col) + 0.5) * d.InnerWidth / float64(cols)
}

// barAt returns the bar covering x, or false in a gap or outside the area.
func barAt(d chart.Drawing, x float64) (chart.Bar, bool) {
	for _, b := range d.Bars {
		if x >= b.X && x < b.X+b.Width {
			return b, true
		}
	}
	return chart.Bar{}, false
}

// Terminal draws the bars of d as rows of block glyphs, cols wide and rows
// tall. Each column shows the bar under its sampling point.
func Terminal(d chart.Drawing, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	// Height of each column in eighths of a cell
	levels := make([]int, cols)
	if d.InnerHeight > 0 {
		for c := range levels {
			b, ok := barAt(d, ColumnX(d, cols, c))
			if !ok {
				continue
			}
			frac := b.Height / d.InnerHeight
			levels[c] = int(math.Round(math.Max(0, math.Min(1, frac)) * float64(rows*8)))
		}
	}

	lines := make([]string, rows)
	var sb strings.Builder
	for r := range rows {
		sb.Reset()
		base := (rows - 1 - r) * 8 // eighths below this row
		for _, level := range levels {
			fill := min(8, max(0, level-base))
			sb.WriteRune(blocks[fill])
		}
		lines[r] = sb.String()
	}
	return lines
}
