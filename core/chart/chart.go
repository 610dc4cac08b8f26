// Package chart lays out the contributor impact chart: linear scales, one bar
// per author, a basis curve through the counts and pointer hover resolution.
// Rendering to pixels is left to internal/render.
package chart

import (
	"context"
	"math"

	"github.com/huangsam/impact/schema"
	"gonum.org/v1/gonum/floats"
)

// DefaultMargin is the space reserved around the plotting area for axis labels.
var DefaultMargin = Margin{Top: 30, Right: 20, Bottom: 20, Left: 40}

// ChartConfig holds the options recognized by RenderChart.
type ChartConfig struct {
	Branch   string // Qualifies author detail lookups
	NoFilter *bool  // Disables the external filter control; nil means true
	Title    string
	Width    float64
	Height   float64
	Margin   *Margin
}

// FilterDisabled reports the effective NoFilter setting.
func (c ChartConfig) FilterDisabled() bool {
	return c.NoFilter == nil || *c.NoFilter
}

// FilterLabel is the caption of the branch filter control.
func FilterLabel(branch string) string {
	if branch == "" {
		return "branch: default"
	}
	return "branch: " + branch
}

// withDefaults fills every unset option.
func (c ChartConfig) withDefaults() ChartConfig {
	if c.Title == "" {
		c.Title = schema.DefaultChartTitle
	}
	if c.Width <= 0 {
		c.Width = schema.DefaultChartWidth
	}
	if c.Height <= 0 {
		c.Height = schema.DefaultChartHeight
	}
	if c.Margin == nil {
		m := DefaultMargin
		c.Margin = &m
	}
	if c.NoFilter == nil {
		t := true
		c.NoFilter = &t
	}
	return c
}

// ChartHandle is a rendered chart ready for hover interaction.
type ChartHandle struct {
	config  ChartConfig
	engine  *Engine
	drawing Drawing
	probe   *Probe
}

// Points converts a chart response into chart points, keeping response order.
func Points(data schema.ImpactData) []schema.ChartPoint {
	points := make([]schema.ChartPoint, 0, len(data.Data))
	for i, d := range data.Data {
		points = append(points, schema.ChartPoint{Position: i, Value: d.Count, DetailHref: d.Href})
	}
	return points
}

// maxValue returns the largest count of points, or 0 when there are none.
func maxValue(points []schema.ChartPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Value)
	}
	return math.Max(0, floats.Max(values))
}

// RenderChart builds scales from a chart response and lays out the chart.
// An empty response renders an empty chart.
func RenderChart(data schema.ImpactData, config ChartConfig) *ChartHandle {
	config = config.withDefaults()
	m := *config.Margin

	engine := NewEngine(config.Width-m.Left-m.Right, config.Height-m.Top-m.Bottom)
	points := Points(data)
	authorCount := max(data.AuthorCount, len(points))
	engine.BuildScales(authorCount, maxValue(points))

	// Scales are built above, so Render cannot fail
	drawing, _ := engine.Render(points)
	drawing.Title = config.Title
	if !config.FilterDisabled() {
		drawing.Filter = FilterLabel(config.Branch)
	}
	drawing.Width = config.Width
	drawing.Height = config.Height
	drawing.Margin = m

	return &ChartHandle{config: config, engine: engine, drawing: drawing}
}

// Config returns the effective configuration.
func (h *ChartHandle) Config() ChartConfig { return h.config }

// Drawing returns the chart layout.
func (h *ChartHandle) Drawing() Drawing { return h.drawing }

// Engine returns the underlying engine.
func (h *ChartHandle) Engine() *Engine { return h.engine }

// AttachProbe wires detail lookups into tooltip. Lookups are qualified with the configured branch.
func (h *ChartHandle) AttachProbe(source DetailSource, tooltip Tooltip) *Probe {
	h.probe = NewProbe(source, tooltip, h.config.Branch)
	return h.probe
}

// Hover resolves pointerX, relative to the plotting area, and starts a detail
// lookup when a probe is attached. The channel is nil when nothing was started.
func (h *ChartHandle) Hover(ctx context.Context, pointerX float64) (HoverProbe, <-chan struct{}, bool) {
	probe, ok := h.engine.Hover(pointerX)
	if !ok {
		if h.probe != nil {
			h.probe.Leave()
		}
		return HoverProbe{}, nil, false
	}
	if h.probe == nil {
		return probe, nil, true
	}
	return probe, h.probe.Enter(ctx, probe.ResolvedPoint), true
}

// Leave ends the hover session and closes the tooltip.
func (h *ChartHandle) Leave() {
	h.engine.Leave()
	if h.probe != nil {
		h.probe.Leave()
	}
}
