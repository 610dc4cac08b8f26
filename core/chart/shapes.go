package chart

import "github.com/huangsam/impact/schema"

// Point is a pixel coordinate inside the plotting area.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned rectangle in plotting coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Bar is the rectangle drawn for one author.
type Bar struct {
	Rect
	Point schema.ChartPoint
}

// Curve is the smoothed trend line drawn over the bars.
type Curve struct {
	Points   []Point   // Control points, one per author
	Segments []Segment // Basis interpolation of Points
	Path     string    // Segments as SVG path data
}

// Tick is one labelled value on the y axis.
type Tick struct {
	Value float64
	Y     float64
	Label string
}

// Margin is the space around the plotting area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Drawing describes everything a renderer needs to paint one chart.
// Coordinates of Bars, Curve and Ticks are relative to the plotting area,
// which starts at (Margin.Left, Margin.Top).
type Drawing struct {
	Title       string
	Filter      string // Branch label of the filter control, empty when disabled
	Width       float64
	Height      float64
	Margin      Margin
	InnerWidth  float64
	InnerHeight float64
	Clip        Rect
	Bars        []Bar
	Curve       Curve
	YTicks      []Tick
}
