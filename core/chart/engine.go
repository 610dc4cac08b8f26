package chart

import (
	"errors"
	"math"
	"strconv"

	"github.com/huangsam/impact/schema"
)

// State is the lifecycle stage of an Engine.
type State int

// Engine states, in the order a chart normally passes through them.
const (
	Empty State = iota
	ScalesBuilt
	Rendered
	HoverActive
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case ScalesBuilt:
		return "scales-built"
	case Rendered:
		return "rendered"
	case HoverActive:
		return "hover-active"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// yTickCount is the number of y axis ticks requested from the scale.
const yTickCount = 5

// ErrNoScales is returned by Render before BuildScales has run.
var ErrNoScales = errors.New("chart scales have not been built")

// HoverProbe is the result of resolving a pointer position.
type HoverProbe struct {
	PointerX         float64
	ResolvedPosition int
	ResolvedPoint    schema.ChartPoint
}

// Engine turns chart points into a Drawing and resolves hover positions.
// It is not safe for concurrent use.
type Engine struct {
	state       State
	innerWidth  float64
	innerHeight float64
	scales      ScalePair
	points      []schema.ChartPoint
	drawing     Drawing
	probe       *HoverProbe
}

// NewEngine returns an engine for a plotting area of the given size.
func NewEngine(innerWidth, innerHeight float64) *Engine {
	return &Engine{
		innerWidth:  math.Max(0, innerWidth),
		innerHeight: math.Max(0, innerHeight),
	}
}

// State returns the current lifecycle stage.
func (e *Engine) State() State { return e.state }

// Scales returns the scales built by BuildScales.
func (e *Engine) Scales() ScalePair { return e.scales }

// Probe returns the active hover probe, if any.
func (e *Engine) Probe() (HoverProbe, bool) {
	if e.probe == nil {
		return HoverProbe{}, false
	}
	return *e.probe, true
}

// BuildScales sets the x domain to [0, authorCount] and the y domain to [0, maxValue].
// Any previous drawing is discarded.
func (e *Engine) BuildScales(authorCount int, maxValue float64) ScalePair {
	e.scales = BuildScales(e.innerWidth, e.innerHeight, max(0, authorCount), math.Max(0, maxValue))
	e.points = nil
	e.drawing = Drawing{}
	e.probe = nil
	e.state = ScalesBuilt
	return e.scales
}

// Render lays out one bar per point and a basis curve through all of them.
// Points keep their response order. Zero points yield an empty drawing.
func (e *Engine) Render(points []schema.ChartPoint) (Drawing, error) {
	if e.state == Empty {
		return Drawing{}, ErrNoScales
	}

	d := Drawing{
		InnerWidth:  e.innerWidth,
		InnerHeight: e.innerHeight,
		Clip:        Rect{Width: e.innerWidth, Height: e.innerHeight},
		Bars:        make([]Bar, 0, len(points)),
	}

	if n := len(points); n > 0 {
		barWidth := e.innerWidth / float64(n)
		half := barWidth / 2
		curve := make([]Point, 0, n)
		for _, p := range points {
			x := e.scales.X.Apply(float64(p.Position))
			y := e.scales.Y.Apply(float64(p.Value))
			d.Bars = append(d.Bars, Bar{
				Rect:  Rect{X: x, Y: y, Width: barWidth, Height: e.innerHeight - y},
				Point: p,
			})
			// Nudge the curve half a bar left, never past the left edge
			curve = append(curve, Point{X: math.Max(0, math.Min(x, x-half)), Y: y})
		}
		d.Curve.Points = curve
		d.Curve.Segments = BasisSegments(curve)
		d.Curve.Path = PathData(d.Curve.Segments)
	}

	for _, v := range e.scales.Y.Ticks(yTickCount) {
		d.YTicks = append(d.YTicks, Tick{
			Value: v,
			Y:     e.scales.Y.Apply(v),
			Label: strconv.FormatFloat(v, 'f', -1, 64),
		})
	}

	e.points = points
	e.drawing = d
	e.probe = nil
	e.state = Rendered
	return d, nil
}

// Drawing returns the last rendered drawing.
func (e *Engine) Drawing() Drawing { return e.drawing }

// ResolveHover maps a pointer x coordinate to the point under it.
// Positions outside the plot area or the rendered points report false.
func (e *Engine) ResolveHover(pointerX float64) (schema.ChartPoint, bool) {
	if e.state < Rendered || math.IsNaN(pointerX) || math.IsInf(pointerX, 0) {
		return schema.ChartPoint{}, false
	}
	if e.innerWidth <= 0 || pointerX < 0 || pointerX >= e.innerWidth {
		return schema.ChartPoint{}, false
	}
	v := math.Floor(e.scales.X.Invert(pointerX))
	if math.IsNaN(v) || v < 0 || v >= float64(len(e.points)) {
		return schema.ChartPoint{}, false
	}
	return e.points[int(v)], true
}

// Hover enters HoverActive when the pointer resolves to a point and falls back
// to Rendered otherwise. A miss is not an error.
func (e *Engine) Hover(pointerX float64) (HoverProbe, bool) {
	if e.state < Rendered {
		return HoverProbe{}, false
	}
	p, ok := e.ResolveHover(pointerX)
	if !ok {
		e.probe = nil
		e.state = Rendered
		return HoverProbe{}, false
	}
	e.probe = &HoverProbe{PointerX: pointerX, ResolvedPosition: p.Position, ResolvedPoint: p}
	e.state = HoverActive
	return *e.probe, true
}

// Leave ends the hover session.
func (e *Engine) Leave() {
	if e.state == HoverActive {
		e.state = Rendered
	}
	e.probe = nil
}
