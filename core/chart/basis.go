package chart

import (
	"math"
	"strconv"
	"strings"
)

// SegmentKind is an SVG path command.
type SegmentKind byte

// Path commands emitted by the basis curve.
const (
	MoveTo  SegmentKind = 'M'
	LineTo  SegmentKind = 'L'
	CubicTo SegmentKind = 'C'
	Close   SegmentKind = 'Z'
)

// Segment is one path command with its absolute coordinates.
type Segment struct {
	Kind SegmentKind
	Args []float64 // 2 for M and L, 6 for C, none for Z
}

// basisBuilder is a uniform cubic B-spline, fed one point at a time.
type basisBuilder struct {
	segments       []Segment
	x0, y0, x1, y1 float64
	point          int
}

func (b *basisBuilder) emit(kind SegmentKind, args ...float64) {
	b.segments = append(b.segments, Segment{Kind: kind, Args: args})
}

func (b *basisBuilder) bezier(x, y float64) {
	b.emit(CubicTo,
		(2*b.x0+b.x1)/3, (2*b.y0+b.y1)/3,
		(b.x0+2*b.x1)/3, (b.y0+2*b.y1)/3,
		(b.x0+4*b.x1+x)/6, (b.y0+4*b.y1+y)/6,
	)
}

func (b *basisBuilder) add(x, y float64) {
	switch b.point {
	case 0:
		b.point = 1
		b.emit(MoveTo, x, y)
	case 1:
		b.point = 2
	case 2:
		b.point = 3
		b.emit(LineTo, (5*b.x0+b.x1)/6, (5*b.y0+b.y1)/6)
		b.bezier(x, y)
	default:
		b.bezier(x, y)
	}
	b.x0, b.x1 = b.x1, x
	b.y0, b.y1 = b.y1, y
}

func (b *basisBuilder) end() {
	switch b.point {
	case 1:
		b.emit(Close)
	case 3:
		b.bezier(b.x1, b.y1)
		b.emit(LineTo, b.x1, b.y1)
	case 2:
		b.emit(LineTo, b.x1, b.y1)
	}
}

// BasisSegments interpolates points with a basis spline. The curve starts and
// ends on the first and last point but only approximates the ones in between.
func BasisSegments(points []Point) []Segment {
	if len(points) == 0 {
		return nil
	}
	b := &basisBuilder{}
	for _, p := range points {
		b.add(p.X, p.Y)
	}
	b.end()
	return b.segments
}

// PathData renders segments as an SVG path "d" attribute.
func PathData(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteByte(byte(seg.Kind))
		for i, v := range seg.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(formatCoord(v))
		}
	}
	return sb.String()
}

// formatCoord rounds to three decimals and drops trailing zeros.
func formatCoord(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // avoid "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
