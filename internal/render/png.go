package render

import (
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"github.com/huangsam/impact/core/chart"
	"golang.org/x/image/font/basicfont"
)

// PNG rasterizes d and writes it as a PNG image.
func PNG(w io.Writer, d chart.Drawing) error {
	width := max(1, int(math.Ceil(d.Width)))
	height := max(1, int(math.Ceil(d.Height)))

	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawStringAnchored(d.Title, d.Width/2, d.Margin.Top/2, 0.5, 0.5)
	if d.Filter != "" {
		dc.DrawStringAnchored(d.Filter, 4, d.Margin.Top/2, 0, 0.5)
	}

	dc.Push()
	dc.Translate(d.Margin.Left, d.Margin.Top)

	dc.DrawRectangle(d.Clip.X, d.Clip.Y, d.Clip.Width, d.Clip.Height)
	dc.Clip()

	dc.SetColor(colorBar)
	for _, b := range d.Bars {
		dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		dc.Fill()
	}

	if len(d.Curve.Segments) > 0 {
		tracePath(dc, d.Curve.Segments)
		dc.SetColor(colorCurve)
		dc.SetLineWidth(2)
		dc.Stroke()
	}
	dc.ResetClip()

	dc.SetColor(colorAxis)
	dc.SetLineWidth(1)
	dc.DrawLine(0, 0, 0, d.InnerHeight)
	dc.Stroke()
	for _, t := range d.YTicks {
		dc.SetColor(colorAxis)
		dc.DrawLine(-4, t.Y, 0, t.Y)
		dc.Stroke()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(t.Label, -6, t.Y, 1, 0.5)
	}
	dc.Pop()

	return dc.EncodePNG(w)
}

// tracePath replays path segments on the context.
func tracePath(dc *gg.Context, segments []chart.Segment) {
	for _, s := range segments {
		switch s.Kind {
		case chart.MoveTo:
			dc.MoveTo(s.Args[0], s.Args[1])
		case chart.LineTo:
			dc.LineTo(s.Args[0], s.Args[1])
		case chart.CubicTo:
			dc.CubicTo(s.Args[0], s.Args[1], s.Args[2], s.Args[3], s.Args[4], s.Args[5])
		case chart.Close:
			dc.ClosePath()
		}
	}
}
