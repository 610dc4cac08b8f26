package render

import (
	"bufio"
	"fmt"
	"html"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/huangsam/impact/core/chart"
)

// ClipID is the id of the clip path bounding bars and curve to the plotting area.
const ClipID = "impact-clip"

// SVG writes d as a standalone SVG document.
func SVG(w io.Writer, d chart.Drawing) error {
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	canvas.Start(d.Width, d.Height)
	canvas.Title(d.Title)
	canvas.Rect(0, 0, d.Width, d.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	canvas.Def()
	canvas.ClipPath(fmt.Sprintf(`id="%s"`, ClipID))
	canvas.Rect(d.Clip.X, d.Clip.Y, d.Clip.Width, d.Clip.Height)
	canvas.ClipEnd()
	canvas.DefEnd()

	canvas.Translate(d.Margin.Left, d.Margin.Top)

	canvas.Group(`class="bars"`, fmt.Sprintf(`clip-path="url(#%s)"`, ClipID))
	for _, b := range d.Bars {
		canvas.Rect(b.X, b.Y, b.Width, b.Height,
			`class="bar"`,
			fmt.Sprintf(`data-position="%d"`, b.Point.Position),
			fmt.Sprintf(`data-href="%s"`, html.EscapeString(b.Point.DetailHref)),
			fmt.Sprintf("fill:%s", css(colorBar)))
	}
	canvas.Gend()

	if d.Curve.Path != "" {
		canvas.Path(d.Curve.Path,
			`class="line"`,
			fmt.Sprintf(`clip-path="url(#%s)"`, ClipID),
			fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", css(colorCurve)))
	}

	canvas.Group(`class="y axis"`)
	canvas.Line(0, 0, 0, d.InnerHeight, fmt.Sprintf("stroke:%s;stroke-width:1", css(colorAxis)))
	for _, t := range d.YTicks {
		canvas.Line(-4, t.Y, 0, t.Y, fmt.Sprintf("stroke:%s;stroke-width:1", css(colorAxis)))
		canvas.Text(-6, t.Y, t.Label, `text-anchor="end"`, `dominant-baseline="middle"`,
			fmt.Sprintf("fill:%s;font-size:10px;font-family:sans-serif", css(colorText)))
	}
	canvas.Gend()

	canvas.Gend()

	canvas.Text(d.Width/2, d.Margin.Top/2, d.Title, `class="title"`, `text-anchor="middle"`, `dominant-baseline="middle"`,
		fmt.Sprintf("fill:%s;font-size:14px;font-family:sans-serif;font-weight:bold", css(colorText)))
	if d.Filter != "" {
		canvas.Text(4, d.Margin.Top/2, d.Filter, `class="filter"`, `dominant-baseline="middle"`,
			fmt.Sprintf("fill:%s;font-size:10px;font-family:sans-serif", css(colorText)))
	}
	canvas.End()
	return bw.Flush()
}
