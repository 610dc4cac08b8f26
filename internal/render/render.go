// Package render paints chart drawings as SVG, PNG or terminal text.
package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/huangsam/impact/core/chart"
	"github.com/huangsam/impact/schema"
)

// Palette shared by the image renderers.
var (
	colorBackdrop = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBar      = color.RGBA{R: 0x9e, G: 0xc5, B: 0xe8, A: 255}
	colorCurve    = color.RGBA{R: 0x1f, G: 0x5f, B: 0xa8, A: 255}
	colorAxis     = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
	colorText     = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 255}
)

// ContentType returns the MIME type of a chart format.
func ContentType(format schema.ChartFormat) string {
	if format == schema.PNGFormat {
		return "image/png"
	}
	return "image/svg+xml"
}

// Write paints d to w in the given format.
func Write(w io.Writer, d chart.Drawing, format schema.ChartFormat) error {
	switch format {
	case schema.SVGFormat, "":
		return SVG(w, d)
	case schema.PNGFormat:
		return PNG(w, d)
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
