package document

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/example/polyedit/internal/geometry"
)

// RenderOptions controls raster output. Zero values pick defaults.
type RenderOptions struct {
	// Width and Height fix the image size in pixels. When either is zero the
	// image is sized to the polygons' bounds plus Margin and the content is
	// shifted so the bounds start at Margin.
	Width, Height int
	Margin        int
	Background    color.Color
	Fill          color.Color
	Stroke        color.Color
	LineWidth     float64
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Margin <= 0 {
		o.Margin = 20
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Fill == nil {
		o.Fill = color.NRGBA{70, 130, 180, 120}
	}
	if o.Stroke == nil {
		o.Stroke = color.RGBA{25, 25, 112, 255}
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 2
	}
	return o
}

// layout returns the image size and the offset applied to every vertex.
func layout(polys []geometry.Polygon, o RenderOptions) (w, h int, off geometry.Point) {
	if o.Width > 0 && o.Height > 0 {
		return o.Width, o.Height, geometry.Point{}
	}
	var all geometry.Polygon
	for _, p := range polys {
		all = append(all, p...)
	}
	if len(all) == 0 {
		return 2 * o.Margin, 2 * o.Margin, geometry.Point{}
	}
	b := all.Bounds()
	m := float64(o.Margin)
	w = int(math.Ceil(b.Max.X-b.Min.X)) + 2*o.Margin
	h = int(math.Ceil(b.Max.Y-b.Min.Y)) + 2*o.Margin
	return w, h, geometry.Pt(m-b.Min.X, m-b.Min.Y)
}

func encodePNG(w io.Writer, polys []geometry.Polygon, opts RenderOptions) error {
	return png.Encode(w, Render(polys, opts))
}

// Render rasterises polys the way the PNG format writes them.
func Render(polys []geometry.Polygon, opts RenderOptions) image.Image {
	o := opts.withDefaults()
	width, height, off := layout(polys, o)
	dc := gg.NewContext(width, height)
	dc.SetColor(o.Background)
	dc.Clear()
	dc.SetLineWidth(o.LineWidth)
	for _, p := range polys {
		if len(p) == 1 {
			v := p[0].Plus(off)
			dc.DrawCircle(v.X, v.Y, o.LineWidth*2)
			dc.SetColor(o.Stroke)
			dc.Fill()
			continue
		}
		for i, v := range p {
			v = v.Plus(off)
			if i == 0 {
				dc.MoveTo(v.X, v.Y)
			} else {
				dc.LineTo(v.X, v.Y)
			}
		}
		dc.ClosePath()
		dc.SetColor(o.Fill)
		dc.FillPreserve()
		dc.SetColor(o.Stroke)
		dc.Stroke()
	}
	return dc.Image()
}
