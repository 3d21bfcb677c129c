// Package render rasterises editor snapshots.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/example/polyedit/internal/editor"
	"github.com/example/polyedit/internal/geometry"
	"github.com/example/polyedit/internal/theme"
)

const (
	strokeWidth   = 2
	selectedWidth = 3
	markerRadius  = 4
	circleSteps   = 16
)

// Painter draws into a fixed rectangle of a destination image. Coordinates
// passed to its methods are relative to the rectangle's origin.
type Painter struct {
	dst  *image.RGBA
	rect image.Rectangle
	z    *vector.Rasterizer
}

// NewPainter returns a Painter targeting rect within dst.
func NewPainter(dst *image.RGBA, rect image.Rectangle) *Painter {
	return &Painter{dst: dst, rect: rect, z: vector.NewRasterizer(rect.Dx(), rect.Dy())}
}

func (p *Painter) begin() {
	p.z.Reset(p.rect.Dx(), p.rect.Dy())
	p.z.DrawOp = draw.Over
}

func (p *Painter) flush(col color.Color) {
	p.z.Draw(p.dst, p.rect, image.NewUniform(col), image.Point{})
}

func (p *Painter) path(poly geometry.Polygon) {
	for i, v := range poly {
		if i == 0 {
			p.z.MoveTo(float32(v.X), float32(v.Y))
		} else {
			p.z.LineTo(float32(v.X), float32(v.Y))
		}
	}
	p.z.ClosePath()
}

// Fill paints the interior of poly.
func (p *Painter) Fill(poly geometry.Polygon, col color.Color) {
	if len(poly) < 3 {
		return
	}
	p.begin()
	p.path(poly)
	p.flush(col)
}

// Stroke outlines poly, including the closing edge, with the given width.
func (p *Painter) Stroke(poly geometry.Polygon, width float64, col color.Color) {
	if len(poly) == 0 {
		return
	}
	p.begin()
	n := len(poly)
	for i := range poly {
		p.segment(poly[i], poly[(i+1)%n], width)
		p.path(circle(poly[i], width/2))
	}
	p.flush(col)
}

// Line draws a single segment.
func (p *Painter) Line(a, b geometry.Point, width float64, col color.Color) {
	p.begin()
	p.segment(a, b, width)
	p.flush(col)
}

// Dot draws a filled circle.
func (p *Painter) Dot(c geometry.Point, r float64, col color.Color) {
	p.begin()
	p.path(circle(c, r))
	p.flush(col)
}

// segment adds a rectangle of the given width around a-b to the path. It is
// wound the same way as circle so overlapping joints do not cancel out.
func (p *Painter) segment(a, b geometry.Point, width float64) {
	d := b.Minus(a)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return
	}
	h := width / 2
	n := geometry.Pt(-d.Y/l*h, d.X/l*h)
	p.path(geometry.Polygon{a.Minus(n), b.Minus(n), b.Plus(n), a.Plus(n)})
}

// nrgba reads theme colours as straight alpha, matching #RRGGBBAA.
func nrgba(c color.RGBA) color.Color { return color.NRGBA(c) }

func circle(c geometry.Point, r float64) geometry.Polygon {
	return geometry.RegularPolygon(circleSteps, r).Translate(c)
}

// DrawScene paints snap into rect of dst: background, polygons in z-order,
// selection and drag outlines, placement preview and closest-point markers.
func DrawScene(dst *image.RGBA, rect image.Rectangle, snap editor.Snapshot, th *theme.Theme) {
	if th == nil {
		th = theme.Default()
	}
	draw.Draw(dst, rect, image.NewUniform(nrgba(th.CanvasBackground)), image.Point{}, draw.Src)
	if rect.Empty() {
		return
	}
	p := NewPainter(dst, rect)

	for i, poly := range snap.Polygons {
		p.Fill(poly, nrgba(th.PolygonFill))
		stroke, width := nrgba(th.PolygonStroke), float64(strokeWidth)
		switch i {
		case snap.Dragging:
			stroke, width = nrgba(th.DragStroke), selectedWidth
		case snap.Selected:
			stroke, width = nrgba(th.SelectedStroke), selectedWidth
		}
		if len(poly) == 1 {
			p.Dot(poly[0], markerRadius, stroke)
			continue
		}
		p.Stroke(poly, width, stroke)
	}

	if len(snap.Preview) > 0 {
		p.Fill(snap.Preview, nrgba(th.PreviewFill))
		p.Stroke(snap.Preview, 1, nrgba(th.PreviewStroke))
	}

	if snap.HasPointer {
		for _, cp := range snap.ClosestPoints {
			p.Line(snap.Pointer, cp, 1, nrgba(th.ClosestLine))
			p.Dot(cp, markerRadius, nrgba(th.ClosestPoint))
		}
	}
}
