// Package geometry provides the planar primitives used by the editor: points,
// simple polygons and the closest-boundary-point query.
package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Point is a position in canvas space.
type Point = geom.Coord

// Polygon is a closed loop of vertices. The last vertex connects back to the
// first. Callers are expected to supply simple polygons; self-intersection is
// not detected.
type Polygon []Point

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// ClosestPointOnSegment projects target onto the segment a-b, clamping the
// result to the segment's end points. A degenerate segment yields a.
func ClosestPointOnSegment(a, b, target Point) Point {
	ab := b.Minus(a)
	den := ab.X*ab.X + ab.Y*ab.Y
	if den == 0 {
		return a
	}
	t := ((target.X-a.X)*ab.X + (target.Y-a.Y)*ab.Y) / den
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a.Plus(ab.Times(t))
}

// ClosestPointOnSimplePolygonToTarget returns the point on the boundary of
// polygon nearest to target. Every cyclic edge is considered; on ties the
// earliest edge wins. A single vertex polygon returns that vertex. The polygon
// is not modified.
//
// An empty polygon has no boundary and returns target unchanged.
func ClosestPointOnSimplePolygonToTarget(polygon Polygon, target Point) Point {
	switch len(polygon) {
	case 0:
		return target
	case 1:
		return polygon[0]
	}
	best := polygon[0]
	bestDist := math.Inf(1)
	n := len(polygon)
	for i := range polygon {
		candidate := ClosestPointOnSegment(polygon[i], polygon[(i+1)%n], target)
		if d := distSq(candidate, target); d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}

// Finite reports whether both coordinates of p are neither NaN nor infinite.
func Finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// ClonePolygon returns a deep copy that shares no storage with polygon.
func ClonePolygon(polygon Polygon) Polygon {
	if polygon == nil {
		return nil
	}
	out := make(Polygon, len(polygon))
	copy(out, polygon)
	return out
}

// Translate returns a copy of p moved by offset.
func (p Polygon) Translate(offset Point) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Plus(offset)
	}
	return out
}

// Bounds returns the axis aligned bounding box of p. The zero Rect is
// returned for an empty polygon.
func (p Polygon) Bounds() geom.Rect {
	if len(p) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		r.ExpandToContainCoord(v)
	}
	return r
}

// Contains reports whether pt lies inside p using the even-odd rule. Points
// exactly on the boundary may report either way.
func (p Polygon) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	b := p.Bounds()
	if pt.X < b.Min.X || pt.X > b.Max.X || pt.Y < b.Min.Y || pt.Y > b.Max.Y {
		return false
	}
	in := false
	a := p[len(p)-1]
	for _, c := range p {
		if crosses(pt, a, c) {
			in = !in
		}
		a = c
	}
	return in
}

// Equal reports whether p and other have identical vertices in order.
func (p Polygon) Equal(other Polygon) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Rings converts polys to nested [x, y] arrays. The result shares no
// storage with polys.
func Rings(polys []Polygon) [][][2]float64 {
	out := make([][][2]float64, len(polys))
	for i, p := range polys {
		ring := make([][2]float64, len(p))
		for j, v := range p {
			ring[j] = [2]float64{v.X, v.Y}
		}
		out[i] = ring
	}
	return out
}

// RegularPolygon returns the vertices of a regular n-gon centred on the
// origin with the first vertex on the positive x axis.
func RegularPolygon(n int, radius float64) Polygon {
	if n < 1 {
		return nil
	}
	out := make(Polygon, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Pt(radius*math.Cos(a), radius*math.Sin(a))
	}
	return out
}

func crosses(p, a, b Point) bool {
	return (a.Y > p.Y) != (b.Y > p.Y) &&
		p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X
}

func distSq(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
