package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotFinite is returned for NaN or infinite coordinates.
var ErrNotFinite = errors.New("coordinate is not finite")

// ParseCoord parses a single finite coordinate.
func ParseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrNotFinite)
	}
	return v, nil
}

// ParsePoint parses "x,y".
func ParsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := ParseCoord(xs)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := ParseCoord(ys)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return Pt(x, y), nil
}

// ParsePolygon parses whitespace separated "x,y" vertices.
func ParsePolygon(s string) (Polygon, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("polygon has no vertices")
	}
	out := make(Polygon, 0, len(fields))
	for _, f := range fields {
		p, err := ParsePoint(f)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// FormatPoint renders p as "x,y" using the shortest exact representation.
func FormatPoint(p Point) string {
	return strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
}

// String renders p in the form accepted by ParsePolygon.
func (p Polygon) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = FormatPoint(v)
	}
	return strings.Join(parts, " ")
}
