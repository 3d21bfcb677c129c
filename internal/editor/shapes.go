package editor

import "github.com/example/polyedit/internal/geometry"

// templates holds the base polygon of each shape tool, centred on the origin.
var templates = map[Tool]geometry.Polygon{
	ToolTriangle: {geometry.Pt(0, -40), geometry.Pt(40, 30), geometry.Pt(-40, 30)},
	ToolSquare:   {geometry.Pt(-40, -40), geometry.Pt(40, -40), geometry.Pt(40, 40), geometry.Pt(-40, 40)},
	ToolHexagon:  geometry.RegularPolygon(6, 40),
}

// Template returns a copy of the base polygon placed by a shape tool. Tools
// that do not place shapes report false.
func Template(t Tool) (geometry.Polygon, bool) {
	p, ok := templates[t]
	if !ok {
		return nil, false
	}
	return geometry.ClonePolygon(p), true
}
