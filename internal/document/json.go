package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/example/polyedit/internal/geometry"
)

// EncodeExport writes a nested [x, y] dump, as returned by the editor's
// Export, as a JSON document.
func EncodeExport(w io.Writer, rings [][][2]float64) error {
	if err := json.NewEncoder(w).Encode(rings); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func encodeJSON(w io.Writer, polys []geometry.Polygon) error {
	return EncodeExport(w, geometry.Rings(polys))
}

func decodeJSON(r io.Reader) ([]geometry.Polygon, error) {
	var raw [][][]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return fromRings(raw, false)
}

// fromRings converts coordinate rings to polygons. When closed is set a
// trailing vertex equal to the first is dropped.
func fromRings(rings [][][]float64, closed bool) ([]geometry.Polygon, error) {
	out := make([]geometry.Polygon, 0, len(rings))
	for i, ring := range rings {
		if len(ring) == 0 {
			return nil, fmt.Errorf("polygon %d has no vertices", i)
		}
		p := make(geometry.Polygon, 0, len(ring))
		for j, c := range ring {
			if len(c) < 2 {
				return nil, fmt.Errorf("polygon %d vertex %d: want 2 coordinates, got %d", i, j, len(c))
			}
			p = append(p, geometry.Pt(c[0], c[1]))
		}
		if closed && len(p) > 1 && p[0] == p[len(p)-1] {
			p = p[:len(p)-1]
		}
		out = append(out, p)
	}
	return out, nil
}
