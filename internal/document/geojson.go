package document

import (
	"fmt"
	"io"

	geojson "github.com/paulmach/go.geojson"

	"github.com/example/polyedit/internal/geometry"
)

func encodeGeoJSON(w io.Writer, polys []geometry.Polygon) error {
	fc := geojson.NewFeatureCollection()
	for i, p := range polys {
		ring := make([][]float64, 0, len(p)+1)
		for _, v := range p {
			ring = append(ring, []float64{v.X, v.Y})
		}
		// GeoJSON rings repeat the first position at the end.
		if len(p) > 0 {
			ring = append(ring, []float64{p[0].X, p[0].Y})
		}
		f := geojson.NewPolygonFeature([][][]float64{ring})
		f.SetProperty("index", i)
		fc.AddFeature(f)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// decodeGeoJSON reads the outer ring of every Polygon feature. Holes and
// other geometry types are skipped.
func decodeGeoJSON(r io.Reader) ([]geometry.Polygon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	var rings [][][]float64
	for _, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPolygon() || len(f.Geometry.Polygon) == 0 {
			continue
		}
		rings = append(rings, f.Geometry.Polygon[0])
	}
	return fromRings(rings, true)
}
