// Package document reads and writes polygon documents.
//
// The canonical form is the nested coordinate dump produced by the editor:
// a JSON array of polygons, each an array of [x, y] pairs. GeoJSON and PNG
// are alternative renderings of the same data.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/polyedit/internal/geometry"
)

// Format identifies an encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatGeoJSON
	FormatPNG
)

// ErrNotDecodable is returned when reading a format that only supports output.
var ErrNotDecodable = errors.New("format cannot be decoded")

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatGeoJSON:
		return "geojson"
	case FormatPNG:
		return "png"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return FormatJSON, nil
	case "geojson":
		return FormatGeoJSON, nil
	case "png":
		return FormatPNG, nil
	}
	return 0, fmt.Errorf("unknown format %q", name)
}

// FormatFromPath picks a format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson":
		return FormatGeoJSON
	case ".png":
		return FormatPNG
	}
	return FormatJSON
}

// Encode writes polys to w in format f.
func Encode(w io.Writer, polys []geometry.Polygon, f Format, opts RenderOptions) error {
	switch f {
	case FormatJSON:
		return encodeJSON(w, polys)
	case FormatGeoJSON:
		return encodeGeoJSON(w, polys)
	case FormatPNG:
		return encodePNG(w, polys, opts)
	}
	return fmt.Errorf("encode: unsupported format %v", f)
}

// Decode reads polygons in format f from r.
func Decode(r io.Reader, f Format) ([]geometry.Polygon, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(r)
	case FormatGeoJSON:
		return decodeGeoJSON(r)
	case FormatPNG:
		return nil, fmt.Errorf("decode %v: %w", f, ErrNotDecodable)
	}
	return nil, fmt.Errorf("decode: unsupported format %v", f)
}

// Save writes polys to path using the format implied by its extension.
func Save(path string, polys []geometry.Polygon, opts RenderOptions) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(out, polys, FormatFromPath(path), opts); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Load reads polygons from path using the format implied by its extension.
func Load(path string) ([]geometry.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	polys, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return polys, nil
}
