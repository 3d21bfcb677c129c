// Package clipboard publishes polygon documents to the system clipboard as
// JSON text or a PNG preview.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
)

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
