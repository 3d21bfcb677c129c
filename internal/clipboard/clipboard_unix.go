//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"image"
	"os"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

// publish replaces the clipboard contents with data in format f.
func publish(f clipboard.Format, data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	clipboard.Write(f, data)
	return nil
}

// WriteImage publishes img as PNG.
func WriteImage(img image.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return publish(clipboard.FmtImage, data)
}

// WriteText publishes a document dump as UTF-8 text.
func WriteText(text string) error { return publish(clipboard.FmtText, []byte(text)) }
