// Package driver turns raw window input into editor operations.
package driver

import (
	"image"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/polyedit/internal/editor"
	"github.com/example/polyedit/internal/geometry"
)

// shortcutTools maps the digit shortcuts to tools.
var shortcutTools = map[rune]editor.Tool{
	'1': editor.ToolSelect,
	'2': editor.ToolMove,
	'3': editor.ToolClosestPoints,
	'4': editor.ToolTriangle,
	'5': editor.ToolSquare,
	'6': editor.ToolHexagon,
}

const blockingModifiers = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

// ShortcutRune returns the digit that selects t.
func ShortcutRune(t editor.Tool) rune {
	for r, tool := range shortcutTools {
		if tool == t {
			return r
		}
	}
	return 0
}

// Driver feeds one editor from pointer and keyboard events. Positions given
// to HandleMouse are window coordinates; Move and friends take coordinates
// relative to the canvas origin.
type Driver struct {
	ed      *editor.Editor
	canvas  image.Rectangle
	inside  bool
	pressed bool
}

// New returns a Driver for ed whose canvas occupies canvas in window space.
func New(ed *editor.Editor, canvas image.Rectangle) *Driver {
	return &Driver{ed: ed, canvas: canvas}
}

// Editor returns the driven editor.
func (d *Driver) Editor() *editor.Editor { return d.ed }

// SetCanvas updates the canvas rectangle after a resize or relayout.
func (d *Driver) SetCanvas(r image.Rectangle) { d.canvas = r }

// ToCanvas converts a window position to canvas coordinates.
func (d *Driver) ToCanvas(x, y float32) geometry.Point {
	return geometry.Pt(float64(x)-float64(d.canvas.Min.X), float64(y)-float64(d.canvas.Min.Y))
}

// Move reports the pointer at canvas position p. Non-finite positions are
// dropped.
func (d *Driver) Move(p geometry.Point) {
	if !geometry.Finite(p) {
		return
	}
	d.inside = true
	d.ed.PointerMove(p, true)
}

// Exit reports the pointer leaving the canvas. Only the transition from
// inside to outside reaches the editor.
func (d *Driver) Exit() {
	d.pressed = false
	if !d.inside {
		return
	}
	d.inside = false
	d.ed.PointerLeaveCanvas()
}

// Press reports the primary button going down at the current pointer.
func (d *Driver) Press() {
	if !d.inside {
		return
	}
	d.pressed = true
	d.ed.PointerDown(d.hit())
}

// Release reports the primary button going up. A release that completes a
// press on the canvas is also a click.
func (d *Driver) Release() {
	d.ed.PointerUp()
	if !d.pressed {
		return
	}
	d.pressed = false
	if d.inside {
		d.ed.Click(d.hit())
	}
}

// Click is a press immediately followed by a release.
func (d *Driver) Click() {
	d.Press()
	d.Release()
}

// SelectTool activates t.
func (d *Driver) SelectTool(t editor.Tool) { d.ed.SetActiveTool(t) }

func (d *Driver) hit() int {
	p, ok := d.ed.Pointer()
	if !ok {
		return -1
	}
	return d.ed.HitTest(p)
}

// HandleMouse applies a window mouse event. It reports whether the event
// fell on the canvas.
func (d *Driver) HandleMouse(e mouse.Event) bool {
	if !image.Pt(int(e.X), int(e.Y)).In(d.canvas) {
		if e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft {
			d.ed.PointerUp()
		}
		d.Exit()
		return false
	}
	d.Move(d.ToCanvas(e.X, e.Y))
	if e.Button != mouse.ButtonLeft {
		return true
	}
	switch e.Direction {
	case mouse.DirPress:
		d.Press()
	case mouse.DirRelease:
		d.Release()
	}
	return true
}

// HandleKey applies a key event and reports whether it was consumed.
func (d *Driver) HandleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	return d.Key(e.Rune, e.Modifiers)
}

// Key handles a pressed rune. Digits 1 to 6 pick a tool unless a modifier
// is held.
func (d *Driver) Key(r rune, mods key.Modifiers) bool {
	if mods&blockingModifiers != 0 {
		return false
	}
	t, ok := shortcutTools[r]
	if !ok {
		return false
	}
	d.SelectTool(t)
	return true
}
