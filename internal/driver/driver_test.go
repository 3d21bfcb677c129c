package driver

import (
	"bytes"
	"errors"
	"image"
	"math"
	"strings"
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/polyedit/internal/editor"
	"github.com/example/polyedit/internal/geometry"
)

func newDriver(opts ...editor.Option) *Driver {
	return New(editor.New(opts...), image.Rect(50, 20, 450, 320))
}

func TestKeyShortcuts(t *testing.T) {
	d := newDriver()
	want := []editor.Tool{
		editor.ToolSelect, editor.ToolMove, editor.ToolClosestPoints,
		editor.ToolTriangle, editor.ToolSquare, editor.ToolHexagon,
	}
	for i, tool := range want {
		r := rune('1' + i)
		if !d.HandleKey(key.Event{Rune: r, Direction: key.DirPress}) {
			t.Fatalf("key %q not consumed", r)
		}
		if got := d.Editor().ActiveTool(); got != tool {
			t.Fatalf("key %q selected %v, want %v", r, got, tool)
		}
		if ShortcutRune(tool) != r {
			t.Fatalf("ShortcutRune(%v) = %q", tool, ShortcutRune(tool))
		}
	}
}

func TestKeyShortcutsIgnoredWithModifiers(t *testing.T) {
	for _, mod := range []key.Modifiers{key.ModShift, key.ModControl, key.ModAlt, key.ModMeta} {
		d := newDriver()
		if d.HandleKey(key.Event{Rune: '1', Modifiers: mod, Direction: key.DirPress}) {
			t.Fatalf("modifier %v: key consumed", mod)
		}
		if d.Editor().ActiveTool() != editor.DefaultTool {
			t.Fatalf("modifier %v changed the tool", mod)
		}
	}
}

func TestKeyReleaseIgnored(t *testing.T) {
	d := newDriver()
	if d.HandleKey(key.Event{Rune: '2', Direction: key.DirRelease}) {
		t.Fatalf("release consumed")
	}
	if d.HandleKey(key.Event{Rune: '9', Direction: key.DirPress}) {
		t.Fatalf("unmapped key consumed")
	}
}

func TestHandleMousePlacesShapeInCanvasSpace(t *testing.T) {
	d := newDriver(editor.WithTool(editor.ToolSquare))
	d.HandleMouse(mouse.Event{X: 150, Y: 120})
	d.HandleMouse(mouse.Event{X: 150, Y: 120, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	d.HandleMouse(mouse.Event{X: 150, Y: 120, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	ed := d.Editor()
	if ed.Len() != 1 {
		t.Fatalf("len = %d, want 1", ed.Len())
	}
	got, _ := ed.Polygon(0)
	if got[0] != geometry.Pt(60, 60) {
		t.Fatalf("first vertex = %v, want 60,60", got[0])
	}
}

func TestHandleMouseLeavingCanvas(t *testing.T) {
	d := newDriver(editor.WithTool(editor.ToolHexagon))
	if !d.HandleMouse(mouse.Event{X: 100, Y: 100}) {
		t.Fatalf("canvas event not consumed")
	}
	calls := 0
	d.Editor().Subscribe(func(c editor.Change) {
		if c.Op == editor.OpLeaveCanvas {
			calls++
		}
	})
	if d.HandleMouse(mouse.Event{X: 10, Y: 100}) {
		t.Fatalf("toolbar event consumed")
	}
	d.HandleMouse(mouse.Event{X: 5, Y: 100})
	if calls != 1 {
		t.Fatalf("leave fired %d times, want 1", calls)
	}
	if _, ok := d.Editor().PlacementPreview(); ok {
		t.Fatalf("preview present after leaving")
	}
}

func TestDragFromPressToRelease(t *testing.T) {
	square := geometry.Polygon{geometry.Pt(0, 0), geometry.Pt(10, 0), geometry.Pt(10, 10), geometry.Pt(0, 10)}
	d := newDriver(editor.WithTool(editor.ToolMove), editor.WithPolygons([]geometry.Polygon{square}))
	d.Move(geometry.Pt(5, 5))
	d.Press()
	d.Move(geometry.Pt(105, 55))
	d.Release()
	got, _ := d.Editor().Polygon(0)
	if !got.Equal(square.Translate(geometry.Pt(100, 50))) {
		t.Fatalf("got %v", got)
	}
	if d.Editor().Dragging() != -1 {
		t.Fatalf("drag survived release")
	}
}

func TestReleaseOutsideCanvasEndsDrag(t *testing.T) {
	square := geometry.Polygon{geometry.Pt(0, 0), geometry.Pt(10, 0), geometry.Pt(10, 10), geometry.Pt(0, 10)}
	d := newDriver(editor.WithTool(editor.ToolMove), editor.WithPolygons([]geometry.Polygon{square}))
	d.HandleMouse(mouse.Event{X: 55, Y: 25, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	d.HandleMouse(mouse.Event{X: 0, Y: 0, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
	if d.Editor().Dragging() != -1 {
		t.Fatalf("drag survived release outside the canvas")
	}
}

func TestSelectClickUsesHitTest(t *testing.T) {
	polys := []geometry.Polygon{
		{geometry.Pt(0, 0), geometry.Pt(10, 0), geometry.Pt(10, 10), geometry.Pt(0, 10)},
		{geometry.Pt(20, 0), geometry.Pt(30, 0), geometry.Pt(30, 10), geometry.Pt(20, 10)},
	}
	d := newDriver(editor.WithTool(editor.ToolSelect), editor.WithPolygons(polys))
	d.Move(geometry.Pt(25, 5))
	d.Click()
	if d.Editor().SelectedIndex() != 1 {
		t.Fatalf("selected = %d", d.Editor().SelectedIndex())
	}
	d.Move(geometry.Pt(100, 100))
	d.Click()
	if d.Editor().SelectedIndex() != 1 {
		t.Fatalf("miss cleared selection")
	}
}

func TestScript(t *testing.T) {
	var out bytes.Buffer
	s := NewScript(newDriver(), &out)
	input := `
# place a square and a triangle
key 5
move 100 100
click
tool triangle
move 300 100
click
tool closest
move 200 100
closest
state
dump
quit
move 1 1
`
	if err := s.Run(strings.NewReader(input)); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"0 140,100\n",
		"1 260,130\n",
		"tool=closest-points polygons=2 selected=-1 dragging=-1 pointer=200,100",
		"[[[60,60],[140,60],[140,140],[60,140]],[[300,60],[340,130],[260,130]]]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "pointer=1,1") {
		t.Errorf("commands after quit were executed")
	}
}

func TestScriptErrors(t *testing.T) {
	s := NewScript(newDriver(), &bytes.Buffer{})
	for _, line := range []string{"tool lasso", "move 1", "move a b", "move NaN 10", "move 10 +Inf", "key 12", "jump"} {
		if _, err := s.Exec(line); err == nil {
			t.Errorf("%q: expected error", line)
		}
	}
	err := s.Run(strings.NewReader("key 1\nbogus\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected error naming line 2, got %v", err)
	}
}

func TestNonFiniteMoveKeepsDocumentClean(t *testing.T) {
	var out bytes.Buffer
	d := newDriver(editor.WithTool(editor.ToolSquare))
	d.Move(geometry.Pt(math.NaN(), 10))
	d.Click()
	if d.Editor().Len() != 0 {
		t.Fatalf("click after NaN move placed a polygon")
	}

	s := NewScript(d, &out)
	err := s.Run(strings.NewReader("move NaN 10\nclick\n"))
	if !errors.Is(err, geometry.ErrNotFinite) || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("expected non-finite error on line 1, got %v", err)
	}
	if err := s.Run(strings.NewReader("move 100 100\nclick\nstate\ndump\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"pointer=100,100", "[[[60,60],[140,60],[140,140],[60,140]]]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
