package appstate

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/polyedit/internal/document"
	"github.com/example/polyedit/internal/editor"
	"github.com/example/polyedit/internal/geometry"
	"github.com/example/polyedit/internal/theme"
)

func sampleEditor() *editor.Editor {
	return editor.New(editor.WithPolygons([]geometry.Polygon{
		{geometry.Pt(10, 10), geometry.Pt(50, 10), geometry.Pt(50, 40)},
	}))
}

func TestSaveWritesDocument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shapes", "doc.json")
	a := New(WithEditor(sampleEditor()), WithOutput(out))
	msg, err := a.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(msg, out) {
		t.Errorf("message %q does not name %s", msg, out)
	}
	polys, err := document.Load(out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(polys) != 1 || !polys[0].Equal(a.Editor.Polygons()[0]) {
		t.Fatalf("saved %v", polys)
	}
}

func TestSaveWithoutOutput(t *testing.T) {
	a := New()
	if _, err := a.Save(); !errors.Is(err, ErrNoOutput) {
		t.Fatalf("err = %v, want ErrNoOutput", err)
	}
}

func TestCopyDocument(t *testing.T) {
	a := New(WithEditor(sampleEditor()))
	var got string
	a.writeText = func(s string) error { got = s; return nil }
	if _, err := a.CopyDocument(); err != nil {
		t.Fatalf("CopyDocument: %v", err)
	}
	polys, err := document.Decode(strings.NewReader(got), document.FormatJSON)
	if err != nil {
		t.Fatalf("clipboard text is not a document: %v\n%s", err, got)
	}
	if len(polys) != 1 {
		t.Fatalf("decoded %d polygons", len(polys))
	}
}

func TestCopyErrorsAreWrapped(t *testing.T) {
	sentinel := errors.New("no display")
	a := New(WithEditor(sampleEditor()))
	a.writeText = func(string) error { return sentinel }
	a.writeImage = func(image.Image) error { return sentinel }
	if _, err := a.CopyDocument(); !errors.Is(err, sentinel) {
		t.Fatalf("CopyDocument err = %v", err)
	}
	if _, err := a.CopyImage(); !errors.Is(err, sentinel) {
		t.Fatalf("CopyImage err = %v", err)
	}
}

func TestPreviewMatchesPNGExport(t *testing.T) {
	a := New(WithEditor(sampleEditor()))
	img := a.Preview()
	// 40x30 of polygon plus the default 20 pixel margin on each side
	if got := img.Bounds(); got != image.Rect(0, 0, 80, 70) {
		t.Fatalf("bounds = %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(2, 2)); got != a.Theme.CanvasBackground {
		t.Fatalf("preview background = %v", got)
	}

	var buf bytes.Buffer
	if err := document.Encode(&buf, a.Editor.Polygons(), document.FormatPNG, a.renderOptions()); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	saved, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	b := img.Bounds()
	if saved.Bounds() != b {
		t.Fatalf("saved bounds %v, preview %v", saved.Bounds(), b)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)) != color.NRGBAModel.Convert(saved.At(x, y)) {
				t.Fatalf("pixel %d,%d differs from saved png", x, y)
			}
		}
	}
}

func TestPreviewIncludesNegativeCoordinates(t *testing.T) {
	ed := editor.New(editor.WithPolygons([]geometry.Polygon{
		{geometry.Pt(-60, -60), geometry.Pt(-20, -60), geometry.Pt(-20, -20), geometry.Pt(-60, -20)},
	}))
	a := New(WithEditor(ed))
	img := a.Preview()
	if got := img.Bounds(); got != image.Rect(0, 0, 80, 80) {
		t.Fatalf("bounds = %v", got)
	}
	if got := color.RGBAModel.Convert(img.At(40, 40)); got == a.Theme.CanvasBackground {
		t.Fatalf("polygon dragged above the origin is missing from the preview")
	}

	empty := New().Preview()
	if empty.Bounds().Dx() != 40 {
		t.Fatalf("empty preview bounds = %v", empty.Bounds())
	}
}

func TestLayout(t *testing.T) {
	l := newLayout(400, 300)
	if l.canvas.Min.X != l.toolbar.Max.X || l.canvas.Max.X != 400 {
		t.Fatalf("canvas %v does not sit right of toolbar %v", l.canvas, l.toolbar)
	}
	if l.canvas.Min.Y != titleHeight || l.canvas.Max.Y != 300-bottomHeight {
		t.Fatalf("canvas = %v", l.canvas)
	}
	n := len(editor.Tools())
	if got := l.toolAt(image.Pt(2, titleHeight+1), n); got != 0 {
		t.Errorf("toolAt first = %d", got)
	}
	if got := l.toolAt(image.Pt(2, titleHeight+buttonHeight*5+2), n); got != 5 {
		t.Errorf("toolAt sixth = %d", got)
	}
	if got := l.toolAt(image.Pt(2, titleHeight+buttonHeight*n+2), n); got != -1 {
		t.Errorf("toolAt below buttons = %d", got)
	}
	if got := l.toolAt(image.Pt(l.canvas.Min.X+5, titleHeight+1), n); got != -1 {
		t.Errorf("toolAt on canvas = %d", got)
	}

	labels := []string{"^S:save", "Q:quit"}
	rects := l.shortcutRects(labels)
	if got := l.shortcutAt(rects[1].Min.Add(image.Pt(1, 1)), labels); got != 1 {
		t.Errorf("shortcutAt = %d", got)
	}
	if got := l.shortcutAt(image.Pt(399, 1), labels); got != -1 {
		t.Errorf("shortcutAt outside = %d", got)
	}
}

func TestToolLabels(t *testing.T) {
	want := []string{"1:Select", "2:Move", "3:Closest", "4:Triangle", "5:Square", "6:Hexagon"}
	for i, tool := range editor.Tools() {
		if got := toolLabel(tool); got != want[i] {
			t.Errorf("toolLabel(%v) = %q, want %q", tool, got, want[i])
		}
	}
}

func TestToolButtonActivate(t *testing.T) {
	var picked editor.Tool = -1
	cb := newToolButton(editor.ToolHexagon, theme.Default(), func(t editor.Tool) { picked = t })
	cb.Activate()
	if picked != editor.ToolHexagon {
		t.Fatalf("picked %v", picked)
	}
}

func TestPaintFrame(t *testing.T) {
	th := theme.Default()
	ed := sampleEditor()
	snap := ed.Snapshot()
	buttons := []*CacheButton{}
	for _, tool := range editor.Tools() {
		buttons = append(buttons, newToolButton(tool, th, nil))
	}
	st := paintState{
		width:         400,
		height:        300,
		snap:          snap,
		theme:         th,
		title:         ProgramTitle,
		status:        status(snap),
		toolButtons:   buttons,
		shortcuts:     []*Shortcut{{label: "Q:quit", theme: th}},
		hoverTool:     -1,
		hoverShortcut: -1,
		message:       "saved",
		messageUntil:  time.Now().Add(time.Minute),
	}
	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	if !paintFrame(context.Background(), dst, st) {
		t.Fatalf("paintFrame reported cancellation")
	}
	l := newLayout(400, 300)
	corner := l.canvas.Max.Sub(image.Pt(2, 2))
	if got := dst.RGBAAt(corner.X, corner.Y); got != th.CanvasBackground {
		t.Errorf("canvas corner = %v", got)
	}
	// the default tool is drawn pressed
	r := l.toolRect(int(editor.DefaultTool))
	if got := dst.RGBAAt(r.Max.X-2, r.Max.Y-2); got != th.ButtonBackgroundPress {
		t.Errorf("active tool button = %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if paintFrame(ctx, dst, st) {
		t.Fatalf("paintFrame ignored cancellation")
	}
}

func TestStatus(t *testing.T) {
	ed := sampleEditor()
	ed.PointerMove(geometry.Pt(3, 4), true)
	if got := status(ed.Snapshot()); got != "Triangle  1 polygons  3,4" {
		t.Fatalf("status = %q", got)
	}
}
