package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/polyedit/internal/editor"
	"github.com/example/polyedit/internal/render"
	"github.com/example/polyedit/internal/theme"
)

// ProgramTitle is shown in the title bar and window caption.
const ProgramTitle = "polyedit"

const (
	titleHeight  = 24
	bottomHeight = 24
	buttonHeight = 24
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("new face: %v", err)
	}
}

// toolbarWidth fits the title and every tool label.
func toolbarWidth() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(ProgramTitle).Ceil() + 8
	for _, t := range editor.Tools() {
		if lw := d.MeasureString(toolLabel(t)).Ceil() + 8; lw > w {
			w = lw
		}
	}
	return w
}

// layout splits a window into toolbar, canvas and status bar.
type layout struct {
	width, height int
	toolbar       image.Rectangle
	canvas        image.Rectangle
	status        image.Rectangle
}

func newLayout(width, height int) layout {
	tw := toolbarWidth()
	return layout{
		width:   width,
		height:  height,
		toolbar: image.Rect(0, titleHeight, tw, height-bottomHeight),
		canvas:  image.Rect(tw, titleHeight, width, height-bottomHeight),
		status:  image.Rect(0, height-bottomHeight, width, height),
	}
}

// toolAt returns the toolbar button index under p, or -1.
func (l layout) toolAt(p image.Point, n int) int {
	if !p.In(l.toolbar) {
		return -1
	}
	idx := (p.Y - l.toolbar.Min.Y) / buttonHeight
	if idx >= n {
		return -1
	}
	return idx
}

func (l layout) toolRect(i int) image.Rectangle {
	y := l.toolbar.Min.Y + i*buttonHeight
	return image.Rect(l.toolbar.Min.X, y, l.toolbar.Max.X, y+buttonHeight)
}

// shortcutRects positions the status bar hints left to right.
func (l layout) shortcutRects(labels []string) []image.Rectangle {
	out := make([]image.Rectangle, len(labels))
	x := l.status.Min.X + 6
	y := l.status.Min.Y + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i, lbl := range labels {
		w := meas.MeasureString(lbl).Ceil()
		out[i] = image.Rect(x-2, y-14, x+w+2, y+4)
		x = out[i].Max.X + 8
	}
	return out
}

// shortcutAt returns the index of the status hint under p, or -1.
func (l layout) shortcutAt(p image.Point, labels []string) int {
	for i, r := range l.shortcutRects(labels) {
		if p.In(r) {
			return i
		}
	}
	return -1
}

type paintState struct {
	width, height int
	snap          editor.Snapshot
	theme         *theme.Theme
	title         string
	status        string
	toolButtons   []*CacheButton
	shortcuts     []*Shortcut
	hoverTool     int
	hoverShortcut int
	message       string
	messageUntil  time.Time
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !paintFrame(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// paintFrame composes a full window image into dst. It reports false when
// ctx was canceled part way.
func paintFrame(ctx context.Context, dst *image.RGBA, st paintState) bool {
	th := st.theme
	if th == nil {
		th = theme.Default()
	}
	l := newLayout(st.width, st.height)
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)

	render.DrawScene(dst, l.canvas, st.snap, th)
	if ctx.Err() != nil {
		return false
	}

	drawTitle(dst, l, th, st.title)
	drawToolbar(dst, l, th, st)
	drawStatus(dst, l, th, st)
	if ctx.Err() != nil {
		return false
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, l, th, st.message)
	}
	return ctx.Err() == nil
}

func drawTitle(dst *image.RGBA, l layout, th *theme.Theme, title string) {
	r := image.Rect(0, 0, l.width, titleHeight)
	draw.Draw(dst, r, image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	d.DrawString(title)
}

func drawToolbar(dst *image.RGBA, l layout, th *theme.Theme, st paintState) {
	draw.Draw(dst, l.toolbar, image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	for i, cb := range st.toolButtons {
		cb.SetRect(l.toolRect(i))
		state := StateDefault
		if tb, ok := cb.Button.(*ToolButton); ok && tb.tool == st.snap.Tool {
			state = StatePressed
		} else if i == st.hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
	}
}

func drawStatus(dst *image.RGBA, l layout, th *theme.Theme, st paintState) {
	draw.Draw(dst, l.status, image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	labels := make([]string, len(st.shortcuts))
	for i, sc := range st.shortcuts {
		labels[i] = sc.label
	}
	rects := l.shortcutRects(labels)
	right := l.status.Min.X
	for i, sc := range st.shortcuts {
		sc.SetRect(rects[i])
		state := StateDefault
		if i == st.hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		right = rects[i].Max.X
	}
	if st.status == "" {
		return
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13}
	w := d.MeasureString(st.status).Ceil()
	x := l.width - w - 6
	if x < right+8 {
		return
	}
	d.Dot = fixed.P(x, l.status.Min.Y+16)
	d.DrawString(st.status)
}

func drawMessage(dst *image.RGBA, l layout, th *theme.Theme, msg string) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := (l.width - wmsg) / 2
	py := (l.height-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	bg := th.Background
	bg.A = 230
	draw.Draw(dst, rect, image.NewUniform(color.NRGBA(bg)), image.Point{}, draw.Over)
	drawRect(dst, rect, th.ButtonBorder, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
