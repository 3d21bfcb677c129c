// Package appstate hosts the polygon editor in a desktop window.
package appstate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/polyedit/internal/clipboard"
	"github.com/example/polyedit/internal/document"
	inputdriver "github.com/example/polyedit/internal/driver"
	"github.com/example/polyedit/internal/editor"
	"github.com/example/polyedit/internal/geometry"
	"github.com/example/polyedit/internal/notify"
	"github.com/example/polyedit/internal/theme"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
	messageTime   = 2 * time.Second
)

// ErrNoOutput is returned when saving without an output path.
var ErrNoOutput = errors.New("no output file configured")

// AppState holds application configuration for the UI.
type AppState struct {
	Editor   *editor.Editor
	Output   string
	Title    string
	Theme    *theme.Theme
	Notifier *notify.Notifier
	Width    int
	Height   int

	onClose   func()
	closeOnce sync.Once

	// clipboard access, swapped in tests
	writeText  func(string) error
	writeImage func(image.Image) error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithEditor sets the editor shown in the window.
func WithEditor(ed *editor.Editor) Option { return func(a *AppState) { a.Editor = ed } }

// WithOutput sets the path written by the save shortcut.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTitle sets the window caption.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithTheme sets the colour theme.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithNotifier sets the notifier used after save and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithSize sets the initial window size in pixels.
func WithSize(width, height int) Option {
	return func(a *AppState) { a.Width, a.Height = width, height }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Width:      defaultWidth,
		Height:     defaultHeight,
		writeText:  clipboard.WriteText,
		writeImage: clipboard.WriteImage,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Editor == nil {
		a.Editor = editor.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Title == "" {
		a.Title = ProgramTitle
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

func (a *AppState) renderOptions() document.RenderOptions {
	return document.RenderOptions{
		Background: color.NRGBA(a.Theme.CanvasBackground),
		Fill:       color.NRGBA(a.Theme.PolygonFill),
		Stroke:     color.NRGBA(a.Theme.PolygonStroke),
	}
}

// Save writes the document to Output and announces it.
func (a *AppState) Save() (string, error) {
	if a.Output == "" {
		return "", ErrNoOutput
	}
	if err := document.Save(a.Output, a.Editor.Polygons(), a.renderOptions()); err != nil {
		return "", err
	}
	a.Notifier.Save(a.Output)
	return fmt.Sprintf("saved %s", a.Output), nil
}

// CopyDocument places the polygons on the clipboard as JSON.
func (a *AppState) CopyDocument() (string, error) {
	var buf bytes.Buffer
	if err := document.EncodeExport(&buf, a.Editor.Export()); err != nil {
		return "", err
	}
	if err := a.writeText(buf.String()); err != nil {
		return "", fmt.Errorf("copy document: %w", err)
	}
	a.Notifier.Copy("document", a.Preview())
	return "document copied to clipboard", nil
}

// CopyImage places a rendering of the polygons on the clipboard.
func (a *AppState) CopyImage() (string, error) {
	img := a.Preview()
	if err := a.writeImage(img); err != nil {
		return "", fmt.Errorf("copy image: %w", err)
	}
	a.Notifier.Copy("image", img)
	return "image copied to clipboard", nil
}

// Preview renders the polygons as the PNG export would, framed to their
// bounds.
func (a *AppState) Preview() image.Image {
	return document.Render(a.Editor.Polygons(), a.renderOptions())
}

// status summarises the editor for the status bar.
func status(snap editor.Snapshot) string {
	s := fmt.Sprintf("%s  %d polygons", snap.Tool.Label(), len(snap.Polygons))
	if snap.HasPointer {
		s += "  " + geometry.FormatPoint(snap.Pointer)
	}
	return s
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	width, height := a.Width, a.Height
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ed := a.Editor
	in := inputdriver.New(ed, newLayout(width, height).canvas)
	sub := ed.Subscribe(func(editor.Change) { w.Send(paint.Event{}) })
	defer sub.Remove()

	var message string
	var messageUntil time.Time
	hoverTool, hoverShortcut := -1, -1

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	report := func(msg string, err error) {
		if err != nil {
			msg = err.Error()
		}
		message = msg
		log.Print(message)
		messageUntil = time.Now().Add(messageTime)
	}

	quit := false
	actions := map[string]func(){}
	keyboardAction := map[KeyShortcut]string{}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}
	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, func() { report(a.Save()) })
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, func() { report(a.CopyDocument()) })
	register("copyimage", shortcutList{{Rune: 'c', Modifiers: key.ModControl | key.ModShift}}, func() { report(a.CopyImage()) })
	register("quit", shortcutList{{Rune: 'q'}, {Rune: -1, Code: key.CodeEscape}}, func() { quit = true })

	handleShortcut := func(action string) {
		if fn, ok := actions[action]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	toolButtons := make([]*CacheButton, 0, len(editor.Tools()))
	for _, t := range editor.Tools() {
		toolButtons = append(toolButtons, newToolButton(t, a.Theme, in.SelectTool))
	}
	shortcuts := []*Shortcut{
		{label: "^S:save", action: func() { handleShortcut("save") }, theme: a.Theme},
		{label: "^C:copy", action: func() { handleShortcut("copy") }, theme: a.Theme},
		{label: "^+C:copy image", action: func() { handleShortcut("copyimage") }, theme: a.Theme},
		{label: "Q:quit", action: func() { handleShortcut("quit") }, theme: a.Theme},
	}
	labels := make([]string, len(shortcuts))
	for i, sc := range shortcuts {
		labels[i] = sc.label
	}

	for !quit {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			in.SetCanvas(newLayout(width, height).canvas)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			snap := ed.Snapshot()
			st := paintState{
				width:         width,
				height:        height,
				snap:          snap,
				theme:         a.Theme,
				title:         a.Title,
				status:        status(snap),
				toolButtons:   toolButtons,
				shortcuts:     shortcuts,
				hoverTool:     hoverTool,
				hoverShortcut: hoverShortcut,
				message:       message,
				messageUntil:  messageUntil,
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			l := newLayout(width, height)
			p := image.Pt(int(e.X), int(e.Y))
			ht, hs := l.toolAt(p, len(toolButtons)), l.shortcutAt(p, labels)
			if ht != hoverTool || hs != hoverShortcut {
				hoverTool, hoverShortcut = ht, hs
				w.Send(paint.Event{})
			}
			in.HandleMouse(e)
			if e.Button != mouse.ButtonLeft || e.Direction != mouse.DirPress {
				continue
			}
			switch {
			case ht >= 0:
				toolButtons[ht].Activate()
			case hs >= 0:
				shortcuts[hs].Activate()
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if in.HandleKey(e) {
				continue
			}
			ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers}
			if e.Rune <= 0 {
				ks = KeyShortcut{Rune: e.Rune, Code: e.Code, Modifiers: e.Modifiers}
			}
			if action, ok := keyboardAction[ks]; ok {
				handleShortcut(action)
			}
		case error:
			log.Print(e)
		}
	}
	stopPaint()
}
