// Package editor implements the polygon editing state machine: tool
// selection, shape placement, drag translation and selection, plus the
// derived closest-point and placement-preview reads.
//
// An Editor is not safe for concurrent use. Hosts mutate it from a single
// event goroutine and hand Snapshot values to anything that draws.
package editor

import (
	"log/slog"

	"github.com/example/polyedit/internal/geometry"
)

// Editor holds the document and transient interaction state of one session.
type Editor struct {
	tool       Tool
	polygons   []geometry.Polygon
	selected   int
	pointer    geometry.Point
	hasPointer bool
	drag       *dragState

	listeners []listener
	nextID    uint64
	log       *slog.Logger
}

type dragState struct {
	index int
	// offsets[i] is vertex i minus the pointer position at drag start.
	offsets []geometry.Point
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithTool sets the initially active tool. Unknown tools are ignored.
func WithTool(t Tool) Option {
	return func(e *Editor) {
		if t.Valid() {
			e.tool = t
		}
	}
}

// WithPolygons seeds the document with deep copies of polys.
func WithPolygons(polys []geometry.Polygon) Option {
	return func(e *Editor) {
		e.polygons = make([]geometry.Polygon, 0, len(polys))
		for _, p := range polys {
			e.polygons = append(e.polygons, geometry.ClonePolygon(p))
		}
	}
}

// WithLogger attaches a structured logger. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l == nil {
			l = newNopLogger()
		}
		e.log = l
	}
}

// New creates an Editor with an empty document and the default tool.
func New(opts ...Option) *Editor {
	e := &Editor{
		tool:     DefaultTool,
		selected: -1,
		log:      newNopLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Editor) valid(i int) bool { return i >= 0 && i < len(e.polygons) }

// SetActiveTool switches the active tool. Leaving select clears the
// selection and any switch ends an in-progress drag.
func (e *Editor) SetActiveTool(t Tool) {
	if !t.Valid() {
		return
	}
	changed := e.tool != t || e.drag != nil
	e.tool = t
	e.drag = nil
	if t != ToolSelect && e.selected != -1 {
		e.selected = -1
		changed = true
	}
	if changed {
		e.log.Debug("tool changed", "tool", t.String())
		e.emit(OpSetTool)
	}
}

// PointerMove records the pointer position, or its absence when present is
// false. While dragging under the move tool the dragged polygon follows the
// pointer. A position with a NaN or infinite coordinate is ignored.
func (e *Editor) PointerMove(p geometry.Point, present bool) {
	if present && !geometry.Finite(p) {
		e.log.Debug("non-finite pointer ignored", "x", p.X, "y", p.Y)
		return
	}
	changed := e.hasPointer != present || (present && e.pointer != p)
	e.hasPointer = present
	if present {
		e.pointer = p
	} else {
		e.pointer = geometry.Point{}
	}
	if present && e.tool == ToolMove && e.drag != nil && e.valid(e.drag.index) {
		poly := e.polygons[e.drag.index]
		n := min(len(e.drag.offsets), len(poly))
		for i := 0; i < n; i++ {
			v := e.drag.offsets[i].Plus(p)
			if poly[i] != v {
				poly[i] = v
				changed = true
			}
		}
	}
	if changed {
		e.emit(OpPointerMove)
	}
}

// PointerDown starts dragging polygon hit under the move tool. Other tools
// ignore it. Without a pointer any drag is cleared; a miss does nothing.
func (e *Editor) PointerDown(hit int) {
	if e.tool != ToolMove {
		return
	}
	if !e.hasPointer {
		if e.drag != nil {
			e.drag = nil
			e.emit(OpPointerDown)
		}
		return
	}
	if !e.valid(hit) {
		return
	}
	poly := e.polygons[hit]
	offsets := make([]geometry.Point, len(poly))
	for i, v := range poly {
		offsets[i] = v.Minus(e.pointer)
	}
	e.drag = &dragState{index: hit, offsets: offsets}
	e.log.Debug("drag started", "index", hit)
	e.emit(OpPointerDown)
}

// PointerUp ends any drag.
func (e *Editor) PointerUp() {
	if e.drag == nil {
		return
	}
	e.log.Debug("drag finished", "index", e.drag.index)
	e.drag = nil
	e.emit(OpPointerUp)
}

// PointerLeaveCanvas forgets the pointer and ends any drag.
func (e *Editor) PointerLeaveCanvas() {
	if e.drag == nil && !e.hasPointer {
		return
	}
	e.drag = nil
	e.hasPointer = false
	e.pointer = geometry.Point{}
	e.emit(OpLeaveCanvas)
}

// Click applies a completed click. Under select a valid hit becomes the
// selection and a miss keeps it; shape tools append the placement preview.
func (e *Editor) Click(hit int) {
	switch {
	case e.tool == ToolSelect:
		if !e.valid(hit) || e.selected == hit {
			return
		}
		e.selected = hit
		e.log.Debug("polygon selected", "index", hit)
		e.emit(OpClick)
	case e.tool.IsShape():
		preview, ok := e.PlacementPreview()
		if !ok {
			return
		}
		e.polygons = append(e.polygons, preview)
		e.log.Debug("polygon placed", "index", len(e.polygons)-1, "tool", e.tool.String())
		e.emit(OpClick)
	}
}

// ClosestPoints returns one boundary point per polygon nearest the pointer
// while the closest-points tool is active and a pointer is present.
// Otherwise it returns nil.
func (e *Editor) ClosestPoints() []geometry.Point {
	if e.tool != ToolClosestPoints || !e.hasPointer {
		return nil
	}
	out := make([]geometry.Point, len(e.polygons))
	for i, p := range e.polygons {
		out[i] = geometry.ClosestPointOnSimplePolygonToTarget(p, e.pointer)
	}
	return out
}

// PlacementPreview returns the active shape template translated to the
// pointer. It reports false for non-shape tools or when no pointer is present.
func (e *Editor) PlacementPreview() (geometry.Polygon, bool) {
	if !e.hasPointer {
		return nil, false
	}
	tmpl, ok := templates[e.tool]
	if !ok {
		return nil, false
	}
	return tmpl.Translate(e.pointer), true
}

// HitTest returns the index of the topmost polygon containing p, or -1.
func (e *Editor) HitTest(p geometry.Point) int {
	for i := len(e.polygons) - 1; i >= 0; i-- {
		if e.polygons[i].Contains(p) {
			return i
		}
	}
	return -1
}

// ActiveTool returns the current tool.
func (e *Editor) ActiveTool() Tool { return e.tool }

// SelectedIndex returns the selected polygon or -1.
func (e *Editor) SelectedIndex() int { return e.selected }

// Pointer returns the last pointer position and whether one is present.
func (e *Editor) Pointer() (geometry.Point, bool) { return e.pointer, e.hasPointer }

// Dragging returns the index of the polygon being dragged, or -1.
func (e *Editor) Dragging() int {
	if e.drag == nil {
		return -1
	}
	return e.drag.index
}

// Len returns the number of polygons in the document.
func (e *Editor) Len() int { return len(e.polygons) }

// Polygon returns a copy of polygon i.
func (e *Editor) Polygon(i int) (geometry.Polygon, bool) {
	if !e.valid(i) {
		return nil, false
	}
	return geometry.ClonePolygon(e.polygons[i]), true
}

// Polygons returns a deep copy of the document in z-order.
func (e *Editor) Polygons() []geometry.Polygon {
	out := make([]geometry.Polygon, len(e.polygons))
	for i, p := range e.polygons {
		out[i] = geometry.ClonePolygon(p)
	}
	return out
}

// Export returns the document as nested [x, y] arrays in z-order.
func (e *Editor) Export() [][][2]float64 { return geometry.Rings(e.polygons) }

// Snapshot is an immutable copy of everything needed to draw the editor.
type Snapshot struct {
	Tool          Tool
	Polygons      []geometry.Polygon
	Selected      int
	Dragging      int
	Pointer       geometry.Point
	HasPointer    bool
	ClosestPoints []geometry.Point
	Preview       geometry.Polygon
}

// Snapshot captures the current state, including derived values.
func (e *Editor) Snapshot() Snapshot {
	preview, _ := e.PlacementPreview()
	return Snapshot{
		Tool:          e.tool,
		Polygons:      e.Polygons(),
		Selected:      e.selected,
		Dragging:      e.Dragging(),
		Pointer:       e.pointer,
		HasPointer:    e.hasPointer,
		ClosestPoints: e.ClosestPoints(),
		Preview:       preview,
	}
}
