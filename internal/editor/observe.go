package editor

// Op names the operation that produced a Change.
type Op string

const (
	OpSetTool     Op = "set-tool"
	OpPointerMove Op = "pointer-move"
	OpPointerDown Op = "pointer-down"
	OpPointerUp   Op = "pointer-up"
	OpLeaveCanvas Op = "leave-canvas"
	OpClick       Op = "click"
)

// Change is delivered to subscribers after a mutation altered the state.
type Change struct {
	Op Op
}

type listener struct {
	id uint64
	fn func(Change)
}

// Subscription allows removing a registered listener.
type Subscription struct {
	id uint64
	ed *Editor
}

// Remove unregisters the listener. Calling it more than once is harmless.
func (s Subscription) Remove() {
	if s.ed == nil {
		return
	}
	ls := s.ed.listeners
	for i, l := range ls {
		if l.id == s.id {
			s.ed.listeners = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Subscribe registers fn to run synchronously after every mutation that
// changes the editor state.
func (e *Editor) Subscribe(fn func(Change)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	e.nextID++
	e.listeners = append(e.listeners, listener{id: e.nextID, fn: fn})
	return Subscription{id: e.nextID, ed: e}
}

func (e *Editor) emit(op Op) {
	if len(e.listeners) == 0 {
		return
	}
	// Listeners may unsubscribe while being notified.
	ls := append([]listener(nil), e.listeners...)
	c := Change{Op: op}
	for _, l := range ls {
		l.fn(c)
	}
}
