package driver

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/example/polyedit/internal/document"
	"github.com/example/polyedit/internal/editor"
	"github.com/example/polyedit/internal/geometry"
)

// Script runs the line protocol used by the headless script command:
//
//	tool <name>      activate a tool by name
//	key <rune>       press a key, e.g. "key 3"
//	move <x> <y>     move the pointer to a canvas position
//	move out         move the pointer off the canvas
//	down | up        primary button press or release
//	click            press and release
//	leave            pointer leaves the canvas
//	dump             print the document as JSON
//	closest          print the closest boundary points
//	preview          print the placement preview
//	state            print a one line summary
//	quit             stop reading
type Script struct {
	d   *Driver
	out io.Writer
}

// NewScript returns a Script that drives d and prints to out.
func NewScript(d *Driver, out io.Writer) *Script {
	return &Script{d: d, out: out}
}

// Run executes every line from r. It stops at the first error or quit.
func (s *Script) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		done, err := s.Exec(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

// Exec executes a single line. Blank lines and # comments are ignored.
// done reports a quit command.
func (s *Script) Exec(line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	args := strings.Fields(line)
	cmd, args := strings.ToLower(args[0]), args[1:]
	ed := s.d.Editor()
	switch cmd {
	case "tool":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: tool <name>")
		}
		t, err := editor.ParseTool(args[0])
		if err != nil {
			return false, err
		}
		s.d.SelectTool(t)
	case "key":
		if len(args) != 1 || len([]rune(args[0])) != 1 {
			return false, fmt.Errorf("usage: key <rune>")
		}
		s.d.Key([]rune(args[0])[0], 0)
	case "move":
		if len(args) == 1 && strings.EqualFold(args[0], "out") {
			s.d.Exit()
			return false, nil
		}
		if len(args) != 2 {
			return false, fmt.Errorf("usage: move <x> <y> | move out")
		}
		x, err := geometry.ParseCoord(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid x: %w", err)
		}
		y, err := geometry.ParseCoord(args[1])
		if err != nil {
			return false, fmt.Errorf("invalid y: %w", err)
		}
		s.d.Move(geometry.Pt(x, y))
	case "down":
		s.d.Press()
	case "up":
		s.d.Release()
	case "click":
		s.d.Click()
	case "leave":
		s.d.Exit()
	case "dump":
		return false, document.EncodeExport(s.out, ed.Export())
	case "closest":
		for i, p := range ed.ClosestPoints() {
			fmt.Fprintf(s.out, "%d %s\n", i, geometry.FormatPoint(p))
		}
	case "preview":
		p, ok := ed.PlacementPreview()
		if !ok {
			fmt.Fprintln(s.out, "none")
			return false, nil
		}
		fmt.Fprintln(s.out, p.String())
	case "state":
		fmt.Fprintln(s.out, Summary(ed))
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	return false, nil
}

// Summary describes the editor state on one line.
func Summary(ed *editor.Editor) string {
	pointer := "none"
	if p, ok := ed.Pointer(); ok {
		pointer = geometry.FormatPoint(p)
	}
	return fmt.Sprintf("tool=%s polygons=%d selected=%d dragging=%d pointer=%s",
		ed.ActiveTool(), ed.Len(), ed.SelectedIndex(), ed.Dragging(), pointer)
}
