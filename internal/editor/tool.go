package editor

import (
	"fmt"
	"strings"
)

// Tool selects how pointer input is interpreted.
type Tool int

const (
	ToolSelect Tool = iota
	ToolMove
	ToolClosestPoints
	ToolTriangle
	ToolSquare
	ToolHexagon
)

// DefaultTool is active when an editor is created.
const DefaultTool = ToolTriangle

var toolNames = [...]string{
	ToolSelect:        "select",
	ToolMove:          "move",
	ToolClosestPoints: "closest-points",
	ToolTriangle:      "triangle",
	ToolSquare:        "square",
	ToolHexagon:       "hexagon",
}

// Tools returns every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolSelect, ToolMove, ToolClosestPoints, ToolTriangle, ToolSquare, ToolHexagon}
}

// Valid reports whether t is one of the known tools.
func (t Tool) Valid() bool { return t >= ToolSelect && t <= ToolHexagon }

// IsShape reports whether t places a polygon on click.
func (t Tool) IsShape() bool {
	switch t {
	case ToolTriangle, ToolSquare, ToolHexagon:
		return true
	}
	return false
}

func (t Tool) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// Label is the toolbar caption for t.
func (t Tool) Label() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolMove:
		return "Move"
	case ToolClosestPoints:
		return "Closest"
	case ToolTriangle:
		return "Triangle"
	case ToolSquare:
		return "Square"
	case ToolHexagon:
		return "Hexagon"
	}
	return t.String()
}

// ParseTool resolves a tool by name. Matching ignores case and accepts
// "closest" and "closest_points" for the closest-points tool.
func ParseTool(name string) (Tool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "closest", "closest_points", "closestpoints":
		return ToolClosestPoints, nil
	}
	for i, s := range toolNames {
		if s == n {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}
