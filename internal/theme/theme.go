package theme

import (
	"image/color"
	"reflect"
)

// Theme defines the color palette for the editor window and its canvas.
type Theme struct {
	Name string

	// Chrome
	Background        color.RGBA // Window background behind toolbar and status bar
	Foreground        color.RGBA // Status text
	ToolbarBackground color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CanvasBackground color.RGBA
	PolygonFill      color.RGBA
	PolygonStroke    color.RGBA
	SelectedStroke   color.RGBA
	DragStroke       color.RGBA
	PreviewFill      color.RGBA
	PreviewStroke    color.RGBA
	ClosestPoint     color.RGBA
	ClosestLine      color.RGBA
}

// Default returns the hardcoded light theme used when nothing else loads.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CanvasBackground:      color.RGBA{255, 255, 255, 255},
		PolygonFill:           color.RGBA{70, 130, 180, 120},
		PolygonStroke:         color.RGBA{25, 25, 112, 255},
		SelectedStroke:        color.RGBA{255, 140, 0, 255},
		DragStroke:            color.RGBA{34, 139, 34, 255},
		PreviewFill:           color.RGBA{128, 128, 128, 60},
		PreviewStroke:         color.RGBA{96, 96, 96, 200},
		ClosestPoint:          color.RGBA{220, 20, 60, 255},
		ClosestLine:           color.RGBA{220, 20, 60, 140},
	}
}

var rgbaType = reflect.TypeOf(color.RGBA{})

// ColorFields lists the names of every color in a Theme in declaration order.
func ColorFields() []string {
	typ := reflect.TypeOf(Theme{})
	var out []string
	for i := 0; i < typ.NumField(); i++ {
		if f := typ.Field(i); f.Type == rgbaType {
			out = append(out, f.Name)
		}
	}
	return out
}

// Color returns the named color field.
func (t *Theme) Color(field string) (color.RGBA, bool) {
	v := reflect.ValueOf(t).Elem().FieldByName(field)
	if !v.IsValid() || v.Type() != rgbaType {
		return color.RGBA{}, false
	}
	return v.Interface().(color.RGBA), true
}
