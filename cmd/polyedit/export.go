package main

import (
	"flag"
	"fmt"
	"image/color"

	"github.com/example/polyedit/internal/document"
)

// exportCmd converts a saved document to another format.
type exportCmd struct {
	file   string
	output string
	format string
	width  int
	height int
	margin int
	*root
	fs *flag.FlagSet
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "document to read (json or geojson)")
	fs.StringVar(&e.output, "output", "", "file to write, or - for stdout")
	fs.StringVar(&e.format, "format", "", "output format (json, geojson, png); defaults to the -output extension")
	fs.IntVar(&e.width, "width", 0, "png width in pixels (0 fits the polygons)")
	fs.IntVar(&e.height, "height", 0, "png height in pixels (0 fits the polygons)")
	fs.IntVar(&e.margin, "margin", 20, "png margin around fitted polygons")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.file == "" || e.output == "" {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *exportCmd) renderOptions() document.RenderOptions {
	opts := document.RenderOptions{Width: e.width, Height: e.height, Margin: e.margin}
	if t := e.root.activeTheme; t != nil {
		opts.Background = color.NRGBA(t.CanvasBackground)
		opts.Fill = color.NRGBA(t.PolygonFill)
		opts.Stroke = color.NRGBA(t.PolygonStroke)
	}
	return opts
}

func (e *exportCmd) Run() error {
	polys, err := document.Load(e.file)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	format := document.FormatFromPath(e.output)
	if e.format != "" {
		if format, err = document.ParseFormat(e.format); err != nil {
			return err
		}
	}
	if e.output == "-" {
		return document.Encode(e.root.out(), polys, format, e.renderOptions())
	}
	if e.format != "" && format != document.FormatFromPath(e.output) {
		return fmt.Errorf("-format %s does not match the extension of %s", format, e.output)
	}
	if err := document.Save(e.output, polys, e.renderOptions()); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	e.root.notifier.Save(e.output)
	fmt.Fprintf(e.root.out(), "wrote %d polygons to %s\n", len(polys), e.output)
	return nil
}
