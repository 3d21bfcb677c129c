package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/example/polyedit/internal/document"
	"github.com/example/polyedit/internal/driver"
	"github.com/example/polyedit/internal/editor"
	"github.com/example/polyedit/internal/geometry"
)

// scriptCanvas is the canvas size used by headless scripts. Script
// coordinates are canvas coordinates, so only the extent matters.
const scriptCanvas = 4096

// scriptCmd drives an editor from a command script.
type scriptCmd struct {
	file   string
	input  string
	output string
	tool   string
	stdin  io.Reader
	*root
	fs *flag.FlagSet
}

func (s *scriptCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseScriptCmd(args []string, r *root) (*scriptCmd, error) {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	s := &scriptCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(s)
	defTool := editor.DefaultTool.String()
	if r != nil && r.config != nil && r.config.Tool != "" {
		defTool = r.config.Tool
	}
	fs.StringVar(&s.file, "file", "", "script to run (defaults to stdin)")
	fs.StringVar(&s.input, "input", "", "document to load before running")
	fs.StringVar(&s.output, "output", "", "save the resulting document here")
	fs.StringVar(&s.tool, "tool", defTool, "initially active tool")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: s}
	}
	return s, nil
}

func (s *scriptCmd) Run() error {
	tool, err := editor.ParseTool(s.tool)
	if err != nil {
		return err
	}
	var polys []geometry.Polygon
	if s.input != "" {
		if polys, err = document.Load(s.input); err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}
	}
	ed := editor.New(
		editor.WithTool(tool),
		editor.WithPolygons(polys),
		editor.WithLogger(s.root.logger()),
	)

	in := s.stdin
	if s.file != "" {
		f, err := os.Open(s.file)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	d := driver.New(ed, image.Rect(0, 0, scriptCanvas, scriptCanvas))
	if err := driver.NewScript(d, s.root.out()).Run(in); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	if s.output == "" {
		return nil
	}
	if err := document.Save(s.output, ed.Polygons(), document.RenderOptions{}); err != nil {
		return err
	}
	s.root.notifier.Save(s.output)
	return nil
}
