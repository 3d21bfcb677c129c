package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/example/polyedit/internal/appstate"
	"github.com/example/polyedit/internal/document"
	"github.com/example/polyedit/internal/editor"
	"github.com/example/polyedit/internal/geometry"
)

const defaultDocument = "polygons.json"

// editCmd opens the editor window.
type editCmd struct {
	file   string
	output string
	tool   string
	width  int
	height int
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	defTool := editor.DefaultTool.String()
	if r != nil && r.config != nil && r.config.Tool != "" {
		defTool = r.config.Tool
	}
	fs.StringVar(&e.file, "file", "", "document to open (json or geojson)")
	fs.StringVar(&e.output, "output", "", "path written by Ctrl+S (defaults to -file, then save_dir/"+defaultDocument+")")
	fs.StringVar(&e.tool, "tool", defTool, "initially active tool")
	fs.IntVar(&e.width, "width", 800, "window width")
	fs.IntVar(&e.height, "height", 600, "window height")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

// outputPath picks where Ctrl+S writes.
func (e *editCmd) outputPath() string {
	if e.output != "" {
		return e.output
	}
	if e.file != "" {
		return e.file
	}
	if e.root != nil && e.root.config != nil && e.root.config.SaveDir != "" {
		return filepath.Join(e.root.config.SaveDir, defaultDocument)
	}
	return defaultDocument
}

// newEditor builds the session editor from the flags.
func (e *editCmd) newEditor() (*editor.Editor, error) {
	tool, err := editor.ParseTool(e.tool)
	if err != nil {
		return nil, err
	}
	var polys []geometry.Polygon
	if e.file != "" {
		polys, err = document.Load(e.file)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("%s does not exist yet, starting empty", e.file)
		case err != nil:
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
	}
	return editor.New(
		editor.WithTool(tool),
		editor.WithPolygons(polys),
		editor.WithLogger(e.root.logger()),
	), nil
}

func (e *editCmd) Run() error {
	ed, err := e.newEditor()
	if err != nil {
		return err
	}
	output := e.outputPath()
	st := appstate.New(
		appstate.WithEditor(ed),
		appstate.WithOutput(output),
		appstate.WithTheme(e.root.activeTheme),
		appstate.WithNotifier(e.root.notifier),
		appstate.WithSize(e.width, e.height),
		appstate.WithTitle(windowTitle(titleOptions{File: output, Mode: ed.ActiveTool().Label()})),
	)
	st.Run()
	return nil
}
