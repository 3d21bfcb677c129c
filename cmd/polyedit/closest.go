package main

import (
	"flag"
	"fmt"

	"github.com/example/polyedit/internal/geometry"
)

// closestCmd prints the nearest boundary point of a polygon.
type closestCmd struct {
	polygon string
	target  string
	*root
	fs *flag.FlagSet
}

func (c *closestCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseClosestCmd(args []string, r *root) (*closestCmd, error) {
	fs := flag.NewFlagSet("closest", flag.ExitOnError)
	c := &closestCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.polygon, "polygon", "", `polygon vertices as "x,y x,y ..."`)
	fs.StringVar(&c.target, "target", "", "target point as x,y")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.polygon == "" || c.target == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *closestCmd) Run() error {
	poly, err := geometry.ParsePolygon(c.polygon)
	if err != nil {
		return fmt.Errorf("invalid -polygon: %w", err)
	}
	target, err := geometry.ParsePoint(c.target)
	if err != nil {
		return fmt.Errorf("invalid -target: %w", err)
	}
	p := geometry.ClosestPointOnSimplePolygonToTarget(poly, target)
	_, err = fmt.Fprintln(c.root.out(), geometry.FormatPoint(p))
	return err
}
