package main

import "fmt"

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	_, err := fmt.Fprintf(v.r.out(), "%s version %s\n", v.r.program, version)
	return err
}
