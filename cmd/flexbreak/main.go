// Package main is the single-binary entrypoint for FlexBreak:
// the gamified progress engine behind desk-stretch routines.
package main

import "github.com/crisnc100/flexbreak/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
