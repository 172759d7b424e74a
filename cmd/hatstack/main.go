// Command hatstack is a demo and stress-test harness for the hatstack
// library: a small CLI exercising push/pop, concurrent stress, view
// snapshots, and build provenance reporting.
//
// Usage:
//
//	hatstack push-pop [-n count]
//	hatstack stress [-workers n] [-ops n] [-wait-free]
//	hatstack view [-n count]
//	hatstack info
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const version = "0.1.0"

func main() {
	app := &cli.App{
		Name:    "hatstack",
		Usage:   "demo and stress-test harness for the hatstack library",
		Version: version,
		Commands: []*cli.Command{
			&pushPopCmd,
			&stressCmd,
			&viewCmd,
			&infoCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
