package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/mod/modfile"
)

var infoCmd = cli.Command{
	Action: doInfo,
	Name:   "info",
	Usage:  "print build provenance parsed from this module's go.mod",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "modfile",
			Usage: "path to the go.mod to report on",
			Value: "go.mod",
		},
	},
}

func doInfo(c *cli.Context) error {
	path := c.String("modfile")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("hatstack info: reading %s: %w", path, err)
	}

	f, err := modfile.Parse(path, data, nil)
	if err != nil {
		return fmt.Errorf("hatstack info: parsing %s: %w", path, err)
	}

	fmt.Printf("hatstack %s\n", version)
	if f.Module != nil {
		fmt.Printf("module:  %s\n", f.Module.Mod.Path)
	}
	if f.Go != nil {
		fmt.Printf("go:      %s\n", f.Go.Version)
	}
	fmt.Println("requires:")
	for _, req := range f.Require {
		indirect := ""
		if req.Indirect {
			indirect = " // indirect"
		}
		fmt.Printf("  %s %s%s\n", req.Mod.Path, req.Mod.Version, indirect)
	}
	return nil
}
