package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kolkov/hatstack"
)

var viewCmd = cli.Command{
	Action: doView,
	Name:   "view",
	Usage:  "push a sequence of integers, then print a consistent snapshot of the stack",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "n",
			Usage: "how many integers to push before snapshotting",
			Value: 8,
		},
		&cli.IntFlag{
			Name:  "capacity",
			Usage: "initial stack capacity",
			Value: 4,
		},
	},
}

func doView(c *cli.Context) error {
	n := c.Int("n")
	s := hatstack.New(c.Int("capacity"))
	defer s.Delete()

	for i := 0; i < n; i++ {
		s.Push(i)
	}

	v := s.View()
	defer v.Delete()

	fmt.Println("snapshot (top to bottom):")
	for {
		item, done := v.Next()
		if done {
			break
		}
		fmt.Printf("  %v\n", item)
	}
	return nil
}
