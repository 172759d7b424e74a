package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kolkov/hatstack"
)

var pushPopCmd = cli.Command{
	Action: doPushPop,
	Name:   "push-pop",
	Usage:  "push then pop a sequence of integers, printing each result",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "n",
			Usage: "how many integers to push and pop",
			Value: 8,
		},
		&cli.IntFlag{
			Name:  "capacity",
			Usage: "initial stack capacity",
			Value: 4,
		},
	},
}

func doPushPop(c *cli.Context) error {
	n := c.Int("n")
	s := hatstack.New(c.Int("capacity"))
	defer s.Delete()

	for i := 0; i < n; i++ {
		s.Push(i)
		fmt.Printf("push %d\n", i)
	}
	for {
		item, empty := s.Pop()
		if empty {
			break
		}
		fmt.Printf("pop  %v\n", item)
	}
	return nil
}
