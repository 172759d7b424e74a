package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/kolkov/hatstack"
)

var stressCmd = cli.Command{
	Action: doStress,
	Name:   "stress",
	Usage:  "launch concurrent pushers and poppers against a shared stack",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of pusher goroutines (an equal number of poppers is also launched)",
			Value: 8,
		},
		&cli.IntFlag{
			Name:  "ops",
			Usage: "pushes performed by each pusher",
			Value: 10000,
		},
		&cli.IntFlag{
			Name:  "capacity",
			Usage: "initial stack capacity",
			Value: 16,
		},
		&cli.BoolFlag{
			Name:  "wait-free",
			Usage: "enable the bounded-help wait-free backoff scheme",
		},
	},
}

func doStress(c *cli.Context) error {
	workers := c.Int("workers")
	ops := c.Int("ops")

	opts := []hatstack.Option{}
	if c.Bool("wait-free") {
		opts = append(opts, hatstack.WithWaitFree(true))
	}
	s := hatstack.New(c.Int("capacity"), opts...)
	defer s.Delete()

	start := time.Now()
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < ops; i++ {
				s.Push(w*ops + i)
			}
			return nil
		})
		g.Go(func() error {
			popped := 0
			for popped < ops {
				if _, empty := s.Pop(); !empty {
					popped++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	total := workers * ops
	fmt.Printf("pushed+popped %d items across %d workers in %s (%.0f ops/sec)\n",
		2*total, workers, elapsed, float64(2*total)/elapsed.Seconds())
	if h := s.HelpShift(); h > 0 {
		fmt.Printf("wait-free backoff escalated %d times\n", h)
	}
	return nil
}
