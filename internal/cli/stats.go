package cli

import (
	"fmt"

	"github.com/nirmalgaihre/naamjap/internal/stats"
)

type StatsCmd struct {
	Window string `arg:"" optional:"" default:"all" help:"Window to report: today, 7d, 15d, 30d, 90d, year, lifetime, or all."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	windows := stats.Windows()
	if c.Window != "all" {
		w, err := stats.ParseWindow(c.Window)
		if err != nil {
			return err
		}
		windows = []stats.Window{w}
	}

	snap := tr.Snapshot()
	fmt.Printf("Mantra: %s\n\n", snap.ActiveMantra.Text)

	for _, w := range windows {
		totals, err := tr.Stats(w)
		if err != nil {
			return err
		}
		avg := totals.Chants / totals.Days
		fmt.Printf("%-10s %8d chants  %5d malas  (avg %d/day)\n",
			totals.Label, totals.Chants, totals.Malas, avg)
	}
	return nil
}
