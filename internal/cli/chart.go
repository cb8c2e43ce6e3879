package cli

import (
	"fmt"
	"os"

	"github.com/nirmalgaihre/naamjap/internal/stats"
)

type ChartCmd struct {
	Window string `arg:"" optional:"" default:"7d" help:"Window to chart: today, 7d, 15d, 30d, 90d, year, lifetime."`
	Out    string `short:"o" default:"naamjap-chart.html" help:"Output HTML file." type:"path"`
}

func (c *ChartCmd) Run(ctx *Context) error {
	w, err := stats.ParseWindow(c.Window)
	if err != nil {
		return err
	}

	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	totals, err := tr.Stats(w)
	if err != nil {
		return err
	}
	series, err := tr.Series(w)
	if err != nil {
		return err
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	snap := tr.Snapshot()
	if err := stats.RenderChart(f, snap.ActiveMantra.Text, totals, series); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	fmt.Printf("Chart written to %s\n", c.Out)
	return nil
}
