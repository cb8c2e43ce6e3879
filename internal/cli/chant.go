package cli

import (
	"fmt"

	"github.com/nirmalgaihre/naamjap/internal/tracker"
)

type ChantCmd struct {
	Count int `arg:"" optional:"" default:"1" help:"Number of chants to record."`
}

func (c *ChantCmd) Run(ctx *Context) error {
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	var res tracker.TapResult
	completed := 0
	for i := 0; i < c.Count; i++ {
		if res, err = tr.Increment(); err != nil {
			return err
		}
		if res.MalaCompleted {
			completed++
		}
	}

	fmt.Printf("%s\n", res.ActiveMantra.Text)
	fmt.Printf("Today: %s, %s (showing %d of %d)\n",
		plural(res.TodayChants, "chant"), plural(res.TodayMalas, "mala"),
		res.Display, res.Settings.TargetCount)
	if completed > 0 {
		fmt.Printf("🙏 Completed %s!\n", plural(completed, "mala"))
	}
	return nil
}
