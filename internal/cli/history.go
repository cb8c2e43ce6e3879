package cli

import (
	"fmt"

	"github.com/nirmalgaihre/naamjap/internal/constants"
)

type HistoryCmd struct {
	Limit int `short:"n" default:"5" help:"Number of recent days to show."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if c.Limit < 1 {
		c.Limit = constants.DefaultHistoryTail
	}

	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	snap := tr.Snapshot()
	fmt.Printf("Today       %6d chants  %3d malas (in progress)\n", snap.TodayChants, snap.TodayMalas)

	tail, err := tr.HistoryTail(c.Limit)
	if err != nil {
		return err
	}
	if len(tail) == 0 {
		fmt.Println("No earlier days recorded")
		return nil
	}
	for _, entry := range tail {
		fmt.Println(formatDay(entry))
	}
	return nil
}
