package cli

import "fmt"

type EndCmd struct{}

func (c *EndCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := tr.EndSession(); err != nil {
		return err
	}

	snap := tr.Snapshot()
	fmt.Printf("Session saved: %s, %s today\n",
		plural(snap.TodayChants, "chant"), plural(snap.TodayMalas, "mala"))
	return nil
}
