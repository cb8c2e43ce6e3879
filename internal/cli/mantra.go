package cli

import (
	"fmt"
	"strings"
)

type MantraListCmd struct{}

func (c *MantraListCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	snap := tr.Snapshot()
	fmt.Println("Mantras:")
	for _, m := range snap.Mantras {
		marker := " "
		if m.ID == snap.Settings.SelectedMantraID {
			marker = "*"
		}
		kind := "built-in"
		if m.IsCustom {
			kind = "custom"
		}
		fmt.Printf("  %s %-38s %s (%s)\n", marker, m.ID, m.Text, kind)
	}
	return nil
}

type MantraAddCmd struct {
	Text []string `arg:"" help:"Mantra text."`
}

func (c *MantraAddCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	mantra, err := tr.AddMantra(strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	fmt.Printf("Added and selected: %s (%s)\n", mantra.Text, mantra.ID)
	return nil
}

type MantraSelectCmd struct {
	ID string `arg:"" help:"ID of the mantra to chant."`
}

func (c *MantraSelectCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := tr.SelectMantra(c.ID); err != nil {
		return err
	}
	fmt.Printf("Selected: %s\n", tr.Snapshot().ActiveMantra.Text)
	return nil
}

type MantraDeleteCmd struct {
	ID string `arg:"" help:"ID of the custom mantra to delete."`
}

func (c *MantraDeleteCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := tr.DeleteMantra(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted mantra %s\n", c.ID)
	return nil
}
