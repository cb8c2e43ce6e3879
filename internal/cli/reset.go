package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type ResetSessionCmd struct {
	Force bool `short:"f" help:"Skip the confirmation prompt."`
}

func (c *ResetSessionCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	snap := tr.Snapshot()
	if snap.TodayChants == 0 {
		fmt.Println("Nothing to reset: no chants recorded today")
		return nil
	}

	if !c.Force {
		prompt := fmt.Sprintf("Discard today's %s?", plural(snap.TodayChants, "chant"))
		ok, err := confirm(prompt, "This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := tr.ResetSession(); err != nil {
		return err
	}
	fmt.Println("Today's count reset to 0")
	return nil
}

type ResetAllCmd struct {
	Force bool `short:"f" help:"Skip the confirmation prompts."`
}

func (c *ResetAllCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	// Destroying the full history takes two separate confirmations
	if !c.Force {
		ok, err := confirm("Reset ALL data?", "Session, history, and lifetime totals will be erased. Settings and mantras are kept.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled")
			return nil
		}
		ok, err = confirm("Are you absolutely sure?", "There is no way to recover erased history without a backup.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := tr.ResetAllData(); err != nil {
		return err
	}
	fmt.Println("All counting data erased")
	return nil
}

func confirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
