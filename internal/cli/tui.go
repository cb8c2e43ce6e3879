package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nirmalgaihre/naamjap/internal/chime"
	"github.com/nirmalgaihre/naamjap/internal/tracker"
	"github.com/nirmalgaihre/naamjap/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	// Audio feedback stays on; the terminal bell works under bubbletea
	tr, err := tracker.New(ctx.Store, tracker.WithNotifier(chime.NewTerminal()))
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(tr), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
