package cli

import (
	"fmt"

	"github.com/nirmalgaihre/naamjap/internal/chime"
	"github.com/nirmalgaihre/naamjap/internal/models"
	"github.com/nirmalgaihre/naamjap/internal/storage"
	"github.com/nirmalgaihre/naamjap/internal/tracker"
)

// Context carries the shared dependencies into every command's Run.
type Context struct {
	Store storage.Provider
}

// openTracker loads the store and builds the tracker every command
// mutates or reads through. The terminal notifier rings the completion
// chime for commands that count.
func (ctx *Context) openTracker() (*tracker.Tracker, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, err
	}
	return tracker.New(ctx.Store, tracker.WithNotifier(chime.NewTerminal()))
}

func formatDay(entry models.HistoryEntry) string {
	return fmt.Sprintf("%s  %6d chants  %3d malas", entry.Date, entry.Chants, entry.Malas)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
