package cli

import (
	"encoding/json"
	"fmt"

	"github.com/nirmalgaihre/naamjap/internal/constants"
)

type DebugCmd struct {
	StorePath *DebugStorePathCmd `cmd:"" help:"Show storage file path."`
	DumpState *DebugDumpStateCmd `cmd:"" help:"Dump counting state as JSON."`
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDumpStateCmd struct{}

func (cmd *DebugDumpStateCmd) Run(ctx *Context) error {
	tr, err := ctx.openTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	snap := tr.Snapshot()
	history, err := tr.HistoryTail(constants.HistoryCap)
	if err != nil {
		return err
	}

	state := map[string]any{
		"settings":    snap.Settings,
		"mantras":     snap.Mantras,
		"session":     snap.Session,
		"lifetime":    snap.Lifetime,
		"closed_days": history,
	}

	jsonBytes, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
