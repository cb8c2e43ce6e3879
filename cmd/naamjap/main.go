package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/nirmalgaihre/naamjap/internal/cli"
	"github.com/nirmalgaihre/naamjap/internal/constants"
	"github.com/nirmalgaihre/naamjap/internal/logger"
	"github.com/nirmalgaihre/naamjap/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init  cli.InitCmd  `cmd:"" help:"Initialize naamjap storage."`
	Tui   cli.TuiCmd   `cmd:"" help:"Launch the interactive counting screen." default:"1"`
	Chant cli.ChantCmd `cmd:"" help:"Record chants."`
	End   cli.EndCmd   `cmd:"" help:"Save the current session."`
	Stats cli.StatsCmd `cmd:"" help:"Show chanting statistics."`
	Chart cli.ChartCmd `cmd:"" help:"Export a statistics chart as HTML."`

	History cli.HistoryCmd `cmd:"" help:"Show recent days."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run storage diagnostics."`
	Debugs  cli.DebugCmd   `cmd:"" name:"dump" help:"Inspect internal state."`

	Mantra struct {
		List   cli.MantraListCmd   `cmd:"" help:"List all mantras."`
		Add    cli.MantraAddCmd    `cmd:"" help:"Add a custom mantra."`
		Select cli.MantraSelectCmd `cmd:"" help:"Choose the mantra to chant."`
		Delete cli.MantraDeleteCmd `cmd:"" help:"Delete a custom mantra."`
	} `cmd:"" help:"Manage mantras."`

	Settings struct {
		Show cli.SettingsShowCmd `cmd:"" default:"1" help:"Show current settings."`
		Set  cli.SettingsSetCmd  `cmd:"" help:"Change settings."`
	} `cmd:"" help:"Manage settings."`

	Reset struct {
		Session cli.ResetSessionCmd `cmd:"" help:"Discard today's count."`
		All     cli.ResetAllCmd     `cmd:"" help:"Erase all counting data."`
	} `cmd:"" help:"Reset counting data."`

	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the storage file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore storage from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Japa counter / mantra chanting companion"),
		kong.UsageOnError(),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(filepath.Dir(CLI.Config), CLI.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Storage flavor follows the file extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
