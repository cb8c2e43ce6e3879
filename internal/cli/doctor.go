package cli

import (
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/nirmalgaihre/naamjap/internal/backup"
	"github.com/nirmalgaihre/naamjap/internal/migration"
	"github.com/nirmalgaihre/naamjap/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	if isSQLiteStore(ctx) {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups: %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}

func isSQLiteStore(ctx *Context) bool {
	return !strings.HasSuffix(ctx.Store.GetConfigPath(), ".json")
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	mantras, err := ctx.Store.GetAllMantras()
	if err != nil {
		return err
	}
	if len(mantras) == 0 {
		return fmt.Errorf("mantra list is empty")
	}
	return nil
}

// checkSchemaVersion verifies the database schema matches the shipped
// migrations, catching a store written by a newer release.
func checkSchemaVersion(ctx *Context) error {
	db, err := sql.Open("sqlite", ctx.Store.GetConfigPath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}

	return migration.NewRunner(db, subFS).ValidateVersion()
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found (run 'naamjap backup create')")
	}
	if time.Since(backups[0].Timestamp) > 7*24*time.Hour {
		return fmt.Errorf("newest backup is older than a week")
	}
	return nil
}
