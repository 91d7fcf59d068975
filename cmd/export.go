package cmd

import (
	"fmt"

	"github.com/SimoneSapienza/dev-wrapped/core"
	"github.com/SimoneSapienza/dev-wrapped/internal/contract"
	"github.com/SimoneSapienza/dev-wrapped/internal/iocache"
	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportBackendFromViper reads and validates the export backend settings.
func exportBackendFromViper() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}
	initMinimalLogger()

	backend := schema.DatabaseBackend(viper.GetString("export-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("export-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// exportSetup loads minimal configuration and opens the export store.
func exportSetup() error {
	backend, connStr, err := exportBackendFromViper()
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config (no activity cache for export commands)
	if err := iocache.InitCaching("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize export store: %w", err)
	}

	cfg.ExportBackend = backend
	cfg.ExportDBConnect = connStr
	return nil
}

// exportSetupWrapper wraps exportSetup to provide PreRunE for export commands.
func exportSetupWrapper(_ *cobra.Command, _ []string) error {
	return exportSetup()
}

// exportRawSetup loads the export settings without opening the store.
// This lets migrate run against a fresh database and clear remove the file unopened.
func exportRawSetup() error {
	backend, connStr, err := exportBackendFromViper()
	if err != nil {
		return err
	}
	cfg.ExportBackend = backend
	cfg.ExportDBConnect = connStr
	return nil
}

// exportRawSetupWrapper wraps exportRawSetup to provide PreRunE for migrate and clear.
func exportRawSetupWrapper(_ *cobra.Command, _ []string) error {
	return exportRawSetup()
}

// exportCmd focused on yearly snapshot exports.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Manage yearly snapshot exports",
	Long: `Write the merged statistics of a year into a database for BI tools.

Each export stores:
- One headline row per year (totals, providers, export time)
- One row per statistics bucket (field, key, value)

Exporting a year again replaces its rows. Nothing is ever read back into a report.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  run     - Collect a year and export it
  status  - Show exported years and table sizes
  clear   - Remove every exported snapshot
  migrate - Run database schema migrations

Examples:
  # Export 2024 to the default SQLite file
  devwrapped export run --year 2024 --export-backend sqlite

  # Check what was exported
  devwrapped export status --export-backend sqlite`,
}

// exportRunCmd collects a year and saves its snapshot.
var exportRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect a year and write its snapshot to the export store",
	Long: `Collect one calendar year from every configured provider and replace its snapshot.

Requires: --export-backend other than none

Examples:
  # Export the current year to MySQL
  DEVWRAPPED_EXPORT_DB_CONNECT="user:pw@tcp(db:3306)/wrapped" devwrapped export run --export-backend mysql`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Failed to export snapshot", err)
		}
	},
}

// exportStatusCmd shows export store status.
var exportStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display exported years and table sizes",
	Long: `Show the state of the export store.

Displays:
- Backend type and connection status
- Current schema version
- Exported years and the time of the last export
- Row count of every table

Examples:
  devwrapped export status --export-backend sqlite`,
	PreRunE: exportSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetExportStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get export status", err)
		}
		iocache.PrintExportStatus(status)
	},
}

// exportClearCmd removes every snapshot.
var exportClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every exported snapshot",
	Long: `Delete all exported snapshots from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the snapshot, bucket and migration tables

Examples:
  devwrapped export clear --export-backend sqlite`,
	PreRunE: exportRawSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearExport(cfg.ExportBackend, sqlitePath(cfg.ExportDBConnect, contract.GetExportDBFilePath()), cfg.ExportDBConnect); err != nil {
			contract.LogFatal("Failed to clear export store", err)
		}
		fmt.Println("Export store cleared successfully.")
	},
}

// exportMigrateCmd runs database migrations for the export store.
var exportMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the export store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  devwrapped export migrate --export-backend sqlite

  # Migrate to specific version
  devwrapped export migrate --export-backend sqlite --target-version 1

  # Rollback to the initial state
  devwrapped export migrate --export-backend sqlite --target-version 0`,
	PreRunE: exportRawSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateExport(cfg.ExportBackend, cfg.ExportDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
