package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/impact/internal/contract"
	"github.com/huangsam/impact/internal/iocache"
	"github.com/huangsam/impact/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfig loads the store settings only. Maintenance commands skip the
// repository lookup and the rest of sharedSetup.
func storeConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeOnlySetup loads the store settings and opens the store.
func storeOnlySetup(_ *cobra.Command, _ []string) error {
	if err := storeConfig(); err != nil {
		return err
	}
	if err := iocache.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

// sqlitePath is the database file of the SQLite backend.
func sqlitePath() string {
	if cfg.StoreDBConnect != "" {
		return cfg.StoreDBConnect
	}
	return contract.GetDBFilePath()
}

// statusCmd shows store status.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend of the contributor store, whether it is reachable, and every
indexed (repository, branch) snapshot with its author count and index time.

Examples:
  impact status
  IMPACT_STORE_BACKEND=postgresql IMPACT_STORE_DB_CONNECT="..." impact status`,
	Args:    cobra.NoArgs,
	PreRunE: storeOnlySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetContributorStore().GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintStatus(os.Stdout, status)
	},
}

// clearCmd removes one repository or the whole store.
var clearCmd = &cobra.Command{
	Use:   "clear [repo-name]",
	Short: "Remove indexed data of one repository or of every repository",
	Long: `Delete indexed snapshots from the configured backend.

With a repository name, every branch of that repository is removed. Without
one, the whole store is dropped:

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the store tables

Examples:
  # Forget one repository
  impact clear widgets

  # Drop everything
  impact clear`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return storeConfig()
		}
		return storeOnlySetup(cmd, args)
	},
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 1 {
			if err := iocache.Manager.GetContributorStore().ClearRepo(rootCtx, args[0]); err != nil {
				contract.LogFatal("Failed to clear repository", err)
			}
			fmt.Printf("Cleared %s.\n", args[0])
			return
		}
		if err := iocache.ClearStore(cfg.StoreBackend, sqlitePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// exportCmd exports the store to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every snapshot to Parquet for BI tools and analytics",
	Long: `Export all stored snapshots to Parquet format for use with analytics tools.

Exports two datasets next to --output-file:
- <output-file>.branches.parquet - one row per indexed (repository, branch)
- <output-file>.authors.parquet - one row per author of every snapshot

Examples:
  impact export --output-file impact
  duckdb -c "SELECT * FROM read_parquet('impact.authors.parquet') LIMIT 10"`,
	Args:    cobra.NoArgs,
	PreRunE: storeOnlySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteExport(rootCtx, os.Stdout, iocache.Manager.GetContributorStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store", err)
		}
	},
}

// migrateCmd runs database migrations for the store.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions of the contributor store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  impact migrate

  # Rollback everything
  impact migrate --target-version 0`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations run on a store that may not have any tables yet
		return storeConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateStore(os.Stdout, cfg.StoreBackend, cfg.StoreDBConnect, viper.GetInt("target-version")); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
