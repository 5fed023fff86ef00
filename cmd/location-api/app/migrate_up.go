package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swcatalog/location-server/database"
	"github.com/swcatalog/location-server/pkg/logger"
)

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending database migrations",
	Long: `Apply all pending database migrations to bring the schema up to date.
The database connection parameters are read from the configuration file.`,
	RunE: runMigrateUp,
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	connString, err := migrationConnString(cmd)
	if err != nil {
		return err
	}

	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("failed to get yes flag: %w", err)
	}
	if !yes && !confirm("About to apply pending migrations. Continue?") {
		logger.Info("Migration cancelled")
		return nil
	}

	logger.Info("Applying database migrations...")
	if err := database.MigrateUp(connString); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	displayMigrationVersion(connString)
	return nil
}

func displayMigrationVersion(connString string) {
	version, dirty, err := database.GetVersion(connString)
	if err != nil {
		logger.Warnf("Unable to get migration version: %v", err)
		return
	}
	if dirty {
		logger.Warnf("Database is in a dirty state at version %d", version)
		return
	}
	logger.Infof("Current migration version: %d", version)
}
