package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/docchat/internal/config"
	"github.com/JaimeStill/docchat/migrations"
	"github.com/JaimeStill/docchat/pkg/database"
	"github.com/JaimeStill/docchat/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the docchat database schema",
	Long: `Applies the embedded schema migrations to the database named by
config.toml, its SERVICE_ENV overlay and DATABASE_* environment variables.`,
	SilenceUsage: true,
}

// openMigrator loads configuration and prepares a migrator for the
// configured database. The caller closes it.
func openMigrator() (*database.Migrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(&cfg.Logging)
	return database.NewMigrator(&cfg.Database, migrations.FS, logger)
}
