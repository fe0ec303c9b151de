// Package cli holds the ictlogbook commands.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/nehemiah-317/ictlogbook/internal/config"
	"github.com/nehemiah-317/ictlogbook/internal/database"
	"github.com/nehemiah-317/ictlogbook/internal/logger"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ictlogbook",
		Short:         "ICT department logbook",
		Long:          `Record support tickets, asset custody, vendor assistance and thermal-roll collections.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
		newUserCommand(),
	)
	return root
}

// bootstrap loads config, installs the logger and opens the database.
func bootstrap() (*config.Config, *slog.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, logger.WithComponent("database"))
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func closeDB(db *gorm.DB, log *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
