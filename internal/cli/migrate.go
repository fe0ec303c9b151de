package cli

import (
	"github.com/spf13/cobra"

	"github.com/nehemiah-317/ictlogbook/internal/database"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db, log)

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info("database migrated")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin and, optionally, demo accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeDB(db, log)

			ctx := cmd.Context()
			if err := database.Migrate(db); err != nil {
				return err
			}
			if err := database.EnsureAdmin(ctx, db, cfg.AdminUsername, cfg.AdminPassword, log); err != nil {
				return err
			}
			if demo {
				return database.SeedDemoUsers(ctx, db, log)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "Also create a demo staff account")
	return cmd
}
