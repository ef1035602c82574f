package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dejobratic/tomoca/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the postgres cart store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}

			logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
			version, err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", version)
			return nil
		},
	}
}
