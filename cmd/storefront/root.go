package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dejobratic/tomoca/internal/config"
	"github.com/dejobratic/tomoca/internal/telemetry"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Tomoca coffee storefront",
		Long:          "Serves the Tomoca storefront API: catalog, cart, checkout and the subscription quiz.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newCatalogCmd())
	return cmd
}

// loadRuntime reads config from the environment and builds the process logger.
func loadRuntime() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level, err := telemetry.ParseLevel(cfg.Telemetry.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := telemetry.NewLogger(os.Stdout, level)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
