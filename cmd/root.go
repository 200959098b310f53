package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/cavijaykg-ops/site-inventory-wise/internal/config"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/core/container"
	"github.com/cavijaykg-ops/site-inventory-wise/internal/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags "-X ...cmd.Version=".
var Version = "dev"

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "site-inventory",
		Short:         "Construction site inventory service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (defaults to ./.env when present)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds a logger for a command.
func bootstrap(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	return cfg, log.With(zap.String("version", Version)), nil
}

// withContainer runs fn against a fully wired container and releases it
// afterwards.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *container.Container) error) error {
	cfg, log, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	c, err := container.NewAppContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close(context.WithoutCancel(ctx))

	return fn(ctx, c)
}
