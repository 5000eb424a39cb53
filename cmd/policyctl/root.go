package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farm-policy/internal/app"
	"farm-policy/internal/config"
	"farm-policy/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const cliName = "policyctl"

var (
	debug   bool
	jsonLog bool
	timeout time.Duration

	rootCmd = &cobra.Command{
		Use:          cliName,
		Short:        "policyctl manages the farm policy catalog: schema, seed data, public data sync and matching",
		SilenceUsage: true,
	}
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall deadline of the command")

	rootCmd.AddCommand(migrateCmd, seedCmd, syncCmd, matchCmd)
}

// withContainer loads the configuration, wires the container and runs fn
// under the command deadline.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if debug {
		level = "debug"
	}
	if jsonLog {
		format = "json"
	}
	logger, err := logging.New(level, format)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, logger.Named(cliName))
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("close", zap.Error(err))
		}
	}()

	return fn(ctx, c)
}
