// Command smartstart runs the SmartStart Money API and its maintenance tasks.
//
//	smartstart serve              run the HTTP API
//	smartstart migrate            apply the catalog schema and seed it
//	smartstart catalog validate   load the configured catalog and report counts
//	smartstart version            print build information
//
// Configuration comes from the environment; see package config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smartstart/smartstart-money/config"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

// Set by -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "smartstart",
		Short:         "SmartStart Money personalization and progress engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newCatalogCommand(),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smartstart %s (commit %s)\n", version, commit)
		},
	}
}

// bootstrap loads configuration and builds the process logger.
func bootstrap() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if version != "dev" {
		cfg.App.Version = version
	}
	return cfg, newLogger(cfg), nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		JSON:      cfg.Observability.LogFormat == "json",
		AddCaller: !cfg.IsProduction(),
	}).With(
		logger.String("app", cfg.App.Name),
		logger.String("env", string(cfg.App.Environment)),
	)
}
