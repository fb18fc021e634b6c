package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	catalogsrc "github.com/smartstart/smartstart-money/internal/infrastructure/catalog"
	"github.com/smartstart/smartstart-money/internal/infrastructure/persistence/postgres"
	"github.com/smartstart/smartstart-money/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	var skipSeed bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply catalog schema migrations and seed the built-in catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			conn, err := postgres.NewConnection(ctx, postgresConfig(cfg.Database), log)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer conn.Close()

			applied, err := postgres.NewMigrator(conn).Migrate(ctx)
			if err != nil {
				return err
			}
			log.Info("migrations applied", logger.Int("count", applied))

			if skipSeed {
				return nil
			}

			doc, err := catalogsrc.EmbeddedDocument()
			if err != nil {
				return err
			}
			if err := postgres.NewCatalogRepository(conn).Seed(ctx, doc.Modules, doc.Scenarios); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
			log.Info("catalog seeded",
				logger.Int("modules", len(doc.Modules)),
				logger.Int("scenarios", len(doc.Scenarios)),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "only apply migrations")

	cmd.AddCommand(newMigrateStatusCommand())
	return cmd
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			conn, err := postgres.NewConnection(ctx, postgresConfig(cfg.Database), log)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer conn.Close()

			migrations, err := postgres.NewMigrator(conn).Status(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
			for _, m := range migrations {
				applied := "pending"
				if m.IsApplied {
					applied = m.AppliedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", m.Version, m.Name, applied)
			}
			return w.Flush()
		},
	}
}
