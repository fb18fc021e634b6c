package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartstart/smartstart-money/internal/domain/quiz"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect learning content",
	}
	cmd.AddCommand(newCatalogValidateCommand())
	return cmd
}

func newCatalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configured catalog and report what each age group sees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			loaded, err := loadCatalog(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer loaded.Close()

			cat := loaded.catalog
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "catalog ok: %d modules, %d scenarios\n", len(cat.Modules()), len(cat.Scenarios()))
			for _, age := range quiz.AgeBrackets() {
				fmt.Fprintf(out, "  %-6s %2d modules  %2d scenarios\n",
					age, len(cat.ModulesFor(age)), len(cat.ScenariosFor(age)))
			}
			return nil
		},
	}
}
