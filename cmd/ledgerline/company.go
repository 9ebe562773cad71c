package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ternarybob/ledgerline/internal/app"
	"github.com/ternarybob/ledgerline/internal/output"
)

func newCompanyCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "company <business-id>",
		Short:   "Look up a company in the YTJ registry",
		Example: "  ledgerline company 0116297-6 --format yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			config, logger, err := loadConfig(opts, "warn")
			if err != nil {
				return err
			}

			service := app.NewRegistryService(config, logger)
			profile, err := service.Lookup(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("company lookup failed: %w", err)
			}

			return output.Write(cmd.OutOrStdout(), outFormat, profile)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json or yaml)")
	return cmd
}
