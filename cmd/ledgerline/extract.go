package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternarybob/ledgerline/internal/app"
	"github.com/ternarybob/ledgerline/internal/handlers"
	"github.com/ternarybob/ledgerline/internal/output"
	"github.com/ternarybob/ledgerline/internal/services/metrics"
)

func newExtractCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract [text...]",
		Short: "Extract financial and ESG metrics from text",
		Long: `Extract income, net income, emissions, water usage and quarter from free text.
The text is taken from the arguments, or from stdin when no arguments (or "-") are given.`,
		Example: `  ledgerline extract "Total income hit 12.5M euros, net loss of 300k. Q4 2024."
  cat report.txt | ledgerline extract --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			config, logger, err := loadConfig(opts, "warn")
			if err != nil {
				return err
			}
			if err := config.ValidateGemini(); err != nil {
				return err
			}

			generator, err := app.NewContentGenerator(cmd.Context(), config, logger)
			if err != nil {
				return err
			}
			defer generator.Close()

			result, err := metrics.NewExtractor(generator, logger).Run(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("metrics extraction failed: %w", err)
			}

			return output.Write(cmd.OutOrStdout(), outFormat, result.Metrics)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json or yaml)")
	return cmd
}

// readText joins the arguments, or reads stdin when there are none or the only one is "-"
func readText(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(io.LimitReader(stdin, handlers.MaxRequestBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read text from stdin: %w", err)
	}
	if len(data) > handlers.MaxRequestBodyBytes {
		return "", fmt.Errorf("input exceeds %d bytes", handlers.MaxRequestBodyBytes)
	}
	return string(data), nil
}
