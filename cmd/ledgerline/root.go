package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ledgerline/internal/common"
)

// defaultConfigFiles are probed in order when no --config is given
var defaultConfigFiles = []string{"ledgerline.toml", "deployments/local/ledgerline.toml"}

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configFiles []string
	port        int
	host        string
	debug       bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ledgerline",
		Short: "Company registry lookups and metrics extraction",
		Long: `Ledgerline serves two endpoints: GET /company resolves a Finnish business ID
against the YTJ open data registry, and POST /extract turns free text into
financial and ESG metrics with a Gemini model.

Running without a subcommand starts the HTTP server.

Examples:
  # Serve with a config file, overriding the port
  ledgerline -c ledgerline.toml -p 9000

  # Look up one company
  ledgerline company 0116297-6 --format yaml

  # Extract metrics from stdin
  echo "Total income hit 12.5M euros in Q4 2024." | ledgerline extract`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&opts.configFiles, "config", "c", nil, "configuration file path (repeatable, later files override earlier ones)")
	flags.IntVarP(&opts.port, "port", "p", 0, "server port (overrides config)")
	flags.StringVar(&opts.host, "host", "", "server host (overrides config)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newServeCommand(opts),
		newCompanyCommand(opts),
		newExtractCommand(opts),
		newVersionCommand(),
	)

	return cmd
}

// loadConfig resolves configuration (defaults -> files -> .env -> env -> flags) and
// initializes the global logger. quietLevel replaces the info level for one-shot commands.
func loadConfig(opts *rootOptions, quietLevel string) (*common.Config, arbor.ILogger, error) {
	files := opts.configFiles
	if len(files) == 0 {
		for _, candidate := range defaultConfigFiles {
			if _, err := os.Stat(candidate); err == nil {
				files = []string{candidate}
				break
			}
		}
	}

	cfg, err := common.LoadFromFiles(files...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	common.ApplyFlagOverrides(cfg, opts.port, opts.host)

	switch {
	case opts.debug:
		cfg.Logging.Level = "debug"
	case quietLevel != "" && cfg.Logging.Level == "info":
		cfg.Logging.Level = quietLevel
	}

	logger := common.InitLogger(cfg)

	logger.Debug().
		Strs("config_files", files).
		Str("log_level", cfg.Logging.Level).
		Strs("log_output", cfg.Logging.Output).
		Str("registry_url", cfg.Registry.BaseURL).
		Str("gemini_model", cfg.Gemini.Model).
		Msg("Resolved configuration (sanitized)")

	return cfg, logger, nil
}
