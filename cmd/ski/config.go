package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/games/ski"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved ski config as YAML",
	Long: `Print the config the game would run with: the file from --config or
the search paths, with the --difficulty preset applied.

Use --defaults to print the embedded defaults, a good starting point for
a custom ski.yaml.

Examples:
  ski config
  ski config --difficulty hard
  ski config --defaults > ~/.ski-arcade/configs/ski.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the embedded default config")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagConfigDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := ski.LoadConfig(logger)
	if err := cfg.Validate(); err != nil {
		logger.Warn("Resolved config is invalid", "err", err)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
