package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/carpetrun/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the default configuration as YAML.

With --resolved, print the configuration the game would actually use after
searching --config, ~/.carpetrun/configs/carpet.yaml and ./configs/carpet.yaml.

Examples:
  carpetrun config > ~/.carpetrun/configs/carpet.yaml
  carpetrun config --resolved`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the effective configuration")
}

func runConfig(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if !flagResolved {
		_, err := w.Write(config.GetDefaultYAML())
		return err
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
