// carpetrun is a flying-carpet avoider for the terminal.
//
// Usage:
//
//	carpetrun play      - Play in the terminal
//	carpetrun sim       - Run a headless game steered by the autopilot
//	carpetrun config    - Print the default configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Use a custom config YAML
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/carpetrun/internal/config"
)

var (
	// Global flags
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "carpetrun",
	Short: "Carpet Run - dodge spinning blades on a flying carpet",
	Long: `Carpet Run is a terminal avoider game. Steer the carpet up and down
to dodge the weapons flying in from the right. The game speeds up the
longer you survive.

Available commands:
  play     - Play in the terminal
  sim      - Run a headless game steered by the autopilot
  config   - Print the default configuration

Examples:
  carpetrun play
  carpetrun play --seed 42 --log-file carpet.log --log-level debug
  carpetrun sim --fast --seed 7
  carpetrun config > ~/.carpetrun/configs/carpet.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger writing to w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "carpetrun",
		Level:           level,
	})
	return logger, nil
}

// openLogOutput returns where logs go when the terminal is taken by the game.
// Without --log-file logs are discarded.
func openLogOutput() (io.WriteCloser, error) {
	if flagLogFile == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// loadConfig loads the game config honoring --config.
func loadConfig(logger *log.Logger) (config.CarpetConfig, error) {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	logger.Debug("Config loaded", "source", src)
	return cfg, nil
}
