package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/evtclog/evtc-go/internal/config"
)

var (
	// Version information (set by ldflags)
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// Global flags
	verbose    bool
	configPath string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "evtc",
	Short: "ArcDPS EVTC combat log decoder and monitor",
	Long: `evtc is a tool for decoding and monitoring ArcDPS combat logs.

It reads .evtc and compressed .zevtc logs, decodes every combat record
into a typed event and outputs them as JSON Lines for easy processing
with other tools. It can also watch the ArcDPS log directory and report
each log as soon as ArcDPS finishes writing it.

Defaults are read from $XDG_CONFIG_HOME/evtc/config.yaml and ./.evtc.yaml.

This is an unofficial tool and is not affiliated with ArenaNet or deltaconnected.`,
	SilenceUsage:      true, // Don't show usage on error
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default: $XDG_CONFIG_HOME/evtc/config.yaml, then ./.evtc.yaml)")

	// Add subcommands
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "evtc %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return nil
}

// settings returns the loaded config, or the defaults when a command
// runs without the root pre-run hook.
func settings() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// newLogger returns a debug logger on stderr when --verbose is set.
// A nil logger keeps the library silent.
func newLogger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// orDefault returns value, or fallback when value is the zero value,
// so unset flags fall back to the config file.
func orDefault[T comparable](value, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	return value
}

// orDefaultSlice is orDefault for slice flags.
func orDefaultSlice(value, fallback []string) []string {
	if len(value) == 0 {
		return fallback
	}
	return value
}
