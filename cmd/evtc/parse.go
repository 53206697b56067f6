package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/evtclog/evtc-go/pkg/evtc"
)

var (
	// parse flags
	parseLogDir       string
	parseIncludeTypes []string
	parseExcludeTypes []string
	parseSince        string
	parseUntil        string
	parseFromMs       uint64
	parseToMs         uint64
	parseFormat       string
	parseRaw          bool
	parseStopOnError  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Decode EVTC logs into events (batch mode)",
	Long: `Decode ArcDPS logs and output one event per decoded combat record.

Without file arguments, every .evtc/.zevtc log under the log directory
(including the per-boss subdirectories) is read, oldest first.

Examples:
  # Parse all logs in the auto-detected directory
  evtc parse

  # Specify log directory
  evtc parse --log-dir "C:\Users\me\Documents\arcdps\arcdps.cbtlogs"

  # Only logs recorded in January 2024 (header date)
  evtc parse --since 2024-01-01T00:00:00Z --until 2024-02-01T00:00:00Z

  # Only the first minute of each log
  evtc parse --to-ms 60000

  # Filter by event type
  evtc parse --include-types strike,buff_damage

  # Human-readable output
  evtc parse --format pretty 20240115-201500.zevtc

  # Pipe to jq for filtering
  evtc parse boss.zevtc | jq 'select(.type == "strike") | .kind.total_damage'`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseLogDir, "log-dir", "d", "",
		"ArcDPS log directory (auto-detected if not specified)")
	parseCmd.Flags().StringSliceVar(&parseIncludeTypes, "include-types", nil,
		"Event types to include (comma-separated: strike,buff_apply,health_update)")
	parseCmd.Flags().StringSliceVar(&parseExcludeTypes, "exclude-types", nil,
		"Event types to exclude (comma-separated)")
	parseCmd.Flags().StringVar(&parseSince, "since", "",
		"Only logs dated at/after timestamp (RFC3339 format, e.g., 2024-01-15T00:00:00Z)")
	parseCmd.Flags().StringVar(&parseUntil, "until", "",
		"Only logs dated before timestamp (RFC3339 format)")
	parseCmd.Flags().Uint64Var(&parseFromMs, "from-ms", 0,
		"Only events at/after this log time in milliseconds")
	parseCmd.Flags().Uint64Var(&parseToMs, "to-ms", 0,
		"Only events before this log time in milliseconds (0 = no limit)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "",
		"Output format: jsonl, pretty (default from config, or jsonl)")
	parseCmd.Flags().BoolVar(&parseRaw, "raw", false,
		"Include raw combat records in output")
	parseCmd.Flags().BoolVar(&parseStopOnError, "stop-on-error", false,
		"Stop on first error instead of skipping")

	registerFilterCompletion(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	conf := settings()
	format := orDefault(parseFormat, conf.Format)
	out, err := newPrinter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	includes, excludes, err := typeFilters(
		orDefaultSlice(parseIncludeTypes, conf.IncludeTypes),
		orDefaultSlice(parseExcludeTypes, conf.ExcludeTypes),
	)
	if err != nil {
		return err
	}

	// Parse date range
	sinceTime, untilTime, err := parseTimeRange(parseSince, parseUntil)
	if err != nil {
		return err
	}
	if parseToMs != 0 && parseFromMs >= parseToMs {
		return fmt.Errorf("--from-ms must be before --to-ms")
	}

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build parse options
	var opts []evtc.ParseDirOption

	if logDir := orDefault(parseLogDir, conf.LogDir); logDir != "" {
		opts = append(opts, evtc.WithDirLogDir(logDir))
	}

	// Use positional args as explicit file paths
	if len(args) > 0 {
		opts = append(opts, evtc.WithDirPaths(args...))
	}

	if len(includes) > 0 {
		opts = append(opts, evtc.WithDirIncludeTypes(includes...))
	}
	if len(excludes) > 0 {
		opts = append(opts, evtc.WithDirExcludeTypes(excludes...))
	}

	if !sinceTime.IsZero() || !untilTime.IsZero() {
		opts = append(opts, evtc.WithDirDateRange(sinceTime, untilTime))
	}
	if parseFromMs != 0 || parseToMs != 0 {
		opts = append(opts, evtc.WithDirTimeRange(parseFromMs, parseToMs))
	}

	if parseRaw {
		opts = append(opts, evtc.WithDirIncludeRaw(true))
	}
	if parseStopOnError {
		opts = append(opts, evtc.WithDirStopOnError(true))
	}
	if logger := newLogger(); logger != nil {
		opts = append(opts, evtc.WithDirLogger(logger))
	}

	// Parse all files
	for ev, err := range evtc.ParseDir(ctx, opts...) {
		if err != nil {
			// Ctrl+C: exit silently
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("parse error: %w", err)
		}

		if err := out.Event(ev); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}

	return nil
}

// parseTimeRange parses since and until strings into time.Time values.
func parseTimeRange(since, until string) (time.Time, time.Time, error) {
	var sinceTime, untilTime time.Time
	var err error

	if since != "" {
		sinceTime, err = time.Parse(time.RFC3339, since)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --since format: %w (expected RFC3339, e.g., 2024-01-15T00:00:00Z)", err)
		}
	}

	if until != "" {
		untilTime, err = time.Parse(time.RFC3339, until)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --until format: %w (expected RFC3339, e.g., 2024-01-15T00:00:00Z)", err)
		}
	}

	// Validate that since is before until
	if !sinceTime.IsZero() && !untilTime.IsZero() && sinceTime.After(untilTime) {
		return time.Time{}, time.Time{}, fmt.Errorf("--since must be before --until")
	}

	return sinceTime, untilTime, nil
}
