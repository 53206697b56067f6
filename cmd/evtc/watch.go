package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/evtclog/evtc-go/pkg/evtc"
)

var (
	// watch flags
	watchLogDir       string
	watchFormat       string
	watchIncludeTypes []string
	watchExcludeTypes []string
	watchDebounce     time.Duration
	watchReplay       string
)

// replayModes maps --replay values to evtc.ReplayMode.
var replayModes = map[string]evtc.ReplayMode{
	"none":   evtc.ReplayNone,
	"latest": evtc.ReplayLatest,
	"all":    evtc.ReplayAll,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report new EVTC logs as ArcDPS writes them",
	Long: `Watch the ArcDPS log directory and output a summary of every log
once ArcDPS has finished writing it.

Summaries are output as JSON Lines by default (one JSON object per log),
which makes it easy to process with tools like jq.

Examples:
  # Watch with default settings (auto-detect log directory)
  evtc watch

  # Start with the most recent existing log
  evtc watch --replay latest

  # Count only strikes and buff damage in the summaries
  evtc watch --include-types strike,buff_damage

  # Human-readable output
  evtc watch --format pretty

  # Pipe to jq for filtering
  evtc watch | jq 'select(.boss_id == 15438)'`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchLogDir, "log-dir", "d", "",
		"ArcDPS log directory (auto-detected if not specified)")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "",
		"Output format: jsonl, pretty (default from config, or jsonl)")
	watchCmd.Flags().StringSliceVar(&watchIncludeTypes, "include-types", nil,
		"Event types to keep in each log (comma-separated)")
	watchCmd.Flags().StringSliceVar(&watchExcludeTypes, "exclude-types", nil,
		"Event types to drop from each log (comma-separated)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0,
		"How long a log file must be unchanged before it is read (default from config, or 2s)")
	watchCmd.Flags().StringVar(&watchReplay, "replay", "none",
		"Existing logs to report first: none, latest, all")

	registerFilterCompletion(watchCmd)
	_ = watchCmd.RegisterFlagCompletionFunc("replay", cobra.FixedCompletions(
		[]string{"none", "latest", "all"}, cobra.ShellCompDirectiveNoFileComp))
}

func runWatch(cmd *cobra.Command, args []string) error {
	conf := settings()
	out, err := newPrinter(orDefault(watchFormat, conf.Format), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	includes, excludes, err := typeFilters(
		orDefaultSlice(watchIncludeTypes, conf.IncludeTypes),
		orDefaultSlice(watchExcludeTypes, conf.ExcludeTypes),
	)
	if err != nil {
		return err
	}

	replay, ok := replayModes[watchReplay]
	if !ok {
		return fmt.Errorf("invalid --replay %q: must be one of: none, latest, all", watchReplay)
	}

	debounce := orDefault(watchDebounce, conf.Debounce)

	// Setup context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build watch options using functional options pattern
	watchOpts := []evtc.WatchOption{
		evtc.WithDebounce(debounce),
		evtc.WithReplay(replay),
		evtc.WithLogger(newLogger()),
	}
	if logDir := orDefault(watchLogDir, conf.LogDir); logDir != "" {
		watchOpts = append(watchOpts, evtc.WithLogDir(logDir))
	}
	if len(includes) > 0 {
		watchOpts = append(watchOpts, evtc.WithIncludeTypes(includes...))
	}
	if len(excludes) > 0 {
		watchOpts = append(watchOpts, evtc.WithExcludeTypes(excludes...))
	}

	watcher, err := evtc.NewWatcher(watchOpts...)
	if err != nil {
		return err
	}
	defer watcher.Close()

	updates, errs := watcher.Watch(ctx)

	// Output loop
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return nil // Channel closed
			}
			if err := out.Update(u); err != nil {
				return fmt.Errorf("output error: %w", err)
			}

		case err, ok := <-errs:
			if !ok {
				return nil // Channel closed
			}
			// Always output errors to stderr
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)

		case <-ctx.Done():
			return nil
		}
	}
}
