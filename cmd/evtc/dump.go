package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/evtclog/evtc-go/pkg/evtc"
)

var (
	// dump flags
	dumpOutDir       string
	dumpAgents       bool
	dumpSkills       bool
	dumpEvents       bool
	dumpWorkers      int
	dumpIncludeTypes []string
	dumpExcludeTypes []string
	dumpNoProgress   bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <files...>",
	Short: "Decode whole logs into JSON documents",
	Long: `Decode each log into a single indented JSON document with its header,
agent table, skill table and decoded events.

The document is written next to the input as <input>.json, or into
--out-dir. Files are processed concurrently.

Examples:
  # Dump a log next to itself
  evtc dump 20240115-201500.zevtc

  # Only agents and skills, into another directory
  evtc dump --events=false --out-dir ./json *.zevtc

  # Only strikes
  evtc dump --agents=false --skills=false --include-types strike boss.zevtc`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutDir, "out-dir", "o", "",
		"Directory for the JSON documents (default: next to each input)")
	dumpCmd.Flags().BoolVar(&dumpAgents, "agents", true, "Include the agent table")
	dumpCmd.Flags().BoolVar(&dumpSkills, "skills", true, "Include the skill table")
	dumpCmd.Flags().BoolVar(&dumpEvents, "events", true, "Include decoded events")
	dumpCmd.Flags().IntVarP(&dumpWorkers, "workers", "j", 0,
		"Files processed concurrently (default: config workers, or the CPU count)")
	dumpCmd.Flags().StringSliceVar(&dumpIncludeTypes, "include-types", nil,
		"Event types to include (comma-separated)")
	dumpCmd.Flags().StringSliceVar(&dumpExcludeTypes, "exclude-types", nil,
		"Event types to exclude (comma-separated)")
	dumpCmd.Flags().BoolVar(&dumpNoProgress, "no-progress", false,
		"Disable the progress bar")

	registerFilterCompletion(dumpCmd)
}

// dumpSelection picks the sections of a dump document.
type dumpSelection struct {
	Agents, Skills, Events bool
	Include, Exclude       []evtc.EventType
}

// dumpDoc is the JSON document written per log.
type dumpDoc struct {
	Header evtc.Header  `json:"header"`
	Agents []evtc.Agent `json:"agents,omitempty"`
	Skills []evtc.Skill `json:"skills,omitempty"`
	Events []evtc.Event `json:"events,omitempty"`
}

func runDump(cmd *cobra.Command, args []string) error {
	conf := settings()

	includes, excludes, err := typeFilters(
		orDefaultSlice(dumpIncludeTypes, conf.IncludeTypes),
		orDefaultSlice(dumpExcludeTypes, conf.ExcludeTypes),
	)
	if err != nil {
		return err
	}

	workers := orDefault(dumpWorkers, conf.Workers)
	if workers < 1 {
		return fmt.Errorf("--workers must be at least 1, got %d", workers)
	}

	if dumpOutDir != "" {
		if err := os.MkdirAll(dumpOutDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var progress io.Writer = os.Stderr
	if dumpNoProgress {
		progress = nil
	}

	sel := dumpSelection{
		Agents: dumpAgents, Skills: dumpSkills, Events: dumpEvents,
		Include: includes, Exclude: excludes,
	}
	return dumpFiles(ctx, args, dumpOutDir, sel, workers, progress)
}

// dumpFiles converts every input concurrently. A failed file does not
// stop the others; all failures are joined into the returned error.
func dumpFiles(ctx context.Context, inputs []string, outDir string, sel dumpSelection, workers int, progress io.Writer) error {
	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = newProgressBar(len(inputs), progress)
		defer bar.Finish()
	}

	var (
		mu     sync.Mutex
		failed []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := dumpFile(input, dumpPath(input, outDir), sel); err != nil {
				mu.Lock()
				failed = append(failed, &evtc.FileError{Path: input, Err: err})
				mu.Unlock()
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(failed), len(inputs), errors.Join(failed...))
	}
	return nil
}

// dumpPath returns the output path for input: <input>.json next to the
// input, or <out-dir>/<base>.json.
func dumpPath(input, outDir string) string {
	if outDir == "" {
		return input + ".json"
	}
	base := filepath.Base(input)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".json")
}

func dumpFile(input, output string, sel dumpSelection) error {
	l, err := evtc.ParseFile(input)
	if err != nil {
		return err
	}

	doc := buildDumpDoc(l, sel)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(output, append(data, '\n'), 0o644)
}

func buildDumpDoc(l *evtc.Log, sel dumpSelection) dumpDoc {
	doc := dumpDoc{Header: l.Header}
	if sel.Agents {
		doc.Agents = l.Agents
	}
	if sel.Skills {
		doc.Skills = l.Skills
	}
	if !sel.Events {
		return doc
	}

	var opts []evtc.ParseOption
	if len(sel.Include) > 0 {
		opts = append(opts, evtc.WithParseIncludeTypes(sel.Include...))
	}
	if len(sel.Exclude) > 0 {
		opts = append(opts, evtc.WithParseExcludeTypes(sel.Exclude...))
	}
	doc.Events = evtc.DecodeEvents(l, opts...)
	return doc
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("dumping"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
