package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"squashbench/internal/benchmark"
	"squashbench/internal/config"
	"squashbench/internal/squash"
	"squashbench/internal/telemetry"
)

func runBench(cmd *cobra.Command, args []string) error {
	s := config.Current()
	out := cmd.OutOrStdout()

	cfg := resolveSeed(s.Squash)
	telemetry.LogDebug("Starting benchmark", "samples", s.Samples, "batch_size", cfg.BatchSize, "action_dim", cfg.ActionDim, "seed", cfg.Seed)

	metrics := telemetry.NewMetrics()
	runner := benchmark.NewRunner(out, s.Samples, squash.Cases(cfg)...)
	runner.Observer = metrics

	run, err := runner.Run()
	if err != nil {
		return err
	}
	run.BatchSize = cfg.BatchSize
	metrics.RunCompleted()

	if s.Compare || s.Save {
		if err := recordHistory(out, s, &run); err != nil {
			return err
		}
	}

	if s.MetricsFile != "" {
		if err := metrics.WriteTextfile(s.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		telemetry.LogDebug("Metrics written", "path", s.MetricsFile)
	}

	if s.SlackEnabled {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(s.NotifyTimeout)*time.Second)
		defer cancel()
		if err := newNotifierFunc(s.SlackWebhookURL).Notify(ctx, benchmark.Summary(run)); err != nil {
			telemetry.LogError("Slack notification failed", err)
		}
	}
	return nil
}

// resolveSeed replaces the zero seed with one from the clock.
func resolveSeed(cfg squash.Config) squash.Config {
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg
}

func recordHistory(out io.Writer, s config.Settings, run *benchmark.Run) error {
	store, err := newStoreFunc(s.Store)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	if s.Compare {
		prev, err := store.LoadLatest()
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		fmt.Fprintln(out)
		if prev == nil {
			fmt.Fprintln(out, "No previous run to compare against.")
		} else {
			printHistoryComparison(out, benchmark.Compare(*prev, *run), s.Threshold)
		}
	}

	if s.Save {
		if commit, err := benchmark.GitCommit(); err == nil {
			run.Commit = commit
		}
		if err := store.Save(*run); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		fmt.Fprintf(out, "\nResults saved to %s\n", saveDestination(store, s.Store))
		telemetry.LogInfo("Run saved", "store", storeName(s.Store), "commit", run.Commit)
	}
	return nil
}

// saveDestination names the history file for the JSON store and the backend
// otherwise.
func saveDestination(store benchmark.Store, cfg benchmark.StoreConfig) string {
	if fs, ok := store.(*benchmark.FileStore); ok {
		return fs.Path()
	}
	return storeName(cfg) + " history"
}

func storeName(cfg benchmark.StoreConfig) string {
	if cfg.Type == "" {
		return "json"
	}
	return cfg.Type
}

func printHistoryComparison(out io.Writer, comps []benchmark.Comparison, threshold float64) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CASE\tPREV S\tCURR S\tNS/OP\tDIFF %\tSTATUS")
	for _, c := range comps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%+.2f%%\t%s\n",
			c.Name,
			benchmark.FormatSeconds(c.Prev.Seconds),
			benchmark.FormatSeconds(c.Curr.Seconds),
			c.Curr.NsPerOp,
			c.NsPerOpDiff,
			renderStatus(c.Status(threshold)))
	}
	w.Flush()
}
