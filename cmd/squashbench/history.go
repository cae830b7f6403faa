package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"squashbench/internal/benchmark"
	"squashbench/internal/config"
)

func newHistoryCmd() *cobra.Command {
	var (
		raw   bool
		limit int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved benchmark runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := config.Current()
			store, err := newStoreFunc(s.Store)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer store.Close()

			runs, err := store.LoadAll()
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved runs.")
				return nil
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[len(runs)-limit:]
			}

			md := historyMarkdown(runs)
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			style := glamour.WithAutoStyle()
			if s.NoColor {
				style = glamour.WithStandardStyle("notty")
			}
			r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			rendered, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("failed to render history: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering")
	cmd.Flags().IntVar(&limit, "limit", 0, "Only show the most recent N runs")
	return cmd
}

// historyMarkdown renders runs oldest first as a markdown table with one
// seconds column per case.
func historyMarkdown(runs []benchmark.Run) string {
	type column struct{ name, label string }
	var cols []column
	seen := map[string]bool{}
	for _, run := range runs {
		for _, res := range run.Results {
			if !seen[res.Name] {
				seen[res.Name] = true
				cols = append(cols, column{res.Name, res.Label})
			}
		}
	}

	var b strings.Builder
	b.WriteString("# squashbench history\n\n")
	b.WriteString("| Time | Commit | Samples | Batch |")
	for _, c := range cols {
		fmt.Fprintf(&b, " %s (s) |", c.label)
	}
	b.WriteString("\n|---|---|---:|---:|")
	for range cols {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	for _, run := range runs {
		commit := run.Commit
		if commit == "" {
			commit = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d |", run.Timestamp.Format("2006-01-02 15:04:05"), commit, run.Samples, run.BatchSize)
		for _, c := range cols {
			if res, ok := run.Result(c.name); ok {
				fmt.Fprintf(&b, " %s |", benchmark.FormatSeconds(res.Seconds))
			} else {
				b.WriteString(" - |")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
