package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"squashbench/internal/config"
	"squashbench/internal/squash"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify both implementations compute the same log-probabilities",
		Long: `check evaluates one seeded batch with the bijector chain, with the
change-of-variables formula at the pre-squash value, and with the formula as
it is timed. The first two must agree; the gap to the third is reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := resolveSeed(config.Current().Squash)
			a, err := squash.CrossCheck(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cross-check on batch %d x %d (seed %d):\n", cfg.BatchSize, cfg.ActionDim, cfg.Seed)
			fmt.Fprintf(out, "- bijector vs reference max |diff|: %g (tolerance %g)\n", a.MaxAbsDiff, squash.CrossCheckTolerance)
			fmt.Fprintf(out, "- bijector vs timed formula max |diff|: %g\n", a.AsWrittenGap)

			if !a.OK() {
				return fmt.Errorf("bijector log-prob differs from reference by %g", a.MaxAbsDiff)
			}
			fmt.Fprintln(out, "OK")
			return nil
		},
	}
}
