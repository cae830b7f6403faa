package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"squashbench/internal/benchmark"
	"squashbench/internal/config"
	"squashbench/internal/notify"
	"squashbench/internal/telemetry"
)

var exit = os.Exit

// Factories allow mocking in tests.
var (
	newStoreFunc    = func(cfg benchmark.StoreConfig) (benchmark.Store, error) { return benchmark.NewStore(cfg) }
	newNotifierFunc = func(url string) notify.Notifier { return notify.NewSlackNotifier(url) }
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "squashbench",
		Short: "Compare the speed of two squashed-Gaussian log-probability implementations",
		Long: `squashbench times the log-probability of tanh-squashed Gaussian actions,
as used by reparameterized policy sampling, computed two ways: with the
hand-derived Jacobian correction and through a chain of bijectors wrapped
around a diagonal normal. Each is run for a fixed number of samples and the
total wall-clock time is printed.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(cfgFile); err != nil {
				return err
			}
			if err := config.ValidateConfig(); err != nil {
				return err
			}
			s := config.Current()
			telemetry.InitLogger(s.Verbose, s.LogFile)
			configureColor(s.NoColor)
			return nil
		},
		RunE: runBench,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	pf.IntP("samples", "n", config.DefaultSamples, "How many times each case is timed")
	pf.Int("batch-size", 256, "Actions per sampled batch")
	pf.Int("action-dim", 3, "Dimensions per action")
	pf.Uint64("seed", 0, "Random seed (0 seeds from the clock)")
	pf.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	pf.String("log-file", "", "Also append JSON logs to this file")
	pf.Bool("no-color", false, "Disable colored output")
	pf.String("store", "json", "History store: json, sqlite or postgres")
	pf.String("store-path", "", "History file for the json and sqlite stores")
	pf.String("store-dsn", "", "Connection string for the postgres store")

	f := rootCmd.Flags()
	f.Bool("save", false, "Save results to history")
	f.Bool("compare", false, "Compare with the latest saved run")
	f.Float64("threshold", 10.0, "Percentage threshold for regression warning")
	f.String("metrics-file", "", "Write Prometheus metrics to this textfile")

	bindFlags(rootCmd, map[string]string{
		"samples":      "samples",
		"batch_size":   "batch-size",
		"action_dim":   "action-dim",
		"seed":         "seed",
		"verbose":      "verbose",
		"log_file":     "log-file",
		"no_color":     "no-color",
		"store.type":   "store",
		"store.path":   "store-path",
		"store.dsn":    "store-dsn",
		"save":         "save",
		"compare":      "compare",
		"threshold":    "threshold",
		"metrics_file": "metrics-file",
	})

	rootCmd.AddCommand(newHistoryCmd(), newCheckCmd())
	return rootCmd
}

func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		var flag *pflag.Flag
		for _, fs := range []*pflag.FlagSet{cmd.PersistentFlags(), cmd.Flags()} {
			if flag = fs.Lookup(name); flag != nil {
				break
			}
		}
		// A nil flag means the table names a flag that was never defined.
		if err := viper.BindPFlag(key, flag); err != nil {
			panic(fmt.Sprintf("bind %s to --%s: %v", key, name, err))
		}
	}
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}
