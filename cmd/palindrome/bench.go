package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_palindrome/pkg/bench"
)

// defaultBenchInput is long enough to separate the linear strategies from the
// quadratic ones.
const defaultBenchInput = "A man, a plan, a canal: Panama! Was it a car or a cat I saw? " +
	"Never odd or even. Madam, in Eden I'm Adam."

type benchOptions struct {
	iterations int
	warmup     int
	strategies []string
	json       bool
}

func newBenchCmd(global *globalOptions) *cobra.Command {
	opts := &benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench [text]",
		Short: "Time every strategy on the same input and rank them",
		Example: `  palindrome bench
  palindrome bench --iterations 100000 "Never odd or even"
  palindrome bench --strategies twopointer,reverse --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lg, err := global.load(cmd)
			if err != nil {
				return err
			}

			input := defaultBenchInput
			if len(args) == 1 {
				input = args[0]
			}

			iterations := cfg.Benchmark.Iterations
			if cmd.Flags().Changed("iterations") {
				iterations = opts.iterations
			}
			warmup := cfg.Benchmark.WarmupIterations
			if cmd.Flags().Changed("warmup") {
				warmup = opts.warmup
			}

			runOpts := []bench.Option{
				bench.WithIterations(iterations),
				bench.WithWarmupIterations(warmup),
				bench.WithStrategyNames(trimAll(opts.strategies)...),
			}
			if lg != nil {
				runOpts = append(runOpts, bench.WithLogger(lg))
				defer lg.Close()
			}

			report, err := bench.Run(cmd.Context(), input, runOpts...)
			if err != nil {
				return err
			}

			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return report.Format(cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.iterations, "iterations", "i", 0, "timed calls per strategy (default from config)")
	f.IntVarP(&opts.warmup, "warmup", "w", 0, "untimed calls per strategy before timing (default from config)")
	f.StringSliceVar(&opts.strategies, "strategies", nil, "comma-separated strategy names (default all)")
	f.BoolVar(&opts.json, "json", false, "print the report as JSON")
	return cmd
}

func trimAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
