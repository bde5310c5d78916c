// Package bench compares the wall-clock cost of palindrome strategies on a
// fixed input.
package bench

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_palindrome/internal/adapters/logger"
	"github.com/baditaflorin/go_palindrome/internal/adapters/normalizer"
	"github.com/baditaflorin/go_palindrome/internal/benchmark"
	"github.com/baditaflorin/go_palindrome/internal/core/strategy"
	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// Report is the ranked outcome of a run.
type Report struct {
	benchmark.Report
}

// Entry is the timing of one strategy.
type Entry = benchmark.Entry

// Option defines a functional option for configuring a run.
type Option func(*runConfig)

type runConfig struct {
	Config     benchmark.Config
	Names      []string
	Strategies []ports.Strategy
	Logger     ports.Logger
}

// WithIterations sets the number of timed calls per strategy.
func WithIterations(n int) Option {
	return func(cfg *runConfig) {
		cfg.Config.Iterations = n
	}
}

// WithWarmupIterations sets the number of untimed calls per strategy.
func WithWarmupIterations(n int) Option {
	return func(cfg *runConfig) {
		cfg.Config.WarmupIterations = n
	}
}

// WithStrategyNames restricts the run to the named built-in strategies.
func WithStrategyNames(names ...string) Option {
	return func(cfg *runConfig) {
		cfg.Names = append(cfg.Names, names...)
	}
}

// WithStrategies adds custom strategies to the run.
func WithStrategies(strategies ...ports.Strategy) Option {
	return func(cfg *runConfig) {
		cfg.Strategies = append(cfg.Strategies, strategies...)
	}
}

// WithLogger sets a custom logger. Runs are silent by default.
func WithLogger(lg l.Logger) Option {
	return func(cfg *runConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// Run times the selected strategies on input. Without strategy options every
// built-in strategy is measured.
func Run(ctx context.Context, input string, opts ...Option) (Report, error) {
	cfg := &runConfig{
		Config: benchmark.DefaultConfig(),
		Logger: logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	strategies := cfg.Strategies
	if len(cfg.Names) > 0 || len(strategies) == 0 {
		named, err := strategy.LookupAll(cfg.Names)
		if err != nil {
			return Report{}, err
		}
		strategies = append(named, strategies...)
	}

	h, err := benchmark.NewHarness(cfg.Config, cfg.Logger, normalizer.NewDefaultNormalizer())
	if err != nil {
		return Report{}, err
	}
	r, err := h.Run(ctx, input, strategies...)
	if err != nil {
		return Report{}, err
	}
	return Report{Report: r}, nil
}

// Format writes the report as an aligned table, fastest first.
func (r Report) Format(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Input:\t%q\n", r.Input)
	fmt.Fprintf(tw, "Normalized:\t%q\n\n", r.Normalized)
	fmt.Fprintln(tw, "RANK\tSTRATEGY\tAVG/CALL\tRELATIVE\tPALINDROME\tSTRUCTURE")
	for _, e := range r.Entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2fx\t%t\t%s\n",
			e.Rank, e.Strategy, e.Average, e.Relative, e.IsPalindrome, e.Description)
	}
	if !r.Agreement() {
		fmt.Fprintln(tw, "\nWARNING: strategies disagree on this input")
	}
	return tw.Flush()
}
