// Package benchmark times palindrome strategies against one input and ranks
// them fastest to slowest.
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/baditaflorin/go_palindrome/internal/core/strategy"
	"github.com/baditaflorin/go_palindrome/internal/ports"
)

const (
	// ContextCheckFrequency defines how often the timing loop checks for cancellation
	ContextCheckFrequency = 1024

	// SlowCallThreshold is the single-call duration at or above which the loop
	// checks for cancellation before every call.
	SlowCallThreshold = 10 * time.Microsecond
)

var (
	// ErrNoStrategies is returned when Run is called without strategies.
	ErrNoStrategies = errors.New("at least one strategy is required")
	// ErrNilStrategy is returned when one of the strategies is nil.
	ErrNilStrategy = errors.New("strategy must not be nil")
	// ErrDuplicateStrategy is returned when two strategies share a name.
	ErrDuplicateStrategy = errors.New("duplicate strategy name")
)

var validate = validator.New()

// Config holds the iteration counts used per strategy.
type Config struct {
	WarmupIterations int `yaml:"warmup_iterations" json:"warmup_iterations" validate:"gte=0"`
	Iterations       int `yaml:"iterations" json:"iterations" validate:"gte=1"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		WarmupIterations: 1000,
		Iterations:       10000,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid benchmark config: %w", err)
	}
	return nil
}

// Entry is the timing of one strategy.
type Entry struct {
	Rank         int           `json:"rank"`
	Strategy     string        `json:"strategy"`
	Description  string        `json:"description"`
	IsPalindrome bool          `json:"is_palindrome"`
	Iterations   int           `json:"iterations"`
	Total        time.Duration `json:"total_ns"`
	Average      time.Duration `json:"average_ns"`
	// Relative is Average divided by the fastest Average; the fastest entry is 1.
	Relative float64 `json:"relative"`
}

// Report is the ranked outcome of a benchmark run.
type Report struct {
	Input      string  `json:"input"`
	Normalized string  `json:"normalized"`
	Entries    []Entry `json:"entries"`
}

// Agreement reports whether every strategy reached the same verdict.
func (r Report) Agreement() bool {
	for _, e := range r.Entries[min(1, len(r.Entries)):] {
		if e.IsPalindrome != r.Entries[0].IsPalindrome {
			return false
		}
	}
	return true
}

// Fastest returns the top-ranked entry.
func (r Report) Fastest() (Entry, bool) {
	if len(r.Entries) == 0 {
		return Entry{}, false
	}
	return r.Entries[0], true
}

// Harness runs timing loops over strategies.
type Harness struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
	now        func() time.Time
}

// NewHarness creates a benchmark harness.
func NewHarness(config Config, logger ports.Logger, normalizer ports.Normalizer) (*Harness, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil || normalizer == nil {
		return nil, errors.New("benchmark harness requires a logger and a normalizer")
	}
	return &Harness{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
		now:        time.Now,
	}, nil
}

// Run normalizes input once, then times every strategy on the normalized form.
func (h *Harness) Run(ctx context.Context, input string, strategies ...ports.Strategy) (Report, error) {
	if len(strategies) == 0 {
		return Report{}, ErrNoStrategies
	}
	seen := make(map[string]bool, len(strategies))
	for i, s := range strategies {
		if strategy.IsNil(s) {
			return Report{}, fmt.Errorf("%w: position %d", ErrNilStrategy, i)
		}
		if seen[s.Name()] {
			return Report{}, fmt.Errorf("%w: %s", ErrDuplicateStrategy, s.Name())
		}
		seen[s.Name()] = true
	}

	normalized := h.normalizer.Normalize(input)
	h.logger.Info("Starting benchmark",
		"strategies", len(strategies),
		"normalized_length", len(normalized),
		"warmup_iterations", h.config.WarmupIterations,
		"iterations", h.config.Iterations,
	)

	entries := make([]Entry, 0, len(strategies))
	for _, s := range strategies {
		entry, err := h.measure(ctx, s, normalized)
		if err != nil {
			h.logger.Warn("Benchmark cancelled", "strategy", s.Name(), "error", err)
			return Report{}, err
		}
		h.logger.Debug("Measured strategy",
			"strategy", s.Name(),
			"average", entry.Average,
		)
		entries = append(entries, entry)
	}

	rank(entries)

	report := Report{Input: input, Normalized: normalized, Entries: entries}
	if !report.Agreement() {
		h.logger.Error("Strategies disagree", "normalized", normalized)
	}
	return report, nil
}

func (h *Harness) measure(ctx context.Context, s ports.Strategy, normalized string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	// One untimed call sizes the cancellation interval
	callStart := time.Now()
	s.Check(normalized)
	every := ContextCheckFrequency
	if time.Since(callStart) >= SlowCallThreshold {
		every = 1
	}

	if _, err := h.loop(ctx, s, normalized, h.config.WarmupIterations, every); err != nil {
		return Entry{}, err
	}

	start := h.now()
	verdict, err := h.loop(ctx, s, normalized, h.config.Iterations, every)
	total := h.now().Sub(start)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Strategy:     s.Name(),
		Description:  s.Description(),
		IsPalindrome: verdict,
		Iterations:   h.config.Iterations,
		Total:        total,
		Average:      total / time.Duration(h.config.Iterations),
	}, nil
}

// loop calls s n times, checking ctx before every call whose index is a
// multiple of every and once more at the end.
func (h *Harness) loop(ctx context.Context, s ports.Strategy, normalized string, n, every int) (bool, error) {
	var verdict bool
	for i := 0; i < n; i++ {
		if i%every == 0 {
			select {
			case <-ctx.Done():
				return verdict, ctx.Err()
			default:
			}
		}
		verdict = s.Check(normalized)
	}
	return verdict, ctx.Err()
}

// rank sorts entries fastest first and fills Rank and Relative.
// Ties keep input order.
func rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Average < entries[j].Average
	})
	if len(entries) == 0 {
		return
	}
	fastest := entries[0].Average
	// Sub-nanosecond averages round to zero on coarse clocks
	base := max(fastest, time.Nanosecond)
	for i := range entries {
		entries[i].Rank = i + 1
		if entries[i].Average == fastest {
			entries[i].Relative = 1
			continue
		}
		entries[i].Relative = float64(entries[i].Average) / float64(base)
	}
}
