// Package palindrome decides whether text reads the same forwards and
// backwards once case, whitespace and punctuation are ignored.
//
// Input is first normalized: lower-cased, then stripped of every character
// outside [a-z0-9]. The canonical form is then handed to a pluggable
// Strategy. All built-in strategies agree on every input; they differ only in
// the data structure they exercise:
//
//	twopointer  indices moving inward over the byte slice
//	stack       push everything, pop to build the reverse
//	deque       remove matching front/rear pairs
//	recursive   compare the outer pair, recurse inward
//	reverse     naive reversal by string concatenation (quadratic)
//	queuestack  FIFO queue compared with a LIFO stack
//	linkedlist  fast/slow pointers over a singly linked list
//
// A Checker holds the active strategy, which can be swapped at any time, and
// counts the evaluations it has performed.
package palindrome

import (
	"context"
	"errors"

	"github.com/baditaflorin/l"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/baditaflorin/go_palindrome/internal/adapters/cache"
	"github.com/baditaflorin/go_palindrome/internal/adapters/logger"
	"github.com/baditaflorin/go_palindrome/internal/adapters/metrics"
	"github.com/baditaflorin/go_palindrome/internal/adapters/normalizer"
	"github.com/baditaflorin/go_palindrome/internal/core/domain"
	"github.com/baditaflorin/go_palindrome/internal/core/evaluator"
	"github.com/baditaflorin/go_palindrome/internal/core/strategy"
	"github.com/baditaflorin/go_palindrome/internal/ports"
	"github.com/baditaflorin/go_palindrome/internal/warmup"
)

// Strategy is a palindrome comparison algorithm over normalized text.
type Strategy = ports.Strategy

// Normalizer turns raw text into the canonical form compared by strategies.
type Normalizer = ports.Normalizer

// Result is the outcome of one evaluation.
type Result = domain.EvaluationResult

// WarmUpConfig controls the optional warm-up run.
type WarmUpConfig = warmup.WarmupConfig

var (
	// ErrNilStrategy is returned when a nil strategy is supplied.
	ErrNilStrategy = evaluator.ErrNilStrategy
	// ErrUnknownStrategy is returned for strategy names that are not built in.
	ErrUnknownStrategy = strategy.ErrUnknownStrategy
)

var defaultNormalizer = normalizer.NewDefaultNormalizer()

// Normalize returns the canonical form of raw: lower-case letters and digits only.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// IsPalindrome normalizes raw and checks it with the two-pointer strategy.
func IsPalindrome(raw string) bool {
	return strategy.Default().Check(Normalize(raw))
}

// Strategies returns every built-in strategy in reporting order.
func Strategies() []Strategy {
	return strategy.All()
}

// StrategyNames returns the names of the built-in strategies.
func StrategyNames() []string {
	return strategy.Names()
}

// LookupStrategy returns the built-in strategy with the given name.
func LookupStrategy(name string) (Strategy, error) {
	return strategy.Lookup(name)
}

// Option defines a functional option for configuring a Checker.
type Option func(*config)

type config struct {
	Strategy     ports.Strategy
	Logger       ports.Logger
	Normalizer   ports.Normalizer
	Registerer   prometheus.Registerer
	CacheSize    int
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig

	err error
}

// WithStrategy sets the initial strategy.
func WithStrategy(s Strategy) Option {
	return func(cfg *config) {
		if strategy.IsNil(s) {
			cfg.err = ErrNilStrategy
			return
		}
		cfg.Strategy = s
	}
}

// WithStrategyName sets the initial strategy by built-in name.
func WithStrategyName(name string) Option {
	return func(cfg *config) {
		s, err := strategy.Lookup(name)
		if err != nil {
			cfg.err = err
			return
		}
		cfg.Strategy = s
	}
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n Normalizer) Option {
	return func(cfg *config) {
		cfg.Normalizer = n
	}
}

// WithNormalizerType selects a built-in normalizer: default, optimized or folding.
func WithNormalizerType(name string) Option {
	return func(cfg *config) {
		typ, err := normalizer.ParseNormalizerType(name)
		if err != nil {
			cfg.err = err
			return
		}
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(typ)
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithoutLogging discards all log output.
func WithoutLogging() Option {
	return func(cfg *config) {
		cfg.Logger = logger.NewNopLogger()
	}
}

// WithMetrics registers evaluation metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *config) {
		cfg.Registerer = reg
	}
}

// WithCache memoizes up to size verdicts per strategy.
func WithCache(size int) Option {
	return func(cfg *config) {
		cfg.CacheSize = size
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(wc WarmUpConfig) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// Checker evaluates raw text with a swappable strategy.
// It is safe for concurrent use.
type Checker struct {
	evaluator  *evaluator.Evaluator
	logger     ports.Logger
	normalizer ports.Normalizer
	cacheSize  int
	ownsLogger bool
}

// New creates a Checker. Without options it uses the two-pointer strategy,
// the default normalizer and a stdout logger.
func New(opts ...Option) (*Checker, error) {
	cfg := &config{
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if cfg.CacheSize < 0 {
		return nil, errors.New("cache size must not be negative")
	}

	ownsLogger := false
	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = createDefaultLogger()
		if err != nil {
			return nil, err
		}
		ownsLogger = true
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalizer.NewDefaultNormalizer()
	}
	if cfg.Strategy == nil {
		cfg.Strategy = strategy.Default()
	}

	var recorder ports.MetricsRecorder
	if cfg.Registerer != nil {
		rec, err := metrics.NewRecorder(cfg.Registerer)
		if err != nil {
			return nil, err
		}
		recorder = rec
	}

	c := &Checker{
		logger:     cfg.Logger,
		normalizer: cfg.Normalizer,
		cacheSize:  cfg.CacheSize,
		ownsLogger: ownsLogger,
	}

	initial, err := c.wrap(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	c.evaluator, err = evaluator.NewEvaluator(initial, cfg.Logger, cfg.Normalizer, recorder)
	if err != nil {
		return nil, err
	}

	if cfg.WarmUp {
		c.WarmUp(context.Background(), cfg.WarmUpConfig)
	}

	return c, nil
}

func (c *Checker) wrap(s Strategy) (Strategy, error) {
	if strategy.IsNil(s) {
		return nil, ErrNilStrategy
	}
	if c.cacheSize == 0 {
		return s, nil
	}
	cached, err := cache.NewCachedStrategy(s, c.cacheSize)
	if err != nil {
		return nil, err
	}
	return cached, nil
}

// Check normalizes raw and evaluates it with the active strategy.
func (c *Checker) Check(raw string) Result {
	return c.evaluator.Evaluate(raw)
}

// CheckContext is Check with a cancellation check before any work.
func (c *Checker) CheckContext(ctx context.Context, raw string) (Result, error) {
	return c.evaluator.EvaluateContext(ctx, raw)
}

// SetStrategy replaces the active strategy. A nil strategy returns ErrNilStrategy.
func (c *Checker) SetStrategy(s Strategy) error {
	wrapped, err := c.wrap(s)
	if err != nil {
		return err
	}
	return c.evaluator.SetStrategy(wrapped)
}

// UseStrategy replaces the active strategy by built-in name.
func (c *Checker) UseStrategy(name string) error {
	s, err := strategy.Lookup(name)
	if err != nil {
		return err
	}
	return c.SetStrategy(s)
}

// Strategy returns the active strategy.
func (c *Checker) Strategy() Strategy {
	return c.evaluator.Strategy()
}

// CheckCount returns the number of evaluations performed since construction.
func (c *Checker) CheckCount() uint64 {
	return c.evaluator.CheckCount()
}

// Evaluate is Check; it lets a Checker feed line and batch evaluation.
func (c *Checker) Evaluate(raw string) Result {
	return c.Check(raw)
}

// WarmUp exercises the normalizer and the active strategy.
func (c *Checker) WarmUp(ctx context.Context, wc WarmUpConfig) {
	mgr := warmup.NewManager(c.logger, wc)
	mgr.RegisterNormalizer(c.normalizer)
	mgr.RegisterStrategy(c.Strategy())
	mgr.WarmUp(ctx)
}

// Close releases the logger created by New, if any.
func (c *Checker) Close() error {
	if c.ownsLogger {
		return c.logger.Close()
	}
	return nil
}
