package evaluator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/baditaflorin/go_palindrome/internal/core/domain"
	"github.com/baditaflorin/go_palindrome/internal/core/strategy"
	"github.com/baditaflorin/go_palindrome/internal/ports"
)

var (
	// ErrNilStrategy is returned when a nil strategy is supplied.
	ErrNilStrategy = errors.New("strategy must not be nil")
	// ErrNilNormalizer is returned when the evaluator is built without a normalizer.
	ErrNilNormalizer = errors.New("normalizer must not be nil")
	// ErrNilLogger is returned when the evaluator is built without a logger.
	ErrNilLogger = errors.New("logger must not be nil")
)

// Evaluator normalizes raw text and delegates the verdict to the active strategy.
// It is safe for concurrent use.
type Evaluator struct {
	mu       sync.RWMutex
	strategy ports.Strategy

	checks atomic.Uint64

	logger     ports.Logger
	normalizer ports.Normalizer
	metrics    ports.MetricsRecorder
}

// NewEvaluator creates an evaluator with an initial strategy.
// The metrics recorder is optional.
func NewEvaluator(initial ports.Strategy, logger ports.Logger, normalizer ports.Normalizer, metrics ports.MetricsRecorder) (*Evaluator, error) {
	if strategy.IsNil(initial) {
		return nil, ErrNilStrategy
	}
	if normalizer == nil {
		return nil, ErrNilNormalizer
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &Evaluator{
		strategy:   initial,
		logger:     logger,
		normalizer: normalizer,
		metrics:    metrics,
	}, nil
}

// Evaluate normalizes raw, asks the active strategy for a verdict and counts the call.
func (e *Evaluator) Evaluate(raw string) domain.EvaluationResult {
	start := time.Now()
	active := e.Strategy()

	normalized := e.normalizer.Normalize(raw)
	palindrome := active.Check(normalized)
	count := e.checks.Add(1)

	e.logger.Debug("Evaluated input",
		"raw", raw,
		"normalized", normalized,
		"strategy", active.Name(),
		"palindrome", palindrome,
		"check_count", count,
	)

	if e.metrics != nil {
		e.metrics.ObserveEvaluation(active.Name(), palindrome, time.Since(start))
	}

	return domain.EvaluationResult{
		Raw:          raw,
		Normalized:   normalized,
		IsPalindrome: palindrome,
		Strategy:     active.Name(),
	}
}

// EvaluateContext is Evaluate with a cancellation check before any work.
// A cancelled call is not counted.
func (e *Evaluator) EvaluateContext(ctx context.Context, raw string) (domain.EvaluationResult, error) {
	select {
	case <-ctx.Done():
		e.logger.Warn("Evaluation cancelled", "error", ctx.Err())
		return domain.EvaluationResult{}, ctx.Err()
	default:
		// continue
	}
	return e.Evaluate(raw), nil
}

// SetStrategy replaces the active strategy for subsequent evaluations.
// On error the active strategy is unchanged.
func (e *Evaluator) SetStrategy(next ports.Strategy) error {
	if strategy.IsNil(next) {
		e.logger.Error("Rejected nil strategy")
		return ErrNilStrategy
	}
	name := next.Name()

	e.mu.Lock()
	previous := e.strategy
	e.strategy = next
	e.mu.Unlock()

	e.logger.Debug("Strategy changed", "from", previous.Name(), "to", name)
	return nil
}

// Strategy returns the active strategy.
func (e *Evaluator) Strategy() ports.Strategy {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.strategy
}

// CheckCount returns the number of evaluations performed since construction.
func (e *Evaluator) CheckCount() uint64 {
	return e.checks.Load()
}
