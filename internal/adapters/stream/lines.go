package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_palindrome/internal/core/domain"
	"github.com/baditaflorin/go_palindrome/internal/pool"
	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// Constants for line evaluation
const (
	// DefaultBufferSize is the initial scan buffer size
	DefaultBufferSize = 64 * 1024 // 64KB

	// DefaultMaxLineSize is the longest line accepted
	DefaultMaxLineSize = 1024 * 1024 // 1MB

	// DefaultBatchSize defines how many lines are evaluated together in parallel mode
	DefaultBatchSize = 256

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 500 // lines
)

// LineResult is the evaluation of one input line.
type LineResult struct {
	Line int `json:"line"`
	domain.EvaluationResult
}

// Config defines configuration for line evaluation
type Config struct {
	MaxLineSize int
	BatchSize   int
	UseParallel bool
	// Workers caps parallel evaluations; 0 means GOMAXPROCS.
	Workers int
}

// LineEvaluator evaluates every non-blank line of a reader.
type LineEvaluator struct {
	logger    ports.Logger
	evaluator ports.Evaluator
	bufPool   *pool.BufferPool
	config    Config
}

// NewLineEvaluator creates a line evaluator, filling unset config fields with defaults.
func NewLineEvaluator(logger ports.Logger, evaluator ports.Evaluator, config Config) *LineEvaluator {
	if config.MaxLineSize <= 0 {
		config.MaxLineSize = DefaultMaxLineSize
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	return &LineEvaluator{
		logger:    logger,
		evaluator: evaluator,
		bufPool:   pool.NewBufferPool(DefaultBufferSize),
		config:    config,
	}
}

// EvaluateLines calls fn with the result of every non-blank line, in input
// order. It returns the number of lines evaluated. An error from fn stops
// processing and is returned.
func (le *LineEvaluator) EvaluateLines(ctx context.Context, reader io.Reader, fn func(LineResult) error) (int, error) {
	startTime := time.Now()

	buf := le.bufPool.Get()
	defer le.bufPool.Put(buf)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer((*buf)[:cap(*buf)], le.config.MaxLineSize)

	var (
		count int
		err   error
	)
	if le.config.UseParallel {
		count, err = le.evaluateParallel(ctx, scanner, fn)
	} else {
		count, err = le.evaluateSequential(ctx, scanner, fn)
	}
	if err != nil {
		return count, err
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("read lines: %w", err)
	}

	le.logger.Debug("Evaluated lines",
		"lines", count,
		"parallel", le.config.UseParallel,
		"duration", time.Since(startTime),
	)
	return count, nil
}

func (le *LineEvaluator) evaluateSequential(ctx context.Context, scanner *bufio.Scanner, fn func(LineResult) error) (int, error) {
	lineNo, count := 0, 0
	for scanner.Scan() {
		lineNo++
		if lineNo%ContextCheckFrequency == 0 {
			select {
			case <-ctx.Done():
				le.logger.Warn("Line evaluation cancelled by context", "error", ctx.Err())
				return count, ctx.Err()
			default:
			}
		}

		line := scanner.Text()
		if isBlank(line) {
			continue
		}
		if err := fn(LineResult{Line: lineNo, EvaluationResult: le.evaluator.Evaluate(line)}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

type pendingLine struct {
	number int
	text   string
}

func (le *LineEvaluator) evaluateParallel(ctx context.Context, scanner *bufio.Scanner, fn func(LineResult) error) (int, error) {
	batch := make([]pendingLine, 0, le.config.BatchSize)
	results := make([]LineResult, le.config.BatchSize)
	lineNo, count := 0, 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			le.logger.Warn("Line evaluation cancelled by context", "error", err)
			return err
		}

		g := new(errgroup.Group)
		g.SetLimit(le.config.Workers)
		for i, p := range batch {
			i, p := i, p
			g.Go(func() error {
				results[i] = LineResult{Line: p.number, EvaluationResult: le.evaluator.Evaluate(p.text)}
				return nil
			})
		}
		_ = g.Wait()

		for i := range batch {
			if err := fn(results[i]); err != nil {
				return err
			}
			count++
		}
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if isBlank(line) {
			continue
		}
		batch = append(batch, pendingLine{number: lineNo, text: line})
		if len(batch) == le.config.BatchSize {
			if err := flush(); err != nil {
				return count, err
			}
		}
	}
	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

// isBlank reports whether line holds only whitespace.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
