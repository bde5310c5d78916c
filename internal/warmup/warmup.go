package warmup

import (
	"context"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     1000,
		SampleTextSize: 256,
		Duration:       2 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	strategies  []ports.Strategy
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterStrategy adds a strategy to be warmed up
func (wm *Manager) RegisterStrategy(s ports.Strategy) {
	wm.strategies = append(wm.strategies, s)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components and returns
// the number of calls made.
func (wm *Manager) WarmUp(ctx context.Context) int64 {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.strategies)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	raw := GenerateSampleText(wm.config.SampleTextSize)
	palindrome := GeneratePalindrome(wm.config.SampleTextSize)
	notPalindrome := palindrome + "x"

	calls := make([]int64, wm.config.Concurrency)
	g, gctx := errgroup.WithContext(warmupCtx)
	for i := 0; i < wm.config.Concurrency; i++ {
		routineID := i
		g.Go(func() error {
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-gctx.Done():
					return nil
				default:
				}

				for _, normalizer := range wm.normalizers {
					_ = normalizer.Normalize(raw)
					calls[routineID]++
				}

				for _, s := range wm.strategies {
					// Alternate between accepted and rejected inputs
					if j%2 == 0 {
						_ = s.Check(palindrome)
					} else {
						_ = s.Check(notPalindrome)
					}
					calls[routineID]++
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	var total int64
	for _, c := range calls {
		total += c
	}

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
		"calls", total,
	)
	return total
}

// GenerateSampleText creates mixed-case, punctuated text of roughly the given size
func GenerateSampleText(size int) string {
	words := []string{
		"Was", "it", "a", "car", "or", "a", "cat", "I", "saw?",
		"A", "man,", "a", "plan,", "a", "canal:", "Panama!",
		"Hello", "World", "12321", "Race-Car",
	}

	var sb strings.Builder
	for i := 0; sb.Len() < size; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}

	result := sb.String()
	if len(result) > size {
		return result[:size]
	}
	return result
}

// GeneratePalindrome creates a normalized palindrome of exactly size characters
func GeneratePalindrome(size int) string {
	if size <= 0 {
		return ""
	}
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, size)
	for i, j := 0, size-1; i <= j; i, j = i+1, j-1 {
		c := alphabet[i%len(alphabet)]
		b[i], b[j] = c, c
	}
	return string(b)
}
