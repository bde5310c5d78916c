package benchmark

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/baditaflorin/go_palindrome/internal/adapters/cache"
	"github.com/baditaflorin/go_palindrome/internal/adapters/logger"
	"github.com/baditaflorin/go_palindrome/internal/adapters/normalizer"
	"github.com/baditaflorin/go_palindrome/internal/adapters/stream"
	"github.com/baditaflorin/go_palindrome/internal/core/evaluator"
	"github.com/baditaflorin/go_palindrome/internal/core/strategy"
	"github.com/baditaflorin/go_palindrome/internal/warmup"
)

// generateText creates punctuated mixed-case text of the specified size
func generateText(size int) string {
	return warmup.GenerateSampleText(size)
}

// generateLines creates lineCount lines alternating palindromes and plain text
func generateLines(lineCount int) string {
	var sb strings.Builder
	for i := 0; i < lineCount; i++ {
		if i%2 == 0 {
			sb.WriteString("A man, a plan, a canal: Panama")
		} else {
			sb.WriteString("The quick brown fox jumps over the lazy dog")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func BenchmarkNormalizers(b *testing.B) {
	smallText := generateText(100)    // 100 bytes
	mediumText := generateText(10000) // 10 KB
	largeText := generateText(100000) // 100 KB

	factory := normalizer.NewNormalizerFactory()

	benchmarks := []struct {
		name     string
		normType normalizer.NormalizerType
		input    string
	}{
		{"Default-Small", normalizer.DefaultNormalizerType, smallText},
		{"Default-Medium", normalizer.DefaultNormalizerType, mediumText},
		{"Default-Large", normalizer.DefaultNormalizerType, largeText},

		{"Optimized-Small", normalizer.OptimizedNormalizerType, smallText},
		{"Optimized-Medium", normalizer.OptimizedNormalizerType, mediumText},
		{"Optimized-Large", normalizer.OptimizedNormalizerType, largeText},

		{"Folding-Small", normalizer.FoldingNormalizerType, smallText},
		{"Folding-Medium", normalizer.FoldingNormalizerType, mediumText},
		{"Folding-Large", normalizer.FoldingNormalizerType, largeText},
	}

	for _, bm := range benchmarks {
		norm := factory.CreateNormalizer(bm.normType)

		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bm.input)))

			for i := 0; i < b.N; i++ {
				_ = norm.Normalize(bm.input)
			}
		})
	}
}

// BenchmarkStrategies compares every strategy on normalized palindromes of increasing size
func BenchmarkStrategies(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"Small", 16},
		{"Medium", 1024},
		{"Large", 64 * 1024},
	}

	for _, s := range strategy.All() {
		for _, size := range sizes {
			// Quadratic concatenation is too slow for large input
			if s.Name() == strategy.ReverseName && size.size > 1024 {
				continue
			}
			input := warmup.GeneratePalindrome(size.size)

			b.Run(s.Name()+"-"+size.name, func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(input)))

				for i := 0; i < b.N; i++ {
					if !s.Check(input) {
						b.Fatal("expected palindrome")
					}
				}
			})
		}
	}
}

// BenchmarkEvaluator measures the full normalize-and-check path, with and without a verdict cache
func BenchmarkEvaluator(b *testing.B) {
	input := generateText(1000)
	log := logger.NewNopLogger()
	norm := normalizer.NewOptimizedNormalizer()

	cached, err := cache.NewCachedStrategy(strategy.NewTwoPointer(), 128)
	if err != nil {
		b.Fatal(err)
	}

	benchmarks := []struct {
		name string
		eval func() (*evaluator.Evaluator, error)
	}{
		{"Uncached", func() (*evaluator.Evaluator, error) {
			return evaluator.NewEvaluator(strategy.NewTwoPointer(), log, norm, nil)
		}},
		{"Cached", func() (*evaluator.Evaluator, error) {
			return evaluator.NewEvaluator(cached, log, norm, nil)
		}},
	}

	for _, bm := range benchmarks {
		e, err := bm.eval()
		if err != nil {
			b.Fatal(err)
		}

		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(input)))

			for i := 0; i < b.N; i++ {
				_ = e.Evaluate(input)
			}
		})

		b.Run(bm.name+"-Parallel", func(b *testing.B) {
			b.ReportAllocs()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					_ = e.Evaluate(input)
				}
			})
		})
	}
}

// BenchmarkLineEvaluation compares sequential and parallel line evaluation
func BenchmarkLineEvaluation(b *testing.B) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := logger.NewNopLogger()
	e, err := evaluator.NewEvaluator(strategy.NewTwoPointer(), log, normalizer.NewOptimizedNormalizer(), nil)
	if err != nil {
		b.Fatal(err)
	}

	smallLines := generateLines(50)
	mediumLines := generateLines(500)
	largeLines := generateLines(5000)

	benchmarks := []struct {
		name     string
		parallel bool
		input    string
	}{
		{"Sequential-Small", false, smallLines},
		{"Sequential-Medium", false, mediumLines},
		{"Sequential-Large", false, largeLines},
		{"Parallel-Small", true, smallLines},
		{"Parallel-Medium", true, mediumLines},
		{"Parallel-Large", true, largeLines},
	}

	for _, bm := range benchmarks {
		le := stream.NewLineEvaluator(log, e, stream.Config{UseParallel: bm.parallel, BatchSize: 100})

		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bm.input)))

			for i := 0; i < b.N; i++ {
				if _, err := le.EvaluateLines(ctx, strings.NewReader(bm.input), func(stream.LineResult) error { return nil }); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
