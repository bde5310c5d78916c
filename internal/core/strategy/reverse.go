package strategy

import "github.com/baditaflorin/go_palindrome/internal/ports"

// Reverse builds the reversed string by repeated concatenation. It is
// quadratic and kept as the baseline for benchmarks.
type Reverse struct{}

// NewReverse creates the naive reversal strategy.
func NewReverse() ports.Strategy {
	return Reverse{}
}

func (Reverse) Name() string        { return ReverseName }
func (Reverse) Description() string { return "immutable string concatenation" }

// Check compares the input with its concatenated reverse.
func (Reverse) Check(normalized string) bool {
	reversed := ""
	for i := len(normalized) - 1; i >= 0; i-- {
		reversed += string(normalized[i])
	}
	return reversed == normalized
}
