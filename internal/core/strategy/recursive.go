package strategy

import "github.com/baditaflorin/go_palindrome/internal/ports"

// Recursive compares the outermost pair and recurses on the inner substring
// bounds. Depth is at most ceil(len/2).
type Recursive struct{}

// NewRecursive creates the recursive strategy.
func NewRecursive() ports.Strategy {
	return Recursive{}
}

func (Recursive) Name() string        { return RecursiveName }
func (Recursive) Description() string { return "call stack" }

// Check reports whether normalized is a palindrome.
func (Recursive) Check(normalized string) bool {
	return checkRange(normalized, 0, len(normalized)-1)
}

func checkRange(s string, start, end int) bool {
	if start >= end {
		return true
	}
	if s[start] != s[end] {
		return false
	}
	return checkRange(s, start+1, end-1)
}
