// Package strategy holds the palindrome comparison algorithms. Every
// strategy operates on normalized text and agrees with every other one.
package strategy

import "github.com/baditaflorin/go_palindrome/internal/ports"

// Strategy names
const (
	TwoPointerName = "twopointer"
	StackName      = "stack"
	DequeName      = "deque"
	RecursiveName  = "recursive"
	ReverseName    = "reverse"
	QueueStackName = "queuestack"
	LinkedListName = "linkedlist"
)

// TwoPointer walks indices inward from both ends of the byte slice.
type TwoPointer struct{}

// NewTwoPointer creates the two-pointer strategy.
func NewTwoPointer() ports.Strategy {
	return TwoPointer{}
}

func (TwoPointer) Name() string        { return TwoPointerName }
func (TwoPointer) Description() string { return "character array with two indices" }

// Check stops at the first mismatch or when the indices meet.
func (TwoPointer) Check(normalized string) bool {
	for left, right := 0, len(normalized)-1; left < right; left, right = left+1, right-1 {
		if normalized[left] != normalized[right] {
			return false
		}
	}
	return true
}
