package strategy

import (
	"container/list"

	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// Deque loads the characters into a double-ended list and removes matching
// front/rear pairs.
type Deque struct{}

// NewDeque creates the deque strategy.
func NewDeque() ports.Strategy {
	return Deque{}
}

func (Deque) Name() string        { return DequeName }
func (Deque) Description() string { return "double-ended queue (doubly linked list)" }

// Check shrinks the deque until at most one element, the middle of an
// odd-length input, remains.
func (Deque) Check(normalized string) bool {
	dq := list.New()
	for i := 0; i < len(normalized); i++ {
		dq.PushBack(normalized[i])
	}

	for dq.Len() > 1 {
		front := dq.Remove(dq.Front()).(byte)
		rear := dq.Remove(dq.Back()).(byte)
		if front != rear {
			return false
		}
	}
	return true
}
