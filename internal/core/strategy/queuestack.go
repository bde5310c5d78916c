package strategy

import "github.com/baditaflorin/go_palindrome/internal/ports"

// QueueStack feeds every character into both a FIFO queue and a LIFO stack;
// the queue yields the forward order, the stack the reverse.
type QueueStack struct{}

// NewQueueStack creates the queue-versus-stack strategy.
func NewQueueStack() ports.Strategy {
	return QueueStack{}
}

func (QueueStack) Name() string        { return QueueStackName }
func (QueueStack) Description() string { return "FIFO queue compared against LIFO stack" }

// Check dequeues and pops in lockstep until the first disagreement.
func (QueueStack) Check(normalized string) bool {
	queue := byteQueue{items: make([]byte, 0, len(normalized))}
	stack := make(byteStack, 0, len(normalized))
	for i := 0; i < len(normalized); i++ {
		queue.enqueue(normalized[i])
		stack.push(normalized[i])
	}

	for !queue.empty() {
		if queue.dequeue() != stack.pop() {
			return false
		}
	}
	return true
}

type byteQueue struct {
	items []byte
	head  int
}

func (q *byteQueue) enqueue(b byte) {
	q.items = append(q.items, b)
}

func (q *byteQueue) dequeue() byte {
	b := q.items[q.head]
	q.head++
	return b
}

func (q *byteQueue) empty() bool {
	return q.head >= len(q.items)
}
