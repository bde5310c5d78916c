package strategy

import "github.com/baditaflorin/go_palindrome/internal/ports"

// LinkedList stores the characters in a singly linked list, finds the middle
// with fast/slow pointers, reverses the second half in place and compares the
// two halves node by node.
type LinkedList struct{}

// NewLinkedList creates the linked list strategy.
func NewLinkedList() ports.Strategy {
	return LinkedList{}
}

func (LinkedList) Name() string        { return LinkedListName }
func (LinkedList) Description() string { return "singly linked list with fast/slow pointers" }

type node struct {
	value byte
	next  *node
}

// Check reports whether normalized is a palindrome.
func (LinkedList) Check(normalized string) bool {
	if len(normalized) < 2 {
		return true
	}

	var head, tail *node
	for i := 0; i < len(normalized); i++ {
		n := &node{value: normalized[i]}
		if head == nil {
			head = n
		} else {
			tail.next = n
		}
		tail = n
	}

	// slow stops at the last node of the first half
	slow, fast := head, head
	for fast.next != nil && fast.next.next != nil {
		slow = slow.next
		fast = fast.next.next
	}

	second := reverseList(slow.next)
	for first := head; second != nil; first, second = first.next, second.next {
		if first.value != second.value {
			return false
		}
	}
	return true
}

func reverseList(head *node) *node {
	var prev *node
	for head != nil {
		next := head.next
		head.next = prev
		prev = head
		head = next
	}
	return prev
}
