package strategy

import "github.com/baditaflorin/go_palindrome/internal/ports"

// Stack reverses the input by pushing every character and popping them back.
type Stack struct{}

// NewStack creates the stack strategy.
func NewStack() ports.Strategy {
	return Stack{}
}

func (Stack) Name() string        { return StackName }
func (Stack) Description() string { return "LIFO stack" }

// Check compares the popped sequence with the original.
func (Stack) Check(normalized string) bool {
	stack := make(byteStack, 0, len(normalized))
	for i := 0; i < len(normalized); i++ {
		stack.push(normalized[i])
	}

	reversed := make([]byte, 0, len(normalized))
	for !stack.empty() {
		reversed = append(reversed, stack.pop())
	}
	return string(reversed) == normalized
}

type byteStack []byte

func (s *byteStack) push(b byte) {
	*s = append(*s, b)
}

func (s *byteStack) pop() byte {
	old := *s
	b := old[len(old)-1]
	*s = old[:len(old)-1]
	return b
}

func (s byteStack) empty() bool {
	return len(s) == 0
}
