package ports

import "github.com/baditaflorin/go_palindrome/internal/core/domain"

// Evaluator turns raw text into an evaluation result.
type Evaluator interface {
	Evaluate(raw string) domain.EvaluationResult
}
