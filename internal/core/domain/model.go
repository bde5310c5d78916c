package domain

// EvaluationResult holds the outcome of a single palindrome evaluation.
// It is built once per evaluation and never mutated afterwards.
type EvaluationResult struct {
	// Raw is the text as supplied by the caller.
	Raw string `json:"raw"`
	// Normalized is the canonical form the strategy compared.
	Normalized string `json:"normalized"`
	// IsPalindrome is the strategy's verdict on Normalized.
	IsPalindrome bool `json:"is_palindrome"`
	// Strategy is the name of the strategy that produced the verdict.
	Strategy string `json:"strategy"`
}
