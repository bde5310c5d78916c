package ports

// Strategy defines one palindrome comparison algorithm over normalized text.
// Implementations must be stateless, deterministic and safe for concurrent use.
type Strategy interface {
	// Name returns the stable identifier of the strategy.
	Name() string
	// Description names the data structure backing the algorithm.
	Description() string
	// Check reports whether the normalized string reads the same in both directions.
	// The empty string is a palindrome.
	Check(normalized string) bool
}
