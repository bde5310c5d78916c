package ports

// Normalizer defines the interface for text normalization.
// Implementations must return only lowercase ASCII letters and digits.
type Normalizer interface {
	Normalize(text string) string
}
