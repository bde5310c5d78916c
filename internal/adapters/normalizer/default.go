package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// DefaultNormalizer lower-cases text and drops everything outside [a-z0-9].
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize converts the input text to lower case, then removes every
// character that is not an ASCII letter or digit.
func (n *DefaultNormalizer) Normalize(text string) string {
	return keepAlnum(strings.ToLower(text))
}

// keepAlnum removes every rune outside [a-z0-9].
func keepAlnum(text string) string {
	return strings.Map(func(r rune) rune {
		if isAlnum(r) {
			return r
		}
		return -1
	}, text)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
