package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// FoldingNormalizer strips diacritics so accented letters keep their base
// letter ("É" -> "e") instead of being removed.
type FoldingNormalizer struct{}

// NewFoldingNormalizer creates a new accent-folding normalizer.
func NewFoldingNormalizer() ports.Normalizer {
	return &FoldingNormalizer{}
}

// Normalize lower-cases, decomposes, drops combining marks and filters to [a-z0-9].
func (n *FoldingNormalizer) Normalize(text string) string {
	// transform chains carry state, so each call builds its own
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripAccents, strings.ToLower(text))
	if err != nil {
		folded = strings.ToLower(text)
	}
	return keepAlnum(folded)
}
