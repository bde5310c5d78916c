package normalizer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/baditaflorin/go_palindrome/internal/pool"
	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// Decisions stored in the ASCII lookup table
const (
	drop  byte = 0
	keep  byte = 1
	lower byte = 2
)

// OptimizedNormalizer produces the same output as DefaultNormalizer using a
// precomputed ASCII table and pooled buffers.
type OptimizedNormalizer struct {
	// Pre-computed decision table for ASCII characters (0-127)
	asciiTable [128]byte

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(256),
	}

	for i := 0; i < 128; i++ {
		b := byte(i)
		switch {
		case b >= 'a' && b <= 'z', b >= '0' && b <= '9':
			n.asciiTable[i] = keep
		case b >= 'A' && b <= 'Z':
			n.asciiTable[i] = lower
		default:
			n.asciiTable[i] = drop
		}
	}

	return n
}

// Normalize lower-cases and filters the text in a single pass
func (n *OptimizedNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := n.bytePool.GetSized(len(text))
	defer n.bytePool.Put(buffer)

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	if asciiOnly {
		for i := 0; i < len(text); i++ {
			b := text[i]
			switch n.asciiTable[b] {
			case keep:
				*buffer = append(*buffer, b)
			case lower:
				*buffer = append(*buffer, b+('a'-'A'))
			}
		}
		return string(*buffer)
	}

	// Some non-ASCII runes lower-case into ASCII (KELVIN SIGN -> 'k')
	for _, r := range text {
		if r < 128 {
			switch n.asciiTable[r] {
			case keep:
				*buffer = append(*buffer, byte(r))
			case lower:
				*buffer = append(*buffer, byte(r)+('a'-'A'))
			}
			continue
		}
		if lr := unicode.ToLower(r); isAlnum(lr) {
			*buffer = append(*buffer, byte(lr))
		}
	}

	return string(*buffer)
}

// NormalizerFactory creates the appropriate normalizer based on performance requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation
type NormalizerType int

const (
	// DefaultNormalizerType is the reference normalizer
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses a lookup table and buffer pooling
	OptimizedNormalizerType
	// FoldingNormalizerType strips diacritics before filtering
	FoldingNormalizerType
)

var normalizerTypeNames = map[NormalizerType]string{
	DefaultNormalizerType:   "default",
	OptimizedNormalizerType: "optimized",
	FoldingNormalizerType:   "folding",
}

// String returns the configuration name of the normalizer type
func (t NormalizerType) String() string {
	if name, ok := normalizerTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("NormalizerType(%d)", int(t))
}

// ParseNormalizerType maps a configuration name to a NormalizerType.
// The empty string selects the default normalizer.
func ParseNormalizerType(name string) (NormalizerType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultNormalizerType, nil
	case "optimized":
		return OptimizedNormalizerType, nil
	case "folding":
		return FoldingNormalizerType, nil
	default:
		return DefaultNormalizerType, fmt.Errorf("unknown normalizer %q", name)
	}
}

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	case FoldingNormalizerType:
		return NewFoldingNormalizer()
	default:
		return NewDefaultNormalizer()
	}
}
