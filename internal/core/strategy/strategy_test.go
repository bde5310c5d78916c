package strategy

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategiesOnKnownInputs(t *testing.T) {
	tests := []struct {
		normalized string
		want       bool
	}{
		{"", true},
		{"a", true},
		{"7", true},
		{"aa", true},
		{"ab", false},
		{"aba", true},
		{"abca", false},
		{"madam", true},
		{"racecar", true},
		{"helloworld", false},
		{"amanaplanacanalpanama", true},
		{"wasitacaroracatisaw", true},
		{"12321", true},
		{"123321", true},
		{"123421", false},
	}

	for _, s := range All() {
		s := s
		t.Run(s.Name(), func(t *testing.T) {
			for _, tc := range tests {
				assert.Equal(t, tc.want, s.Check(tc.normalized), "input %q", tc.normalized)
			}
		})
	}
}

// Every string over {a,b,c} up to length 7 must get the same verdict from
// every strategy.
func TestStrategiesAgreeExhaustively(t *testing.T) {
	strategies := All()
	var inputs []string
	var grow func(prefix string)
	grow = func(prefix string) {
		inputs = append(inputs, prefix)
		if len(prefix) == 7 {
			return
		}
		for _, c := range "abc" {
			grow(prefix + string(c))
		}
	}
	grow("")

	for _, in := range inputs {
		want := strategies[0].Check(in)
		for _, s := range strategies[1:] {
			if got := s.Check(in); got != want {
				t.Fatalf("%s(%q) = %v, %s says %v", s.Name(), in, got, strategies[0].Name(), want)
			}
		}
	}
}

func TestStrategiesOnLongInput(t *testing.T) {
	half := strings.Repeat("abcdefghij0123456789", 500)
	palindrome := half + "x" + reverse(half)
	notPalindrome := half + "xy" + reverse(half)

	for _, s := range All() {
		if s.Name() == ReverseName {
			continue // quadratic, covered by the short cases
		}
		assert.True(t, s.Check(palindrome), s.Name())
		assert.False(t, s.Check(notPalindrome), s.Name())
	}
}

func TestStrategyMetadata(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range All() {
		assert.NotEmpty(t, s.Name())
		assert.NotEmpty(t, s.Description())
		assert.False(t, seen[s.Name()], "duplicate name %s", s.Name())
		seen[s.Name()] = true
	}
	assert.Equal(t, []string{
		TwoPointerName, StackName, DequeName, RecursiveName,
		ReverseName, QueueStackName, LinkedListName,
	}, Names())
}

func TestLookup(t *testing.T) {
	s, err := Lookup(" Deque ")
	require.NoError(t, err)
	assert.Equal(t, DequeName, s.Name())

	_, err = Lookup("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
	assert.Contains(t, err.Error(), TwoPointerName)

	assert.Equal(t, TwoPointerName, Default().Name())
}

func TestLookupAll(t *testing.T) {
	all, err := LookupAll(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(Names()))

	some, err := LookupAll([]string{"stack", "recursive"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, StackName, some[0].Name())
	assert.Equal(t, RecursiveName, some[1].Name())

	_, err = LookupAll([]string{"stack", "nope"})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func TestIsNil(t *testing.T) {
	var typedNil *TwoPointer

	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(typedNil))
	assert.False(t, IsNil(NewTwoPointer()))
	for _, s := range All() {
		assert.False(t, IsNil(s), s.Name())
	}
}
