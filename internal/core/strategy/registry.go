package strategy

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/baditaflorin/go_palindrome/internal/ports"
)

// ErrUnknownStrategy is returned by Lookup for names that are not registered.
var ErrUnknownStrategy = errors.New("unknown strategy")

// IsNil reports whether s is nil or an interface holding a nil pointer.
func IsNil(s ports.Strategy) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// builtins lists the strategies in reporting order.
var builtins = []func() ports.Strategy{
	NewTwoPointer,
	NewStack,
	NewDeque,
	NewRecursive,
	NewReverse,
	NewQueueStack,
	NewLinkedList,
}

// All returns one instance of every built-in strategy in a stable order.
func All() []ports.Strategy {
	all := make([]ports.Strategy, 0, len(builtins))
	for _, create := range builtins {
		all = append(all, create())
	}
	return all
}

// Names returns the names of the built-in strategies in the order of All.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, s := range All() {
		names = append(names, s.Name())
	}
	return names
}

// Default returns the strategy used when the caller selects none.
func Default() ports.Strategy {
	return NewTwoPointer()
}

// Lookup returns the built-in strategy with the given name.
// Matching ignores case and surrounding whitespace.
func Lookup(name string) (ports.Strategy, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, s := range All() {
		if s.Name() == want {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
}

// LookupAll resolves a list of names, preserving order.
// An empty list yields every built-in strategy.
func LookupAll(names []string) ([]ports.Strategy, error) {
	if len(names) == 0 {
		return All(), nil
	}
	resolved := make([]ports.Strategy, 0, len(names))
	for _, name := range names {
		s, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, s)
	}
	return resolved, nil
}
