package vm

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property-based tests for Scope chains.

// TestProperty_ScopeLookupThroughChain checks that a binding made at any
// depth is visible from every descendant until shadowed.
func TestProperty_ScopeLookupThroughChain(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("root binding is visible from deep descendants", prop.ForAll(
		func(name string, value int, depth int) bool {
			scope := NewScope[any](nil, map[string]any{name: value})
			for i := 0; i < depth; i++ {
				scope = scope.Bind("_unrelated", i)
			}
			got, ok := scope.Get(name)
			return ok && got == value
		},
		gen.Identifier(),
		gen.Int(),
		gen.IntRange(0, 50),
	))

	properties.Property("innermost binding wins", prop.ForAll(
		func(name string, outer int, inner int) bool {
			root := NewScope[any](nil, map[string]any{name: outer})
			child := root.Bind(name, inner)
			got, _ := child.Get(name)
			rootGot, _ := root.Get(name)
			return got == inner && rootGot == outer
		},
		gen.Identifier(),
		gen.Int(),
		gen.Int(),
	))

	properties.Property("unbound names are never found", prop.ForAll(
		func(name string, value int) bool {
			scope := NewScope[any](nil, map[string]any{name: value})
			_, ok := scope.Bind("a"+name, value).Get("b" + name)
			return !ok
		},
		gen.Identifier(),
		gen.Int(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
