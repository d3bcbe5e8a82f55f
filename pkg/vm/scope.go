// Package vm provides scope management for the hyperlines engine.
package vm

import "sort"

// Scope is an immutable chained environment. Runtime scopes hold values
// (Scope[any]); the typed walker uses Scope[ast.Type].
//
// A scope's own bindings are fixed when it is created. Lookups that miss
// locally delegate to the parent. Children hold the only link, so scopes
// form independent chains that can be shared freely.
type Scope[V any] struct {
	variables map[string]V
	parent    *Scope[V]
}

// NewScope creates a scope owning bindings, with an optional parent.
// The map is not copied; callers must not modify it afterwards.
func NewScope[V any](parent *Scope[V], bindings map[string]V) *Scope[V] {
	if bindings == nil {
		bindings = map[string]V{}
	}
	return &Scope[V]{
		variables: bindings,
		parent:    parent,
	}
}

// Extend returns a child of s whose own bindings are exactly bindings.
// s may be nil, which makes the child a root.
func (s *Scope[V]) Extend(bindings map[string]V) *Scope[V] {
	return NewScope(s, bindings)
}

// Bind is Extend for a single name.
func (s *Scope[V]) Bind(name string, value V) *Scope[V] {
	return NewScope(s, map[string]V{name: value})
}

// Get retrieves a value by name, searching this scope and then its
// ancestors. A nil receiver holds nothing.
func (s *Scope[V]) Get(name string) (V, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if value, ok := cur.variables[name]; ok {
			return value, true
		}
	}
	var zero V
	return zero, false
}

// GetLocal retrieves a value only from this scope.
func (s *Scope[V]) GetLocal(name string) (V, bool) {
	if s == nil {
		var zero V
		return zero, false
	}
	value, ok := s.variables[name]
	return value, ok
}

// Has reports whether name resolves anywhere in the chain.
func (s *Scope[V]) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Parent returns the parent scope, or nil for a root.
func (s *Scope[V]) Parent() *Scope[V] {
	if s == nil {
		return nil
	}
	return s.parent
}

// Keys returns the names bound directly in this scope, sorted.
func (s *Scope[V]) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.variables))
	for k := range s.variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AllKeys returns every visible name once, innermost binding first in
// chain order. Shadowed names appear only once.
func (s *Scope[V]) AllKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	for cur := s; cur != nil; cur = cur.parent {
		for _, k := range cur.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Size returns the number of names bound directly in this scope.
func (s *Scope[V]) Size() int {
	if s == nil {
		return 0
	}
	return len(s.variables)
}
