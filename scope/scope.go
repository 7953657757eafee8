// Package scope implements the layered variable-resolution structure a
// program observes as its global namespace.
//
// A [Scope] holds its own bindings plus an optional reference to a parent
// scope. Lookup tries the local mapping first and then delegates to the
// parent, forming a deliberate finite chain. Depth is two in practice: a
// globals scope with no parent, and a root scope whose parent is globals.
package scope

import (
	"maps"
	"strings"
)

// Scope is a mapping from name to value used for variable resolution,
// delegating misses to its parent when one is set.
type Scope struct {
	vars   map[string]any
	parent *Scope
}

// New returns an empty Scope delegating lookup misses to parent,
// which may be nil.
func New(parent *Scope) *Scope {
	return &Scope{
		vars:   map[string]any{},
		parent: parent,
	}
}

// Parent returns the scope this one delegates to, or nil.
func (s *Scope) Parent() *Scope { return s.parent }

// Define binds name to value in this scope, overwriting any earlier binding
// of the same name.
func (s *Scope) Define(name string, value any) {
	s.vars[name] = value
}

// Default binds name to value only when this scope has no local binding for
// name. Existing entries are never overwritten.
func (s *Scope) Default(name string, value any) {
	if _, ok := s.vars[name]; !ok {
		s.vars[name] = value
	}
}

// Lookup resolves name in this scope, deferring to the parent chain on a
// local miss.
func (s *Scope) Lookup(name string) (any, bool) {
	if v, ok := s.vars[name]; ok {
		return v, true
	}

	if s.parent != nil {
		return s.parent.Lookup(name)
	}

	return nil, false
}

// Len returns the number of local bindings.
func (s *Scope) Len() int { return len(s.vars) }

// Bindings returns the live local binding map. Mutations through the map are
// visible to every holder, which is how the root scope's "global" binding
// observes entries installed into globals after it was created.
func (s *Scope) Bindings() map[string]any { return s.vars }

// Flatten materializes the resolution chain into a single map with the same
// observable lookup order: parent bindings first, overlaid by local entries.
func (s *Scope) Flatten() map[string]any {
	var env map[string]any

	if s.parent != nil {
		env = s.parent.Flatten()
	} else {
		env = make(map[string]any, len(s.vars))
	}

	maps.Copy(env, s.vars)

	return env
}

// Release drops all bindings and the parent link. The driver calls Release
// exactly once per scope after execution; later lookups miss.
func (s *Scope) Release() {
	s.vars = map[string]any{}
	s.parent = nil
}

// Sanitize rewrites every byte of a caller-chosen key that is outside
// [A-Za-z0-9_] to '_' so the result is always a valid variable name.
// Distinct keys may collide after rewriting; the caller's insertion order
// decides which survives.
func Sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return '_'
		}

		return r
	}, key)
}
