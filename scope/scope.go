// Package scope implements the lexical variable chain the evaluator
// threads through a query: a stack of name-to-value bindings anchored at
// an immutable root document, grounded on the teacher's scope.Scope
// chain-walk (scope/scope.go) but trimmed to what this language needs —
// no constants, no type-locked bindings, since `let` here only ever binds
// ordinary values (SPEC_FULL.md §4).
package scope

import "github.com/docexpr/docexpr/value"

// Scope is one frame of the lexical chain. Root is non-nil only on the
// outermost scope, and is what the `$` AST node resolves to regardless of
// how deeply nested the current scope is.
type Scope struct {
	vars   map[string]value.Value
	parent *Scope
	root   value.Value
}

// NewRoot creates the outermost scope, anchored at doc.
func NewRoot(doc value.Value) *Scope {
	return &Scope{root: doc}
}

// Child creates a new scope nested under s, used to push `let` bindings.
func (s *Scope) Child(vars map[string]value.Value) *Scope {
	return &Scope{vars: vars, parent: s}
}

// Lookup walks the chain top-to-bottom for name, returning (value.Nil,
// false) if absent anywhere — spec.md §3 states absent names resolve to
// null rather than erroring, so callers typically ignore the bool and use
// the value directly.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return value.Nil, false
}

// Root returns the document anchoring this scope chain, addressed by `$`.
func (s *Scope) Root() value.Value {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.root != nil {
			return cur.root
		}
	}
	return value.Nil
}
