// Package docexpr implements a JMESPath-like document query language: a
// hand-written lexer, a Pratt operator-precedence parser with a compiled-
// expression cache, and a tree-walking evaluator over a tagged-union
// value domain. See SPEC_FULL.md for the full design.
package docexpr

import (
	"github.com/docexpr/docexpr/lexer"
	"github.com/docexpr/docexpr/parser"
	"github.com/docexpr/docexpr/registry"
	"github.com/docexpr/docexpr/value"
)

// Options configures compilation and evaluation. The zero value is valid:
// it means the default cache, the built-in function registry with no
// overlay, legacy literals disabled, and value.NewOrderedMap for object
// construction.
type Options struct {
	legacyLiterals bool
	functions      *registry.Registry
	newObject      value.NewObjectFunc
	cache          *parser.Cache
}

// Option mutates an Options under construction.
type Option func(*Options)

// WithLegacyLiterals enables the permissive backtick-literal fallback
// rule (SPEC_FULL.md §4.1): content that fails to parse as JSON is
// reparsed after being wrapped in quotes.
func WithLegacyLiterals(enabled bool) Option {
	return func(o *Options) { o.legacyLiterals = enabled }
}

// WithFunctions installs an overlay registry of custom functions. Custom
// functions are looked up first; the built-in registry is consulted only
// when the overlay has no entry for the called name — the overlay-first
// precedence spec.md requires for user-supplied functions to be able to
// shadow (and spec.md's Open Questions resolve in favor of) the built-ins.
func WithFunctions(custom *registry.Registry) Option {
	return func(o *Options) { o.functions = custom }
}

// WithNewObject overrides the constructor used for multi-select-dict
// results. The built-in functions (from_items, merge, group_by) do not
// use it: they always build value.NewOrderedMap objects. The default,
// value.NewOrderedMap, preserves insertion order.
func WithNewObject(fn value.NewObjectFunc) Option {
	return func(o *Options) { o.newObject = fn }
}

// WithCache routes compilation through a shared *parser.Cache instead of
// the package-level default one.
func WithCache(c *parser.Cache) Option {
	return func(o *Options) { o.cache = c }
}

func resolve(opts []Option) Options {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o Options) lexerOptions() lexer.Options {
	return lexer.Options{LegacyLiterals: o.legacyLiterals}
}

func (o Options) newObjectFunc() value.NewObjectFunc {
	if o.newObject != nil {
		return o.newObject
	}
	return value.NewOrderedMap
}
