// Package registry implements the pluggable function table: the set of
// builtins a query can call by name, plus the machinery to register more.
// Grounded on the teacher's std.Builtins (std/builtins.go) — a named
// Callback held in a lookup table — but instance-scoped rather than a
// package-level global, since the WithFunctions overlay
// needs one registry per caller rather than shared mutable state.
package registry

import (
	"strconv"

	"github.com/docexpr/docexpr/errs"
	"github.com/docexpr/docexpr/value"
)

// Invoker lets a builtin call back into the evaluator to apply an
// expression reference to an element, the way map/sort_by/min_by/max_by
// need to (SPEC_FULL.md §4.4).
type Invoker interface {
	Invoke(ref value.Value, arg value.Value) (value.Value, error)
}

// Callback implements one builtin's behavior.
type Callback func(inv Invoker, args []value.Value) (value.Value, error)

// ParamType names the argument-type check a ParamSpec enforces.
type ParamType int

const (
	TAny ParamType = iota
	TNumber
	TString
	TBoolean
	TArray
	TObject
	TExpref
	TArrayNumber // array whose every element is a number
	TArrayString // array whose every element is a string
)

// ParamSpec describes one formal parameter: the set of types it accepts
// (an "or" of alternatives, e.g. contains accepts array-or-string).
type ParamSpec struct {
	Types []ParamType
}

// Signature is a builtin's formal parameter list, with an optional
// variadic tail.
type Signature struct {
	Params   []ParamSpec
	Variadic *ParamSpec // nil if the function takes a fixed arity
}

// Builtin is one named, callable, type-checked function.
type Builtin struct {
	Name string
	Sig  Signature
	Call Callback
}

// Registry holds a name-to-Builtin table. The zero value is not usable;
// build one with NewRegistry or NewEmptyRegistry.
type Registry struct {
	fns map[string]*Builtin
}

// NewEmptyRegistry returns a Registry with no builtins registered, the
// starting point for a caller-supplied WithFunctions overlay.
func NewEmptyRegistry() *Registry {
	return &Registry{fns: make(map[string]*Builtin)}
}

// NewRegistry returns a Registry preloaded with every builtin this
// package implements (SPEC_FULL.md §4.4/§4.5).
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	registerNumeric(r)
	registerString(r)
	registerArray(r)
	registerSort(r)
	return r
}

// Merge returns a new Registry containing every entry of base, with every
// entry of overlay registered on top — so a name present in both resolves
// to overlay's Builtin. This is how a caller-supplied WithFunctions
// table takes precedence over the built-ins without losing access to the
// built-ins it doesn't redefine (SPEC_FULL.md §4.7).
func Merge(base, overlay *Registry) *Registry {
	r := NewEmptyRegistry()
	for _, b := range base.fns {
		r.Register(b)
	}
	if overlay != nil {
		for _, b := range overlay.fns {
			r.Register(b)
		}
	}
	return r
}

// Register adds or replaces a builtin.
func (r *Registry) Register(b *Builtin) {
	r.fns[b.Name] = b
}

// Lookup returns the builtin registered under name, if any.
func (r *Registry) Lookup(name string) (*Builtin, bool) {
	b, ok := r.fns[name]
	return b, ok
}

// Names lists every registered function name, for introspection and
// tests.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	return names
}

// Call looks up name, checks arity, and invokes it. Per-argument type
// checking happens inside each Callback via the helpers in args.go, since
// several builtins accept a union of types that Signature alone can't
// express precisely (e.g. contains' subject may be array or string).
func (r *Registry) Call(inv Invoker, name string, args []value.Value) (value.Value, error) {
	b, ok := r.Lookup(name)
	if !ok {
		return nil, &errs.UnknownFunction{Function: name}
	}
	if err := checkArity(b, args); err != nil {
		return nil, err
	}
	return b.Call(inv, args)
}

func checkArity(b *Builtin, args []value.Value) error {
	min := len(b.Sig.Params)
	if b.Sig.Variadic == nil {
		if len(args) != min {
			return &errs.InvalidArity{Function: b.Name, Expected: arityString(min, false), Got: len(args)}
		}
		return nil
	}
	if len(args) < min {
		return &errs.InvalidArity{Function: b.Name, Expected: arityString(min, true), Got: len(args)}
	}
	return nil
}

func arityString(min int, orMore bool) string {
	if orMore {
		return strconv.Itoa(min) + " or more"
	}
	return strconv.Itoa(min)
}
