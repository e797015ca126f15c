package eval

import (
	"github.com/docexpr/docexpr/errs"
	"github.com/docexpr/docexpr/parser"
	"github.com/docexpr/docexpr/registry"
	"github.com/docexpr/docexpr/scope"
	"github.com/docexpr/docexpr/value"
)

// Evaluator walks a compiled Expression's AST against an input document.
// It is immutable after construction and safe to reuse across documents.
type Evaluator struct {
	Functions *registry.Registry
	NewObject value.NewObjectFunc
}

// New creates an Evaluator. funcs must be non-nil; newObject defaults to
// value.NewOrderedMap when nil.
func New(funcs *registry.Registry, newObject value.NewObjectFunc) *Evaluator {
	if newObject == nil {
		newObject = value.NewOrderedMap
	}
	return &Evaluator{Functions: funcs, NewObject: newObject}
}

// Search evaluates expr against doc, the library's core entry point
// (SPEC_FULL.md §4.6).
func (ev *Evaluator) Search(expr *parser.Expression, doc value.Value) (value.Value, error) {
	sc := scope.NewRoot(doc)
	return ev.visit(expr.Root(), doc, sc)
}

// Invoke implements registry.Invoker: apply an expression reference
// produced by `&expr` to arg, resuming evaluation in the scope the
// reference closed over.
func (ev *Evaluator) Invoke(ref value.Value, arg value.Value) (value.Value, error) {
	er, ok := ref.(ExprRef)
	if !ok {
		return nil, &errs.InvalidValue{Reason: "expected an expression reference"}
	}
	return ev.visit(er.Node, arg, er.Scope)
}

func (ev *Evaluator) callFunction(node parser.FunctionExpression, current value.Value, sc *scope.Scope) (value.Value, error) {
	args := make([]value.Value, len(node.Args))
	for i, a := range node.Args {
		v, err := ev.visit(a, current, sc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return ev.Functions.Call(ev, node.Name, args)
}
