// Package eval implements the tree-walking evaluator: the function that
// turns a compiled parser.Expression plus an input document into a
// value.Value. Grounded on the teacher's eval package (eval/eval.go),
// generalized from statement/environment execution to this language's
// expression-only, projection-aware semantics, and dispatched with a type
// switch over parser.Node rather than the teacher's visitor pattern, per
// SPEC_FULL.md §4.2's design note.
package eval

import (
	"github.com/docexpr/docexpr/parser"
	"github.com/docexpr/docexpr/scope"
	"github.com/docexpr/docexpr/value"
)

// ExprRef is the runtime value an `&expr` expression-reference literal
// produces: a deferred sub-expression closed over the scope it was
// created in, later applied to different "current" values by builtins
// like map/sort_by (spec.md §4.4). It lives in this package rather than
// value, to avoid value importing parser and scope for one variant.
type ExprRef struct {
	Node  parser.Node
	Scope *scope.Scope
}

func (ExprRef) Kind() value.Kind  { return value.KindExpref }
func (ExprRef) String() string    { return "<expression-reference>" }
func (ExprRef) GoString() string  { return "<expression-reference>" }

var _ value.Value = ExprRef{}
