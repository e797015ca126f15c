package eval

import (
	"github.com/docexpr/docexpr/errs"
	"github.com/docexpr/docexpr/parser"
	"github.com/docexpr/docexpr/scope"
	"github.com/docexpr/docexpr/value"
)

// visit is the evaluator's core recursive dispatch: every AST node shape
// gets evaluated against a "current" focus value and a lexical scope
// chain, per the node-by-node rules in spec.md §4.3.
func (ev *Evaluator) visit(node parser.Node, current value.Value, sc *scope.Scope) (value.Value, error) {
	switch n := node.(type) {
	case parser.Current:
		return current, nil
	case parser.Root:
		return sc.Root(), nil
	case parser.Identity:
		return current, nil
	case parser.Field:
		return ev.visitField(n, current)
	case parser.Index:
		return ev.visitIndex(n, current)
	case parser.Slice:
		return ev.visitSlice(n, current)
	case parser.Literal:
		return n.Value, nil
	case parser.VariableRef:
		v, _ := sc.Lookup(n.Name)
		return v, nil
	case parser.Subexpression:
		left, err := ev.visit(n.Left, current, sc)
		if err != nil {
			return nil, err
		}
		return ev.visit(n.Right, left, sc)
	case parser.Projection:
		return ev.visitProjection(n, current, sc)
	case parser.ValueProjection:
		return ev.visitValueProjection(n, current, sc)
	case parser.FilterProjection:
		return ev.visitFilterProjection(n, current, sc)
	case parser.Flatten:
		return ev.visitFlatten(n, current, sc)
	case parser.MultiSelectList:
		return ev.visitMultiSelectList(n, current, sc)
	case parser.MultiSelectDict:
		return ev.visitMultiSelectDict(n, current, sc)
	case parser.Comparator:
		return ev.visitComparator(n, current, sc)
	case parser.Or:
		return ev.visitOr(n, current, sc)
	case parser.And:
		return ev.visitAnd(n, current, sc)
	case parser.Not:
		child, err := ev.visit(n.Child, current, sc)
		if err != nil {
			return nil, err
		}
		return value.BoolOf(!value.Truthy(child)), nil
	case parser.Pipe:
		left, err := ev.visit(n.Left, current, sc)
		if err != nil {
			return nil, err
		}
		return ev.visit(n.Right, left, sc)
	case parser.FunctionExpression:
		return ev.callFunction(n, current, sc)
	case parser.Expref:
		return ExprRef{Node: n.Child, Scope: sc}, nil
	case parser.Arithmetic:
		return ev.visitArithmetic(n, current, sc)
	case parser.ArithmeticUnary:
		return ev.visitArithmeticUnary(n, current, sc)
	case parser.LetExpression:
		return ev.visitLet(n, current, sc)
	case parser.Ternary:
		cond, err := ev.visit(n.Cond, current, sc)
		if err != nil {
			return nil, err
		}
		if value.Truthy(cond) {
			return ev.visit(n.Then, current, sc)
		}
		return ev.visit(n.Else, current, sc)
	default:
		return nil, &errs.InvalidValue{Reason: "unrecognized expression node"}
	}
}

func (ev *Evaluator) visitField(n parser.Field, current value.Value) (value.Value, error) {
	obj, ok := current.(value.Object)
	if !ok {
		return value.Nil, nil
	}
	v, ok := obj.Get(n.Name)
	if !ok {
		return value.Nil, nil
	}
	return v, nil
}

func (ev *Evaluator) visitIndex(n parser.Index, current value.Value) (value.Value, error) {
	arr, ok := current.(value.Array)
	if !ok {
		return value.Nil, nil
	}
	idx := n.Value
	if idx < 0 {
		idx += int64(len(arr))
	}
	if idx < 0 || idx >= int64(len(arr)) {
		return value.Nil, nil
	}
	return arr[idx], nil
}

func (ev *Evaluator) visitProjection(n parser.Projection, current value.Value, sc *scope.Scope) (value.Value, error) {
	left, err := ev.visit(n.Left, current, sc)
	if err != nil {
		return nil, err
	}
	arr, ok := left.(value.Array)
	if !ok {
		return value.Nil, nil
	}
	return ev.projectOver(arr, n.Right, sc)
}

func (ev *Evaluator) visitValueProjection(n parser.ValueProjection, current value.Value, sc *scope.Scope) (value.Value, error) {
	left, err := ev.visit(n.Left, current, sc)
	if err != nil {
		return nil, err
	}
	obj, ok := left.(value.Object)
	if !ok {
		return value.Nil, nil
	}
	values := make(value.Array, 0, obj.Len())
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		values = append(values, v)
	}
	return ev.projectOver(values, n.Right, sc)
}

// projectOver maps rhs over every element of elems, dropping elements
// whose result is null (spec.md §4.3's projection null-dropping rule).
func (ev *Evaluator) projectOver(elems value.Array, rhs parser.Node, sc *scope.Scope) (value.Value, error) {
	out := make(value.Array, 0, len(elems))
	for _, el := range elems {
		v, err := ev.visit(rhs, el, sc)
		if err != nil {
			return nil, err
		}
		if v.Kind() == value.KindNull {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *Evaluator) visitFilterProjection(n parser.FilterProjection, current value.Value, sc *scope.Scope) (value.Value, error) {
	source, err := ev.visit(n.Source, current, sc)
	if err != nil {
		return nil, err
	}
	arr, ok := source.(value.Array)
	if !ok {
		return value.Nil, nil
	}
	out := make(value.Array, 0, len(arr))
	for _, el := range arr {
		pred, err := ev.visit(n.Predicate, el, sc)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(pred) {
			continue
		}
		v, err := ev.visit(n.Continuation, el, sc)
		if err != nil {
			return nil, err
		}
		if v.Kind() == value.KindNull {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *Evaluator) visitFlatten(n parser.Flatten, current value.Value, sc *scope.Scope) (value.Value, error) {
	left, err := ev.visit(n.Left, current, sc)
	if err != nil {
		return nil, err
	}
	arr, ok := left.(value.Array)
	if !ok {
		return value.Nil, nil
	}
	out := make(value.Array, 0, len(arr))
	for _, el := range arr {
		if nested, ok := el.(value.Array); ok {
			out = append(out, nested...)
			continue
		}
		out = append(out, el)
	}
	return out, nil
}

func (ev *Evaluator) visitMultiSelectList(n parser.MultiSelectList, current value.Value, sc *scope.Scope) (value.Value, error) {
	if current.Kind() == value.KindNull {
		return value.Nil, nil
	}
	out := make(value.Array, len(n.Children))
	for i, child := range n.Children {
		v, err := ev.visit(child, current, sc)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (ev *Evaluator) visitMultiSelectDict(n parser.MultiSelectDict, current value.Value, sc *scope.Scope) (value.Value, error) {
	if current.Kind() == value.KindNull {
		return value.Nil, nil
	}
	out := ev.NewObject()
	for _, entry := range n.Entries {
		v, err := ev.visit(entry.Value, current, sc)
		if err != nil {
			return nil, err
		}
		out.Set(entry.Key, v)
	}
	return out, nil
}

func (ev *Evaluator) visitOr(n parser.Or, current value.Value, sc *scope.Scope) (value.Value, error) {
	left, err := ev.visit(n.Left, current, sc)
	if err != nil {
		return nil, err
	}
	if value.Truthy(left) {
		return left, nil
	}
	return ev.visit(n.Right, current, sc)
}

func (ev *Evaluator) visitAnd(n parser.And, current value.Value, sc *scope.Scope) (value.Value, error) {
	left, err := ev.visit(n.Left, current, sc)
	if err != nil {
		return nil, err
	}
	if !value.Truthy(left) {
		return left, nil
	}
	return ev.visit(n.Right, current, sc)
}

func (ev *Evaluator) visitComparator(n parser.Comparator, current value.Value, sc *scope.Scope) (value.Value, error) {
	left, err := ev.visit(n.Left, current, sc)
	if err != nil {
		return nil, err
	}
	right, err := ev.visit(n.Right, current, sc)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case parser.OpEq:
		return value.BoolOf(value.Equal(left, right)), nil
	case parser.OpNe:
		return value.BoolOf(!value.Equal(left, right)), nil
	}
	ln, lok := value.AsNumber(left)
	rn, rok := value.AsNumber(right)
	if !lok || !rok {
		return value.Nil, nil
	}
	cmp := value.Compare(ln, rn)
	switch n.Op {
	case parser.OpLt:
		return value.BoolOf(cmp < 0), nil
	case parser.OpLte:
		return value.BoolOf(cmp <= 0), nil
	case parser.OpGt:
		return value.BoolOf(cmp > 0), nil
	default:
		return value.BoolOf(cmp >= 0), nil
	}
}

func (ev *Evaluator) visitLet(n parser.LetExpression, current value.Value, sc *scope.Scope) (value.Value, error) {
	vars := make(map[string]value.Value, len(n.Bindings))
	letScope := sc.Child(vars)
	for _, b := range n.Bindings {
		v, err := ev.visit(b.Expr, current, letScope)
		if err != nil {
			return nil, err
		}
		vars[b.Name] = v
	}
	return ev.visit(n.Body, current, letScope)
}
