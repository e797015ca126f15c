package eval

import (
	"github.com/docexpr/docexpr/errs"
	"github.com/docexpr/docexpr/parser"
	"github.com/docexpr/docexpr/scope"
	"github.com/docexpr/docexpr/value"
)

// visitArithmetic requires both operands be numeric; a non-numeric operand
// yields null rather than an error (spec.md §9 resolves this Open Question
// in favor of null-returning, diverging from implementations that raise an
// invalid-type error here).
func (ev *Evaluator) visitArithmetic(n parser.Arithmetic, current value.Value, sc *scope.Scope) (value.Value, error) {
	leftV, err := ev.visit(n.Left, current, sc)
	if err != nil {
		return nil, err
	}
	rightV, err := ev.visit(n.Right, current, sc)
	if err != nil {
		return nil, err
	}
	left, ok := value.AsNumber(leftV)
	if !ok {
		return value.Nil, nil
	}
	right, ok := value.AsNumber(rightV)
	if !ok {
		return value.Nil, nil
	}
	switch n.Op {
	case parser.ArithAdd:
		return value.Add(left, right), nil
	case parser.ArithSub:
		return value.Sub(left, right), nil
	case parser.ArithMul:
		return value.Mul(left, right), nil
	case parser.ArithDiv:
		if right.Float64() == 0 {
			return nil, &errs.InvalidValue{Reason: "division by zero"}
		}
		return value.Float(left.Float64() / right.Float64()), nil
	case parser.ArithFloorDiv:
		if right.Float64() == 0 {
			return nil, &errs.InvalidValue{Reason: "division by zero"}
		}
		return value.FloorDiv(left, right), nil
	default: // ArithMod
		if right.Float64() == 0 {
			return nil, &errs.InvalidValue{Reason: "division by zero"}
		}
		return value.Mod(left, right), nil
	}
}

func (ev *Evaluator) visitArithmeticUnary(n parser.ArithmeticUnary, current value.Value, sc *scope.Scope) (value.Value, error) {
	v, err := ev.visit(n.Child, current, sc)
	if err != nil {
		return nil, err
	}
	num, ok := value.AsNumber(v)
	if !ok {
		return value.Nil, nil
	}
	if n.Op == parser.ArithSub {
		return value.Sub(value.Int(0), num), nil
	}
	return num, nil
}
