package registry

import (
	"math"
	"strconv"

	"github.com/docexpr/docexpr/value"
)

func registerNumeric(r *Registry) {
	r.Register(&Builtin{Name: "abs", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TNumber}}}}, Call: builtinAbs})
	r.Register(&Builtin{Name: "ceil", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TNumber}}}}, Call: builtinCeil})
	r.Register(&Builtin{Name: "floor", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TNumber}}}}, Call: builtinFloor})
	r.Register(&Builtin{Name: "sum", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArrayNumber}}}}, Call: builtinSum})
	r.Register(&Builtin{Name: "avg", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArrayNumber}}}}, Call: builtinAvg})
	r.Register(&Builtin{Name: "max", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArrayNumber, TArrayString}}}}, Call: builtinMax})
	r.Register(&Builtin{Name: "min", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArrayNumber, TArrayString}}}}, Call: builtinMin})
	r.Register(&Builtin{Name: "to_number", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TAny}}}}, Call: builtinToNumber})
}

func builtinAbs(_ Invoker, args []value.Value) (value.Value, error) {
	n, err := asNumber("abs", 0, args)
	if err != nil {
		return nil, err
	}
	if n.IsInt() {
		i := n.Int64()
		if i < 0 {
			i = -i
		}
		return value.Int(i), nil
	}
	return value.Float(math.Abs(n.Float64())), nil
}

func builtinCeil(_ Invoker, args []value.Value) (value.Value, error) {
	n, err := asNumber("ceil", 0, args)
	if err != nil {
		return nil, err
	}
	if n.IsInt() {
		return n, nil
	}
	return value.Int(int64(math.Ceil(n.Float64()))), nil
}

func builtinFloor(_ Invoker, args []value.Value) (value.Value, error) {
	n, err := asNumber("floor", 0, args)
	if err != nil {
		return nil, err
	}
	if n.IsInt() {
		return n, nil
	}
	return value.Int(int64(math.Floor(n.Float64()))), nil
}

func builtinSum(_ Invoker, args []value.Value) (value.Value, error) {
	nums, err := asHomogeneousNumberArray("sum", 0, args)
	if err != nil {
		return nil, err
	}
	total := value.Int(0)
	for _, n := range nums {
		total = value.Add(total, n)
	}
	return total, nil
}

func builtinAvg(_ Invoker, args []value.Value) (value.Value, error) {
	nums, err := asHomogeneousNumberArray("avg", 0, args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return value.Nil, nil
	}
	total := value.Int(0)
	for _, n := range nums {
		total = value.Add(total, n)
	}
	return value.Float(total.Float64() / float64(len(nums))), nil
}

// builtinMax and builtinMin accept an array of numbers or an array of
// strings (the same array<number>|array<string> homogeneity sortHomogeneous
// enforces for sort/sort_by), comparing numerically or lexicographically.
func builtinMax(_ Invoker, args []value.Value) (value.Value, error) {
	return extreme("max", args, compareKey)
}

func builtinMin(_ Invoker, args []value.Value) (value.Value, error) {
	return extreme("min", args, func(a, b value.Value) int { return -compareKey(a, b) })
}

func extreme(fn string, args []value.Value, better func(a, b value.Value) int) (value.Value, error) {
	arr, err := asArray(fn, 0, args)
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return value.Nil, nil
	}
	if err := checkHomogeneous(arr, fn, 0, args[0]); err != nil {
		return nil, err
	}
	best := arr[0]
	for _, el := range arr[1:] {
		if better(el, best) > 0 {
			best = el
		}
	}
	return best, nil
}

func builtinToNumber(_ Invoker, args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.Number:
		return v, nil
	case value.String:
		if n, ok := parseNumberLiteral(string(v)); ok {
			return n, nil
		}
		return value.Nil, nil
	default:
		return value.Nil, nil
	}
}

func parseNumberLiteral(s string) (value.Number, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Int(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return value.Float(f), true
	}
	return value.Number{}, false
}
