package registry

import "github.com/docexpr/docexpr/value"

// registerSort wires the builtins that take an Expref argument and call
// back into the evaluator through Invoker — map/sort_by/max_by/min_by/
// group_by (spec.md §4.4).
func registerSort(r *Registry) {
	r.Register(&Builtin{Name: "map", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TExpref}}, {Types: []ParamType{TArray}}}}, Call: builtinMap})
	r.Register(&Builtin{Name: "sort_by", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArray}}, {Types: []ParamType{TExpref}}}}, Call: builtinSortBy})
	r.Register(&Builtin{Name: "max_by", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArray}}, {Types: []ParamType{TExpref}}}}, Call: builtinMaxBy})
	r.Register(&Builtin{Name: "min_by", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArray}}, {Types: []ParamType{TExpref}}}}, Call: builtinMinBy})
	r.Register(&Builtin{Name: "group_by", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArray}}, {Types: []ParamType{TExpref}}}}, Call: builtinGroupBy})
}

func builtinMap(inv Invoker, args []value.Value) (value.Value, error) {
	arr, err := asArray("map", 1, args)
	if err != nil {
		return nil, err
	}
	out := make(value.Array, len(arr))
	for i, el := range arr {
		v, err := inv.Invoke(args[0], el)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// keyedBy evaluates ref against every element of arr, requiring every
// result be a number or every result be a string (the same homogeneity
// rule sort/sort_by share).
func keyedBy(inv Invoker, fn string, ref value.Value, arr value.Array) (value.Array, error) {
	keys := make(value.Array, len(arr))
	for i, el := range arr {
		k, err := inv.Invoke(ref, el)
		if err != nil {
			return nil, err
		}
		switch k.(type) {
		case value.Number, value.String:
		default:
			return nil, invalidType(fn, 1, "expression returning a number or string", k)
		}
		if i > 0 && k.Kind() != keys[0].Kind() {
			return nil, invalidType(fn, 1, "expression returning the same type for every element", k)
		}
		keys[i] = k
	}
	return keys, nil
}

func builtinSortBy(inv Invoker, args []value.Value) (value.Value, error) {
	arr, err := asArray("sort_by", 0, args)
	if err != nil {
		return nil, err
	}
	keys, err := keyedBy(inv, "sort_by", args[1], arr)
	if err != nil {
		return nil, err
	}
	out := make(value.Array, len(arr))
	copy(out, arr)
	idx := make([]int, len(arr))
	for i := range idx {
		idx[i] = i
	}
	insertionSortIdx(idx, func(a, b int) bool {
		return lessKey(keys[a], keys[b])
	})
	for i, j := range idx {
		out[i] = arr[j]
	}
	return out, nil
}

func lessKey(a, b value.Value) bool {
	if na, ok := value.AsNumber(a); ok {
		nb, _ := value.AsNumber(b)
		return value.Compare(na, nb) < 0
	}
	return a.(value.String) < b.(value.String)
}

func insertionSortIdx(idx []int, less func(a, b int) bool) {
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && less(idx[j], idx[j-1]); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
}

func builtinMaxBy(inv Invoker, args []value.Value) (value.Value, error) {
	return extremeBy(inv, "max_by", args, 1)
}

func builtinMinBy(inv Invoker, args []value.Value) (value.Value, error) {
	return extremeBy(inv, "min_by", args, -1)
}

func extremeBy(inv Invoker, fn string, args []value.Value, want int) (value.Value, error) {
	arr, err := asArray(fn, 0, args)
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return value.Nil, nil
	}
	keys, err := keyedBy(inv, fn, args[1], arr)
	if err != nil {
		return nil, err
	}
	best := 0
	for i := 1; i < len(arr); i++ {
		if compareKey(keys[i], keys[best]) == want {
			best = i
		}
	}
	return arr[best], nil
}

func compareKey(a, b value.Value) int {
	if na, ok := value.AsNumber(a); ok {
		nb, _ := value.AsNumber(b)
		return value.Compare(na, nb)
	}
	as, bs := a.(value.String), b.(value.String)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func builtinGroupBy(inv Invoker, args []value.Value) (value.Value, error) {
	arr, err := asArray("group_by", 0, args)
	if err != nil {
		return nil, err
	}
	out := value.NewOrderedMap()
	for _, el := range arr {
		k, err := inv.Invoke(args[1], el)
		if err != nil {
			return nil, err
		}
		key, ok := k.(value.String)
		if !ok {
			return nil, invalidType("group_by", 1, "expression returning a string", k)
		}
		existing, ok := out.Get(string(key))
		if !ok {
			out.Set(string(key), value.Array{el})
			continue
		}
		bucket := existing.(value.Array)
		out.Set(string(key), append(bucket, el))
	}
	return out, nil
}
