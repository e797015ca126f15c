package registry

import (
	"github.com/docexpr/docexpr/value"
)

func registerArray(r *Registry) {
	r.Register(&Builtin{Name: "length", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArray, TString, TObject}}}}, Call: builtinLength})
	r.Register(&Builtin{Name: "reverse", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArray, TString}}}}, Call: builtinReverse})
	r.Register(&Builtin{Name: "sort", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArrayNumber, TArrayString}}}}, Call: builtinSort})
	r.Register(&Builtin{Name: "to_array", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TAny}}}}, Call: builtinToArray})
	r.Register(&Builtin{Name: "zip", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArray}}}, Variadic: &ParamSpec{Types: []ParamType{TArray}}}, Call: builtinZip})
	r.Register(&Builtin{Name: "merge", Sig: Signature{Variadic: &ParamSpec{Types: []ParamType{TObject}}}, Call: builtinMerge})
	r.Register(&Builtin{Name: "keys", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TObject}}}}, Call: builtinKeys})
	r.Register(&Builtin{Name: "values", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TObject}}}}, Call: builtinValues})
	r.Register(&Builtin{Name: "items", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TObject}}}}, Call: builtinItems})
	r.Register(&Builtin{Name: "from_items", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArray}}}}, Call: builtinFromItems})
	r.Register(&Builtin{Name: "not_null", Sig: Signature{Variadic: &ParamSpec{Types: []ParamType{TAny}}}, Call: builtinNotNull})
	r.Register(&Builtin{Name: "type", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TAny}}}}, Call: builtinType})
}

func builtinLength(_ Invoker, args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.String:
		return value.Int(int64(len([]rune(string(v))))), nil
	case value.Array:
		return value.Int(int64(len(v))), nil
	case value.Object:
		return value.Int(int64(v.Len())), nil
	default:
		return nil, invalidType("length", 0, "array, string, or object", args[0])
	}
}

func builtinReverse(_ Invoker, args []value.Value) (value.Value, error) {
	arr, s, err := asArrayOrString("reverse", 0, args)
	if err != nil {
		return nil, err
	}
	if arr != nil {
		out := make(value.Array, len(arr))
		for i, el := range arr {
			out[len(arr)-1-i] = el
		}
		return out, nil
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return value.String(string(runes)), nil
}

func builtinSort(_ Invoker, args []value.Value) (value.Value, error) {
	arr, err := asArray("sort", 0, args)
	if err != nil {
		return nil, err
	}
	out := make(value.Array, len(arr))
	copy(out, arr)
	if err := sortHomogeneous(out, "sort", 0, args[0]); err != nil {
		return nil, err
	}
	return out, nil
}

// sortHomogeneous sorts a value.Array in place, requiring every element be
// a number or every element be a string (spec.md §4.4's sort/sort_by
// constraint).
func sortHomogeneous(arr value.Array, fn string, idx int, orig value.Value) error {
	if err := checkHomogeneous(arr, fn, idx, orig); err != nil {
		return err
	}
	insertionSort(arr, func(a, b value.Value) bool {
		return compareKey(a, b) < 0
	})
	return nil
}

// insertionSort is a stable sort over value.Array; the arrays this
// language sorts are small enough that O(n^2) is the right tradeoff
// against pulling in sort.Interface boilerplate.
func insertionSort(arr value.Array, less func(a, b value.Value) bool) {
	for i := 1; i < len(arr); i++ {
		for j := i; j > 0 && less(arr[j], arr[j-1]); j-- {
			arr[j], arr[j-1] = arr[j-1], arr[j]
		}
	}
}

func builtinToArray(_ Invoker, args []value.Value) (value.Value, error) {
	if arr, ok := args[0].(value.Array); ok {
		return arr, nil
	}
	return value.Array{args[0]}, nil
}

func builtinZip(_ Invoker, args []value.Value) (value.Value, error) {
	arrays := make([]value.Array, len(args))
	minLen := -1
	for i := range args {
		arr, err := asArray("zip", i, args)
		if err != nil {
			return nil, err
		}
		arrays[i] = arr
		if minLen == -1 || len(arr) < minLen {
			minLen = len(arr)
		}
	}
	out := make(value.Array, minLen)
	for i := 0; i < minLen; i++ {
		row := make(value.Array, len(arrays))
		for j, arr := range arrays {
			row[j] = arr[i]
		}
		out[i] = row
	}
	return out, nil
}

func builtinMerge(_ Invoker, args []value.Value) (value.Value, error) {
	out := value.NewOrderedMap()
	for i := range args {
		obj, err := asObject("merge", i, args)
		if err != nil {
			return nil, err
		}
		for _, k := range obj.Keys() {
			v, _ := obj.Get(k)
			out.Set(k, v)
		}
	}
	return out, nil
}

func builtinKeys(_ Invoker, args []value.Value) (value.Value, error) {
	obj, err := asObject("keys", 0, args)
	if err != nil {
		return nil, err
	}
	keys := obj.Keys()
	out := make(value.Array, len(keys))
	for i, k := range keys {
		out[i] = value.String(k)
	}
	return out, nil
}

func builtinValues(_ Invoker, args []value.Value) (value.Value, error) {
	obj, err := asObject("values", 0, args)
	if err != nil {
		return nil, err
	}
	keys := obj.Keys()
	out := make(value.Array, len(keys))
	for i, k := range keys {
		v, _ := obj.Get(k)
		out[i] = v
	}
	return out, nil
}

func builtinItems(_ Invoker, args []value.Value) (value.Value, error) {
	obj, err := asObject("items", 0, args)
	if err != nil {
		return nil, err
	}
	keys := obj.Keys()
	out := make(value.Array, len(keys))
	for i, k := range keys {
		v, _ := obj.Get(k)
		out[i] = value.Array{value.String(k), v}
	}
	return out, nil
}

func builtinFromItems(_ Invoker, args []value.Value) (value.Value, error) {
	arr, err := asArray("from_items", 0, args)
	if err != nil {
		return nil, err
	}
	out := value.NewOrderedMap()
	for _, el := range arr {
		pair, ok := el.(value.Array)
		if !ok || len(pair) != 2 {
			return nil, invalidType("from_items", 0, "array of [key, value] pairs", args[0])
		}
		key, ok := pair[0].(value.String)
		if !ok {
			return nil, invalidType("from_items", 0, "array of [string, value] pairs", args[0])
		}
		out.Set(string(key), pair[1])
	}
	return out, nil
}

func builtinNotNull(_ Invoker, args []value.Value) (value.Value, error) {
	for _, a := range args {
		if a.Kind() != value.KindNull {
			return a, nil
		}
	}
	return value.Nil, nil
}

func builtinType(_ Invoker, args []value.Value) (value.Value, error) {
	return value.String(typeName(args[0])), nil
}
