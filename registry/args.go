package registry

import (
	"github.com/docexpr/docexpr/errs"
	"github.com/docexpr/docexpr/value"
)

// typeName returns the name spec.md's `type()` builtin and InvalidType
// errors use for v's runtime type.
func typeName(v value.Value) string {
	switch v.(type) {
	case value.Null, nil:
		return "null"
	case value.Bool:
		return "boolean"
	case value.Number:
		return "number"
	case value.String:
		return "string"
	case value.Array:
		return "array"
	case value.Object:
		return "object"
	default:
		return "expref"
	}
}

func invalidType(fn string, idx int, expected string, got value.Value) error {
	return &errs.InvalidType{Function: fn, ArgIndex: idx, Expected: expected, Got: typeName(got)}
}

func asNumber(fn string, idx int, args []value.Value) (value.Number, error) {
	n, ok := value.AsNumber(args[idx])
	if !ok {
		return value.Number{}, invalidType(fn, idx, "number", args[idx])
	}
	return n, nil
}

func asString(fn string, idx int, args []value.Value) (string, error) {
	s, ok := args[idx].(value.String)
	if !ok {
		return "", invalidType(fn, idx, "string", args[idx])
	}
	return string(s), nil
}

func asArray(fn string, idx int, args []value.Value) (value.Array, error) {
	a, ok := args[idx].(value.Array)
	if !ok {
		return nil, invalidType(fn, idx, "array", args[idx])
	}
	return a, nil
}

func asObject(fn string, idx int, args []value.Value) (value.Object, error) {
	o, ok := args[idx].(value.Object)
	if !ok {
		return nil, invalidType(fn, idx, "object", args[idx])
	}
	return o, nil
}

// asArrayOrString accepts the array-or-string union several builtins need
// (contains, reverse): returns the array view, or a nil array and the
// string view populated when args[idx] is a string instead.
func asArrayOrString(fn string, idx int, args []value.Value) (value.Array, string, error) {
	switch v := args[idx].(type) {
	case value.Array:
		return v, "", nil
	case value.String:
		return nil, string(v), nil
	default:
		return nil, "", invalidType(fn, idx, "array or string", args[idx])
	}
}

// checkHomogeneous requires arr be entirely numbers or entirely strings,
// the array<number>|array<string> constraint sort/sort_by/max/min share.
func checkHomogeneous(arr value.Array, fn string, idx int, orig value.Value) error {
	if len(arr) == 0 {
		return nil
	}
	if _, ok := arr[0].(value.Number); ok {
		for _, el := range arr {
			if _, ok := el.(value.Number); !ok {
				return invalidType(fn, idx, "array of numbers", orig)
			}
		}
		return nil
	}
	if _, ok := arr[0].(value.String); ok {
		for _, el := range arr {
			if _, ok := el.(value.String); !ok {
				return invalidType(fn, idx, "array of strings", orig)
			}
		}
		return nil
	}
	return invalidType(fn, idx, "array of numbers or array of strings", orig)
}

// asHomogeneousNumberArray requires args[idx] be an array whose every
// element is a number, the constraint spec.md's sum/avg place on their
// argument (max/min use checkHomogeneous and also accept strings).
func asHomogeneousNumberArray(fn string, idx int, args []value.Value) ([]value.Number, error) {
	arr, err := asArray(fn, idx, args)
	if err != nil {
		return nil, err
	}
	out := make([]value.Number, len(arr))
	for i, el := range arr {
		n, ok := value.AsNumber(el)
		if !ok {
			return nil, invalidType(fn, idx, "array of numbers", args[idx])
		}
		out[i] = n
	}
	return out, nil
}
