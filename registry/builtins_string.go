package registry

import (
	"strings"

	"github.com/docexpr/docexpr/value"
)

func registerString(r *Registry) {
	r.Register(&Builtin{Name: "contains", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TArray, TString}}, {Types: []ParamType{TAny}}}}, Call: builtinContains})
	r.Register(&Builtin{Name: "ends_with", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}, {Types: []ParamType{TString}}}}, Call: builtinEndsWith})
	r.Register(&Builtin{Name: "starts_with", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}, {Types: []ParamType{TString}}}}, Call: builtinStartsWith})
	r.Register(&Builtin{Name: "join", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}, {Types: []ParamType{TArrayString}}}}, Call: builtinJoin})
	r.Register(&Builtin{Name: "split", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}, {Types: []ParamType{TString}}}}, Call: builtinSplit})
	r.Register(&Builtin{Name: "lower", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}}}, Call: builtinLower})
	r.Register(&Builtin{Name: "upper", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}}}, Call: builtinUpper})
	r.Register(&Builtin{Name: "trim", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}}}, Call: builtinTrim})
	r.Register(&Builtin{Name: "trim_left", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}}}, Call: builtinTrimLeft})
	r.Register(&Builtin{Name: "trim_right", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}}}, Call: builtinTrimRight})
	r.Register(&Builtin{Name: "pad_left", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}, {Types: []ParamType{TNumber}}, {Types: []ParamType{TString}}}}, Call: builtinPadLeft})
	r.Register(&Builtin{Name: "pad_right", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}, {Types: []ParamType{TNumber}}, {Types: []ParamType{TString}}}}, Call: builtinPadRight})
	r.Register(&Builtin{Name: "replace", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}, {Types: []ParamType{TString}}, {Types: []ParamType{TString}}}}, Call: builtinReplace})
	r.Register(&Builtin{Name: "find_first", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}, {Types: []ParamType{TString}}}}, Call: builtinFindFirst})
	r.Register(&Builtin{Name: "find_last", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TString}}, {Types: []ParamType{TString}}}}, Call: builtinFindLast})
	r.Register(&Builtin{Name: "to_string", Sig: Signature{Params: []ParamSpec{{Types: []ParamType{TAny}}}}, Call: builtinToString})
}

// builtinContains accepts an array or a string subject, per spec.md §4.4's
// array-or-string union.
func builtinContains(_ Invoker, args []value.Value) (value.Value, error) {
	arr, str, err := asArrayOrString("contains", 0, args)
	if err != nil {
		return nil, err
	}
	if arr != nil {
		for _, el := range arr {
			if value.Equal(el, args[1]) {
				return value.True, nil
			}
		}
		return value.False, nil
	}
	needle, ok := args[1].(value.String)
	if !ok {
		return value.False, nil
	}
	return value.BoolOf(strings.Contains(str, string(needle))), nil
}

func builtinEndsWith(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("ends_with", 0, args)
	if err != nil {
		return nil, err
	}
	suffix, err := asString("ends_with", 1, args)
	if err != nil {
		return nil, err
	}
	return value.BoolOf(strings.HasSuffix(s, suffix)), nil
}

func builtinStartsWith(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("starts_with", 0, args)
	if err != nil {
		return nil, err
	}
	prefix, err := asString("starts_with", 1, args)
	if err != nil {
		return nil, err
	}
	return value.BoolOf(strings.HasPrefix(s, prefix)), nil
}

func builtinJoin(_ Invoker, args []value.Value) (value.Value, error) {
	sep, err := asString("join", 0, args)
	if err != nil {
		return nil, err
	}
	arr, err := asArray("join", 1, args)
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(arr))
	for i, el := range arr {
		s, ok := el.(value.String)
		if !ok {
			return nil, invalidType("join", 1, "array of strings", args[1])
		}
		parts[i] = string(s)
	}
	return value.String(strings.Join(parts, sep)), nil
}

func builtinSplit(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("split", 0, args)
	if err != nil {
		return nil, err
	}
	sep, err := asString("split", 1, args)
	if err != nil {
		return nil, err
	}
	var parts []string
	if sep == "" {
		parts = strings.Split(s, "")
	} else {
		parts = strings.Split(s, sep)
	}
	out := make(value.Array, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return out, nil
}

func builtinLower(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("lower", 0, args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.ToLower(s)), nil
}

func builtinUpper(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("upper", 0, args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.ToUpper(s)), nil
}

func builtinTrim(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("trim", 0, args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimSpace(s)), nil
}

func builtinTrimLeft(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("trim_left", 0, args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimLeft(s, " \t\r\n")), nil
}

func builtinTrimRight(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("trim_right", 0, args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimRight(s, " \t\r\n")), nil
}

func builtinPadLeft(_ Invoker, args []value.Value) (value.Value, error) {
	s, width, pad, err := padArgs("pad_left", args)
	if err != nil {
		return nil, err
	}
	for len([]rune(s)) < width {
		s = pad + s
	}
	return value.String(s), nil
}

func builtinPadRight(_ Invoker, args []value.Value) (value.Value, error) {
	s, width, pad, err := padArgs("pad_right", args)
	if err != nil {
		return nil, err
	}
	for len([]rune(s)) < width {
		s = s + pad
	}
	return value.String(s), nil
}

func padArgs(fn string, args []value.Value) (s string, width int, pad string, err error) {
	s, err = asString(fn, 0, args)
	if err != nil {
		return
	}
	n, err := asNumber(fn, 1, args)
	if err != nil {
		return
	}
	pad, err = asString(fn, 2, args)
	if err != nil {
		return
	}
	if pad == "" {
		pad = " "
	}
	width = int(n.Int64())
	return
}

func builtinReplace(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("replace", 0, args)
	if err != nil {
		return nil, err
	}
	old, err := asString("replace", 1, args)
	if err != nil {
		return nil, err
	}
	newStr, err := asString("replace", 2, args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.ReplaceAll(s, old, newStr)), nil
}

func builtinFindFirst(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("find_first", 0, args)
	if err != nil {
		return nil, err
	}
	sub, err := asString("find_first", 1, args)
	if err != nil {
		return nil, err
	}
	idx := strings.Index(s, sub)
	if idx < 0 {
		return value.Nil, nil
	}
	return value.Int(int64(idx)), nil
}

func builtinFindLast(_ Invoker, args []value.Value) (value.Value, error) {
	s, err := asString("find_last", 0, args)
	if err != nil {
		return nil, err
	}
	sub, err := asString("find_last", 1, args)
	if err != nil {
		return nil, err
	}
	idx := strings.LastIndex(s, sub)
	if idx < 0 {
		return value.Nil, nil
	}
	return value.Int(int64(idx)), nil
}

func builtinToString(_ Invoker, args []value.Value) (value.Value, error) {
	if s, ok := args[0].(value.String); ok {
		return s, nil
	}
	return value.String(args[0].String()), nil
}
