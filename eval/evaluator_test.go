package eval_test

import (
	"testing"

	"github.com/docexpr/docexpr"
	"github.com/docexpr/docexpr/registry"
	"github.com/docexpr/docexpr/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOverlay() *registry.Registry {
	r := registry.NewEmptyRegistry()
	r.Register(&registry.Builtin{
		Name: "double",
		Sig:  registry.Signature{Params: []registry.ParamSpec{{Types: []registry.ParamType{registry.TNumber}}}},
		Call: func(_ registry.Invoker, args []value.Value) (value.Value, error) {
			n, _ := value.AsNumber(args[0])
			return value.Add(n, n), nil
		},
	})
	return r
}

func doc(t *testing.T, jsonLike map[string]interface{}) value.Value {
	t.Helper()
	return value.FromGo(jsonLike, value.NewOrderedMap)
}

func search(t *testing.T, expr string, document value.Value) value.Value {
	t.Helper()
	v, err := docexpr.Search(expr, document)
	require.NoError(t, err)
	return v
}

func TestSearch_FieldAccess(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": map[string]interface{}{"b": "c"}})
	assert.Equal(t, value.String("c"), search(t, "a.b", d))
}

func TestSearch_MissingFieldIsNull(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": 1})
	assert.Equal(t, value.Nil, search(t, "nope", d))
}

func TestSearch_Index_NegativeWraps(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": []interface{}{1, 2, 3}})
	assert.Equal(t, value.Int(3), search(t, "a[-1]", d))
	assert.Equal(t, value.Int(1), search(t, "a[0]", d))
}

func TestSearch_Index_OutOfRangeIsNull(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": []interface{}{1}})
	assert.Equal(t, value.Nil, search(t, "a[5]", d))
}

func TestSearch_Slice(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": []interface{}{0, 1, 2, 3, 4}})
	assert.Equal(t, value.Array{value.Int(1), value.Int(2)}, search(t, "a[1:3]", d))
	assert.Equal(t, value.Array{value.Int(4), value.Int(3), value.Int(2)}, search(t, "a[4:1:-1]", d))
}

func TestSearch_Slice_OnString(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": "hello"})
	assert.Equal(t, value.String("ell"), search(t, "a[1:4]", d))
	assert.Equal(t, value.String("olleh"), search(t, "a[::-1]", d))
}

func TestSearch_Slice_ZeroStepIsError(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": []interface{}{1, 2, 3}})
	_, err := docexpr.Search("a[::0]", d)
	require.Error(t, err)
}

func TestSearch_WildcardProjection_DropsNulls(t *testing.T) {
	d := doc(t, map[string]interface{}{
		"a": []interface{}{
			map[string]interface{}{"b": 1},
			map[string]interface{}{"c": 2},
			map[string]interface{}{"b": 3},
		},
	})
	assert.Equal(t, value.Array{value.Int(1), value.Int(3)}, search(t, "a[*].b", d))
}

func TestSearch_ObjectValueProjection(t *testing.T) {
	d := doc(t, map[string]interface{}{
		"a": map[string]interface{}{
			"x": map[string]interface{}{"v": 1},
			"y": map[string]interface{}{"v": 2},
		},
	})
	got := search(t, "a.*.v", d).(value.Array)
	assert.ElementsMatch(t, value.Array{value.Int(1), value.Int(2)}, got)
}

func TestSearch_FilterProjection(t *testing.T) {
	d := doc(t, map[string]interface{}{
		"a": []interface{}{
			map[string]interface{}{"n": 1},
			map[string]interface{}{"n": 5},
			map[string]interface{}{"n": 9},
		},
	})
	got := search(t, "a[?n > `3`].n", d)
	assert.Equal(t, value.Array{value.Int(5), value.Int(9)}, got)
}

func TestSearch_Flatten(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": []interface{}{[]interface{}{1, 2}, 3, []interface{}{4}}})
	assert.Equal(t, value.Array{value.Int(1), value.Int(2), value.Int(3), value.Int(4)}, search(t, "a[]", d))
}

func TestSearch_MultiSelectList(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": 1, "b": 2})
	assert.Equal(t, value.Array{value.Int(1), value.Int(2)}, search(t, "[a, b]", d))
}

func TestSearch_MultiSelectList_NullCurrentShortCircuits(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": 1})
	assert.Equal(t, value.Nil, search(t, "missing.[a]", d))
}

func TestSearch_MultiSelectDict(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": 1, "b": 2})
	got := search(t, "{x: a, y: b}", d).(value.Object)
	v, _ := got.Get("x")
	assert.Equal(t, value.Int(1), v)
	v, _ = got.Get("y")
	assert.Equal(t, value.Int(2), v)
}

func TestSearch_PipeStopsProjectionLift(t *testing.T) {
	// a[*].b | [0] takes the first element of the whole projected array,
	// not the first b of each element — the pipe is a hard barrier.
	d := doc(t, map[string]interface{}{
		"a": []interface{}{
			map[string]interface{}{"b": 1},
			map[string]interface{}{"b": 2},
		},
	})
	assert.Equal(t, value.Int(1), search(t, "a[*].b | [0]", d))
}

func TestSearch_OrAndShortCircuit(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": 0, "b": "x"})
	assert.Equal(t, value.String("x"), search(t, "a || b", d))
	assert.Equal(t, value.Int(0), search(t, "a && b", d))
}

func TestSearch_Comparators(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": 1, "b": 2})
	assert.Equal(t, value.True, search(t, "a < b", d))
	assert.Equal(t, value.False, search(t, "a == b", d))
	assert.Equal(t, value.True, search(t, "a != b", d))
}

func TestSearch_Comparators_NonNumericOrderingIsNull(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": "x", "b": 1})
	assert.Equal(t, value.Nil, search(t, "a < b", d))
}

func TestSearch_Equality_AnyTypes(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": "x", "b": 1})
	assert.Equal(t, value.False, search(t, "a == b", d))
}

func TestSearch_Arithmetic(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": 7, "b": 2})
	assert.Equal(t, value.Int(9), search(t, "a + b", d))
	assert.Equal(t, value.Int(3), search(t, "a // b", d))
	assert.Equal(t, value.Int(1), search(t, "a % b", d))
	assert.Equal(t, value.Float(3.5), search(t, "a / b", d))
}

func TestSearch_Arithmetic_DivisionByZero(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": 1, "b": 0})
	_, err := docexpr.Search("a / b", d)
	require.Error(t, err)
}

func TestSearch_Arithmetic_NonNumberOperandIsNull(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": "x", "b": 1})
	assert.Equal(t, value.Nil, search(t, "a + b", d))
}

func TestSearch_Ternary(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": true})
	assert.Equal(t, value.String("yes"), search(t, "a ? 'yes' : 'no'", d))
	d = doc(t, map[string]interface{}{"a": false})
	assert.Equal(t, value.String("no"), search(t, "a ? 'yes' : 'no'", d))
}

func TestSearch_Let_SequentialBindingsSeeEarlierOnes(t *testing.T) {
	d := doc(t, map[string]interface{}{})
	got := search(t, "let $x = `1`, $y = $x in $y", d)
	assert.Equal(t, value.Int(1), got)
}

func TestSearch_Root(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": map[string]interface{}{"b": 1}})
	assert.Equal(t, d, search(t, "a.{whole: $}.whole", d))
}

func TestSearch_FunctionCall(t *testing.T) {
	d := doc(t, map[string]interface{}{"a": []interface{}{1, 2, 3}})
	assert.Equal(t, value.Int(3), search(t, "length(a)", d))
}

func TestSearch_ExprefHigherOrderFunction(t *testing.T) {
	d := doc(t, map[string]interface{}{
		"a": []interface{}{
			map[string]interface{}{"n": 3},
			map[string]interface{}{"n": 1},
			map[string]interface{}{"n": 2},
		},
	})
	got := search(t, "sort_by(a, &n)", d).(value.Array)
	require.Len(t, got, 3)
	ns := make([]int64, 3)
	for i, el := range got {
		v, _ := el.(value.Object).Get("n")
		ns[i] = v.(value.Number).Int64()
	}
	assert.Equal(t, []int64{1, 2, 3}, ns)
}

func TestSearch_CustomFunctionOverlay(t *testing.T) {
	overlay := newOverlay()
	v, err := docexpr.Search("double(a)", doc(t, map[string]interface{}{"a": 21}), docexpr.WithFunctions(overlay))
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), v)
}
