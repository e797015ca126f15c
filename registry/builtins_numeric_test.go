package registry

import (
	"testing"

	"github.com/docexpr/docexpr/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	r := NewRegistry()
	v, err := r.Call(noopInvoker{}, name, args)
	require.NoError(t, err)
	return v
}

func TestBuiltin_Abs(t *testing.T) {
	assert.Equal(t, value.Int(5), call(t, "abs", value.Int(-5)))
	assert.Equal(t, value.Float(5.5), call(t, "abs", value.Float(-5.5)))
}

func TestBuiltin_CeilFloor(t *testing.T) {
	assert.Equal(t, value.Int(2), call(t, "ceil", value.Float(1.1)))
	assert.Equal(t, value.Int(1), call(t, "floor", value.Float(1.9)))
	assert.Equal(t, value.Int(3), call(t, "ceil", value.Int(3)))
}

func TestBuiltin_SumAvgMaxMin(t *testing.T) {
	arr := value.Array{value.Int(1), value.Int(2), value.Int(3)}
	assert.Equal(t, value.Int(6), call(t, "sum", arr))
	assert.Equal(t, value.Float(2), call(t, "avg", arr))
	assert.Equal(t, value.Int(3), call(t, "max", arr))
	assert.Equal(t, value.Int(1), call(t, "min", arr))
}

func TestBuiltin_AvgMaxMin_EmptyArray(t *testing.T) {
	assert.Equal(t, value.Nil, call(t, "avg", value.Array{}))
	assert.Equal(t, value.Nil, call(t, "max", value.Array{}))
	assert.Equal(t, value.Nil, call(t, "min", value.Array{}))
}

func TestBuiltin_MaxMin_StringArray(t *testing.T) {
	arr := value.Array{value.String("banana"), value.String("apple"), value.String("cherry")}
	assert.Equal(t, value.String("cherry"), call(t, "max", arr))
	assert.Equal(t, value.String("apple"), call(t, "min", arr))
}

func TestBuiltin_MaxMin_MixedArrayIsError(t *testing.T) {
	r := NewRegistry()
	arr := value.Array{value.Int(1), value.String("x")}
	_, err := r.Call(noopInvoker{}, "max", []value.Value{arr})
	require.Error(t, err)
}

func TestBuiltin_Sum_RejectsNonNumericArray(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call(noopInvoker{}, "sum", []value.Value{value.Array{value.String("x")}})
	require.Error(t, err)
}

func TestBuiltin_ToNumber(t *testing.T) {
	assert.Equal(t, value.Int(42), call(t, "to_number", value.String("42")))
	assert.Equal(t, value.Float(4.2), call(t, "to_number", value.String("4.2")))
	assert.Equal(t, value.Nil, call(t, "to_number", value.String("nope")))
	assert.Equal(t, value.Int(7), call(t, "to_number", value.Int(7)))
}
